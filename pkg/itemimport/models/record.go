package models

import (
	"bytes"
	"encoding/json"
)

// Record is an ordered mapping from header label to cell text.
// Keys keep the order in which they were first inserted.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Put stores value under key. An empty value never replaces a non-empty one.
func (r *Record) Put(key, value string) {
	old, ok := r.values[key]
	if !ok {
		r.keys = append(r.keys, key)
		r.values[key] = value
		return
	}
	if value != "" || old == "" {
		r.values[key] = value
	}
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" if absent.
func (r *Record) Value(key string) string {
	return r.values[key]
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// HasData reports whether any value is non-empty.
func (r *Record) HasData() bool {
	for _, v := range r.values {
		if v != "" {
			return true
		}
	}
	return false
}

// Merge copies every entry of other into r, in other's key order.
func (r *Record) Merge(other *Record) {
	for _, k := range other.keys {
		r.Put(k, other.values[k])
	}
}

// Clone returns a copy of r.
func (r *Record) Clone() *Record {
	c := NewRecord()
	c.Merge(r)
	return c
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
