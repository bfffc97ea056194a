// Package itemimport recovers inventory items from semi-structured supplier
// workbooks.
package itemimport

import (
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/parser"
	"go.uber.org/zap"
)

// Options configures extraction behavior.
type Options struct {
	// Header configures header row detection.
	Header parser.HeaderParams
	// Fallback configures positional reading.
	Fallback parser.FallbackParams
	// MinSheetRows is the row count below which a sheet is ignored.
	MinSheetRows int
	// UseFallback specifies whether positional reading may be used.
	// If nil, defaults to true.
	UseFallback *bool
	// Sheets restricts extraction to the named sheets. Empty means all.
	Sheets []string
	// Logger receives extraction progress. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Header:       parser.DefaultHeaderParams(),
		Fallback:     parser.DefaultFallbackParams(),
		MinSheetRows: 3,
	}
}

// ShouldUseFallback returns whether positional reading is enabled.
func (o Options) ShouldUseFallback() bool {
	if o.UseFallback != nil {
		return *o.UseFallback
	}
	return true
}

// logger returns the configured logger or a no-op logger.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// includesSheet reports whether a sheet is selected.
func (o Options) includesSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}

// withDefaults fills zero-valued parameters with defaults.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if len(o.Header.Keywords) == 0 {
		o.Header.Keywords = def.Header.Keywords
	}
	if o.Header.ScanRows <= 0 {
		o.Header.ScanRows = def.Header.ScanRows
	}
	if o.Header.MinHits <= 0 {
		o.Header.MinHits = def.Header.MinHits
	}
	if o.Header.MaxLabelLen <= 0 {
		o.Header.MaxLabelLen = def.Header.MaxLabelLen
	}
	if o.Fallback.MinRows <= 0 {
		o.Fallback.MinRows = def.Fallback.MinRows
	}
	if o.Fallback.MaxRows <= 0 {
		o.Fallback.MaxRows = def.Fallback.MaxRows
	}
	if o.Fallback.MaxCols <= 0 {
		o.Fallback.MaxCols = def.Fallback.MaxCols
	}
	if o.MinSheetRows <= 0 {
		o.MinSheetRows = def.MinSheetRows
	}
	return o
}
