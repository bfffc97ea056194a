package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Registry struct {
	reg             *prometheus.Registry
	ItemsExtracted  prometheus.Counter
	PartsCreated    prometheus.Counter
	PartsDuplicate  prometheus.Counter
	PartsFailed     prometheus.Counter
	ModelsImported  prometheus.Counter
	StockMovements  prometheus.Counter
	StockFailed     prometheus.Counter
	RequestLatency  *prometheus.HistogramVec
	LastRunUnixTime prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	extracted := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_items_extracted_total"})
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_parts_created_total"})
	duplicate := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_parts_duplicate_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_parts_failed_total"})
	modelsImported := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_models_imported_total"})
	stock := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_stock_movements_total"})
	stockFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "itemimport_stock_movements_failed_total"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "itemimport_catalog_request_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{Name: "itemimport_last_run_timestamp_seconds"})

	r.MustRegister(extracted, created, duplicate, failed, modelsImported, stock, stockFailed, latency, lastRun)
	return &Registry{
		reg:             r,
		ItemsExtracted:  extracted,
		PartsCreated:    created,
		PartsDuplicate:  duplicate,
		PartsFailed:     failed,
		ModelsImported:  modelsImported,
		StockMovements:  stock,
		StockFailed:     stockFailed,
		RequestLatency:  latency,
		LastRunUnixTime: lastRun,
	}
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the current values in the text exposition format,
// for pickup by a node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
