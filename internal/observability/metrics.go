package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for dataset loading and queries.
type Metrics struct {
	DatasetLoads        *prometheus.CounterVec // labels: outcome={success,error}
	DatasetRows         prometheus.Gauge
	DatasetLoadDuration prometheus.Histogram
	DegradedValues      *prometheus.GaugeVec // labels: field={elevation,eruption_year,tectonic_setting,coordinates}

	// Publishing metrics.
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	// Query metrics.
	Queries         *prometheus.CounterVec   // labels: endpoint, outcome={ok,bad_request,unavailable}
	QueryResultRows *prometheus.HistogramVec // labels: endpoint
}

var resultRowBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

func newMetrics(help bool) *Metrics {
	h := func(s string) string {
		if help {
			return s
		}
		return ""
	}
	return &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "volcano_explorer",
			Name:      "dataset_loads_total",
			Help:      h("Dataset load attempts by outcome."),
		}, []string{"outcome"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "volcano_explorer",
			Name:      "dataset_rows",
			Help:      h("Rows in the table currently served."),
		}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "volcano_explorer",
			Name:      "dataset_load_duration_seconds",
			Help:      h("Duration of a complete extract-normalize-load cycle."),
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		DegradedValues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "volcano_explorer",
			Name:      "dataset_missing_values",
			Help:      h("Rows in the served table missing a value, by field."),
		}, []string{"field"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volcano_explorer",
			Name:      "records_published_total",
			Help:      h("Normalized records written to the Kafka topic."),
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "volcano_explorer",
			Name:      "publish_errors_total",
			Help:      h("Failed Kafka publish batches."),
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "volcano_explorer",
			Name:      "queries_total",
			Help:      h("API queries by endpoint and outcome."),
		}, []string{"endpoint", "outcome"}),
		QueryResultRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "volcano_explorer",
			Name:      "query_result_rows",
			Help:      h("Rows matched by a query after filtering."),
			Buckets:   resultRowBuckets,
		}, []string{"endpoint"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.DatasetLoads,
		m.DatasetRows,
		m.DatasetLoadDuration,
		m.DegradedValues,
		m.RecordsPublished,
		m.PublishErrors,
		m.Queries,
		m.QueryResultRows,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}
