package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	MutationsApplied *prometheus.CounterVec
	MutationErrors   *prometheus.CounterVec
	MutationDuration prometheus.Histogram
	SupplierBalance  *prometheus.GaugeVec

	// Sale metrics
	SalesCreated  *prometheus.CounterVec
	SalesRefunded prometheus.Counter

	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentsUpdated  prometheus.Counter
	PaymentsDeleted  prometheus.Counter

	// Recalculation metrics
	RecalcRuns        *prometheus.CounterVec
	RecalcRepairs     prometheus.Counter
	RecalcDuration    prometheus.Histogram
	BackfillsExecuted prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		MutationsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_mutations_applied_total",
				Help: "Total ledger mutations applied by transaction type",
			},
			[]string{"type"},
		),
		MutationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_mutation_errors_total",
				Help: "Total ledger mutation errors by type",
			},
			[]string{"error_type"},
		),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditledger_mutation_duration_seconds",
			Help:    "Duration of ledger mutations",
			Buckets: prometheus.DefBuckets,
		}),
		SupplierBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "creditledger_supplier_balance",
				Help: "Current supplier balance",
			},
			[]string{"supplier_id"},
		),

		// Sale metrics
		SalesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_sales_created_total",
				Help: "Total sales created by payment method",
			},
			[]string{"payment_method"},
		),
		SalesRefunded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_sales_refunded_total",
			Help: "Total sales refunded",
		}),

		// Payment metrics
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_payments_recorded_total",
			Help: "Total supplier payments recorded",
		}),
		PaymentsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_payments_updated_total",
			Help: "Total supplier payments updated",
		}),
		PaymentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_payments_deleted_total",
			Help: "Total supplier payments deleted",
		}),

		// Recalculation metrics
		RecalcRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_recalc_runs_total",
				Help: "Total balance recalculations by outcome",
			},
			[]string{"status"},
		),
		RecalcRepairs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_recalc_repairs_total",
			Help: "Total transaction records repaired during recalculation",
		}),
		RecalcDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditledger_recalc_duration_seconds",
			Help:    "Duration of balance recalculations",
			Buckets: prometheus.DefBuckets,
		}),
		BackfillsExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "creditledger_backfills_total",
			Help: "Total history backfills executed",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "creditledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
