package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	AccountsCreated      prometheus.Counter
	AccountsDeleted      prometheus.Counter
	CategoriesCreated    prometheus.Counter
	CashflowsPosted      *prometheus.CounterVec
	DistributionSize     prometheus.Histogram
	DistributionDuration prometheus.Histogram
	PostingErrors        *prometheus.CounterVec

	// Rate ingestion metrics
	RatesIngested        prometheus.Counter
	RateIngestionRuns    *prometheus.CounterVec
	RateIngestionSeconds prometheus.Histogram
	CurrenciesSeeded     prometheus.Counter

	// Cache metrics
	CurrencyCacheRequests *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_accounts_deleted_total",
			Help: "Total number of accounts soft-deleted",
		}),
		CategoriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_categories_created_total",
			Help: "Total number of income/expense categories created",
		}),
		CashflowsPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_cashflows_posted_total",
				Help: "Total number of cashflows committed by type and currency kind",
			},
			[]string{"type", "currency_kind"},
		),
		DistributionSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_distribution_items",
			Help:    "Number of items per committed distribution",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		}),
		DistributionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_distribution_duration_seconds",
			Help:    "Duration of cashflow postings including commit",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_posting_errors_total",
				Help: "Total number of rejected postings by error type",
			},
			[]string{"error_type"},
		),

		RatesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_rates_ingested_total",
			Help: "Total number of exchange rate rows inserted",
		}),
		RateIngestionRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_rate_ingestion_runs_total",
				Help: "Total number of rate ingestion runs by outcome",
			},
			[]string{"status"},
		),
		RateIngestionSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_rate_ingestion_duration_seconds",
			Help:    "Duration of rate ingestion runs",
			Buckets: prometheus.DefBuckets,
		}),
		CurrenciesSeeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_currencies_seeded_total",
			Help: "Total number of currencies created by catalog seeding",
		}),

		CurrencyCacheRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_currency_cache_requests_total",
				Help: "Currency catalog cache lookups by result",
			},
			[]string{"result"},
		),

		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_outbox_events_total",
				Help: "Outbox events processed by status",
			},
			[]string{"event_type", "status"},
		),
	}
}
