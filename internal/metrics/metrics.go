package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mango_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mango_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SalesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mango_sales_recorded_total",
			Help: "Sales recorded since process start",
		},
	)

	PurchasesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mango_purchases_recorded_total",
			Help: "Purchases recorded since process start",
		},
	)

	StockValidationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mango_stock_validation_failures_total",
			Help: "Sales rejected for insufficient stock",
		},
	)
)
