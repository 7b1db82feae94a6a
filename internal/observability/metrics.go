// Package observability owns the process wide prometheus collectors.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leavey"

var (
	LeaveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leave",
		Name:      "transitions_total",
		Help:      "Committed leave request status transitions.",
	}, []string{"from", "to"})

	VendorSyncResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vendor_sync",
		Name:      "results_total",
		Help:      "Vendor sync attempts by outcome.",
	}, []string{"result"})

	ReconciliationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reconciliation",
		Name:      "duration_seconds",
		Help:      "Time spent loading and computing a monthly reconciliation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	OutboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "outbox",
		Name:      "published_total",
		Help:      "Outbox events handed to kafka by outcome.",
	}, []string{"result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

const (
	SyncResultSynced = "synced"
	SyncResultFailed = "failed"
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
