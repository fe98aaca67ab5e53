package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream metrics
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockmind_upstream_requests_total",
			Help: "Total upstream ledger source requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)
	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockmind_upstream_request_duration_seconds",
			Help:    "Upstream request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	upstreamRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockmind_upstream_retries_total",
		Help: "Total upstream request retries",
	})
	upstreamInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blockmind_upstream_inflight_requests",
		Help: "Upstream requests currently in flight across all callers",
	})

	// Aggregation metrics
	partialAggregations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockmind_partial_aggregations_total",
		Help: "Total wallet stat aggregations that returned a partial result",
	})
	scanLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockmind_pager_scan_limit_hits_total",
		Help: "Total filtered page requests that tripped the scan bound",
	})
	entriesScanned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blockmind_pager_entries_scanned",
		Help:    "Upstream entries scanned per filtered page request",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// Poller metrics
	pollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockmind_poll_cycles_total",
		Help: "Total tracked-wallet poll cycles started",
	})
	pollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blockmind_poll_failures_total",
		Help: "Total per-address poll fetch failures",
	})
	trackedWallets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blockmind_tracked_wallets",
		Help: "Number of wallets currently tracked by the poller",
	})
)

// ObserveUpstreamRequest records one upstream call.
func ObserveUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncUpstreamRetry counts one retry attempt.
func IncUpstreamRetry() { upstreamRetries.Inc() }

// IncUpstreamInflight tracks the shared in-flight gauge.
func IncUpstreamInflight() { upstreamInflight.Inc() }

// DecUpstreamInflight tracks the shared in-flight gauge.
func DecUpstreamInflight() { upstreamInflight.Dec() }

// IncPartialAggregation counts one partial stats result.
func IncPartialAggregation() { partialAggregations.Inc() }

// IncScanLimitHit counts one tripped scan bound.
func IncScanLimitHit() { scanLimitHits.Inc() }

// ObserveEntriesScanned records the scan cost of one page request.
func ObserveEntriesScanned(n int) { entriesScanned.Observe(float64(n)) }

// IncPollCycle counts one poll cycle.
func IncPollCycle() { pollCycles.Inc() }

// IncPollFailure counts one per-address fetch failure.
func IncPollFailure() { pollFailures.Inc() }

// SetTrackedWallets records the current tracked-set size.
func SetTrackedWallets(n int) { trackedWallets.Set(float64(n)) }
