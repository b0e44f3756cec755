// Package metrics exposes Prometheus collectors for reports, jobs and HTTP traffic.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the service records to.
type Metrics struct {
	reports        *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	imbalances     *prometheus.CounterVec
	jobRuns        *prometheus.CounterVec
	jobDuration    *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the collectors against the provided registerer. When
// the registerer is nil the default Prometheus registerer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

// Tracker records the outcome and duration of one report or job run.
type Tracker struct {
	end   func(status string, elapsed time.Duration)
	start time.Time
}

// TrackReport starts timing the computation of a statement.
func (m *Metrics) TrackReport(statement string) *Tracker {
	t := &Tracker{start: time.Now()}
	if m != nil {
		t.end = func(status string, elapsed time.Duration) {
			m.reports.WithLabelValues(statement, status).Inc()
			m.reportDuration.WithLabelValues(statement).Observe(elapsed.Seconds())
		}
	}
	return t
}

// TrackJob starts timing a background job run.
func (m *Metrics) TrackJob(job string) *Tracker {
	t := &Tracker{start: time.Now()}
	if m != nil {
		t.end = func(status string, elapsed time.Duration) {
			m.jobRuns.WithLabelValues(job, status).Inc()
			m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
		}
	}
	return t
}

// End finalises the tracker and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.end == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.end(status, time.Since(t.start))
	return err
}

// CacheLookup counts a report cache hit or miss.
func (m *Metrics) CacheLookup(statement string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(statement, result).Inc()
}

// AddImbalances counts ledger imbalances found by a report or job.
func (m *Metrics) AddImbalances(kind string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.imbalances.WithLabelValues(kind).Add(float64(count))
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_reports_total",
		Help: "Total report computations partitioned by statement and status.",
	}, []string{"statement", "status"})
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_report_duration_seconds",
		Help:    "Duration in seconds of report computations, cache lookups included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"statement"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_report_cache_lookups_total",
		Help: "Report cache lookups partitioned by statement and result.",
	}, []string{"statement", "result"})
	imbalances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_imbalances_total",
		Help: "Ledger imbalances detected, by kind.",
	}, []string{"kind"})
	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_jobs_total",
		Help: "Total job executions partitioned by job name and status.",
	}, []string{"job", "status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_job_duration_seconds",
		Help:    "Duration in seconds of background job executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "code"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	registerer.MustRegister(reports, reportDuration, cacheLookups, imbalances, jobRuns, jobDuration, httpRequests, httpDuration)
	return &Metrics{
		reports:        reports,
		reportDuration: reportDuration,
		cacheLookups:   cacheLookups,
		imbalances:     imbalances,
		jobRuns:        jobRuns,
		jobDuration:    jobDuration,
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
	}
}
