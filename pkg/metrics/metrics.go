package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "workdesk_system_memory_bytes",
		Help: "Current system memory usage",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "workdesk_system_goroutines",
		Help: "Number of goroutines",
	})

	// Tool metrics
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workdesk_tool_calls_total",
			Help: "Total number of tool calls by outcome",
		},
		[]string{"tool", "status"},
	)

	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workdesk_tool_duration_seconds",
			Help:    "Tool call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	// Converter metrics
	ADFConversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workdesk_adf_conversions_total",
			Help: "Number of ADF documents converted to Markdown",
		},
		[]string{"source"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workdesk_upstream_errors_total",
			Help: "Failed requests to upstream APIs",
		},
		[]string{"service"},
	)
)

// Tool call outcomes
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusPanic = "panic"
)

// UpdateSystemMetrics updates system-level metrics
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}
