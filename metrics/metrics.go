package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rcpanel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rcpanel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Запуски внешних программ
	LaunchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rcpanel_launches_total",
			Help: "Total number of launch attempts by operation and outcome",
		},
		[]string{"operation", "status"}, // launch, share, ping
	)

	InventoryComputers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rcpanel_inventory_computers",
			Help: "Number of computers returned by the last inventory listing",
		},
	)
)

// RecordLaunch - учет результата запуска
func RecordLaunch(operation, status string) {
	LaunchesTotal.WithLabelValues(operation, status).Inc()
}

// UpdateInventoryMetrics - обновление размера инвентаря
func UpdateInventoryMetrics(computers int) {
	InventoryComputers.Set(float64(computers))
}
