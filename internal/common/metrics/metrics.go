// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	HealthScoreOverall = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "health_score_overall",
			Help:    "Distribution of computed overall health scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	PlanTasksGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_tasks_generated_total",
			Help: "Plan tasks generated, by category",
		},
		[]string{"category"},
	)

	MetricsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connector_metrics_cache_lookups_total",
			Help: "Connector metric cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	ConnectorAPIFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connector_api_fetches_total",
			Help: "Live connector API fetches by result (ok, error)",
		},
		[]string{"result"},
	)
)
