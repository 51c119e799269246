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
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	// SectionsRendered counts sections that resolved to a component.
	SectionsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_sections_rendered_total",
			Help: "Sections resolved to a registered component",
		},
		[]string{"template_id", "section_type"},
	)

	// SectionsSkipped counts sections with no registry entry for their template.
	SectionsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_sections_skipped_total",
			Help: "Sections skipped because no component is registered for the pairing",
		},
		[]string{"template_id", "section_type"},
	)

	TemplateSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_template_selections_total",
			Help: "Template selections by resolved template and selection source",
		},
		[]string{"template_id", "source"},
	)

	FetchCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_fetch_cache_total",
			Help: "Store and product cache lookups by outcome",
		},
		[]string{"kind", "result"},
	)
)
