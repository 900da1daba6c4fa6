// Package observability provides metrics and tracing.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts posts persisted through the new-post flow.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postboard_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsUpdated counts successful owner edits.
	PostsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postboard_posts_updated_total",
		Help: "Total number of posts edited by their owner",
	})

	// OwnershipRedirects counts edit attempts by non-owners.
	OwnershipRedirects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postboard_ownership_redirects_total",
		Help: "Total number of edit attempts redirected because the caller is not the owner",
	})

	// FormRejections counts submissions re-rendered with field errors, by form.
	FormRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_form_rejections_total",
		Help: "Total number of form submissions rejected by validation",
	}, []string{"form"})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})
)

var (
	httpMetricsOnce sync.Once
	httpMetrics     *fiberprometheus.FiberPrometheus
)

// HTTPMetrics returns the process-wide Fiber Prometheus middleware. The
// collectors register against the default registry, so only one instance
// may exist per process.
func HTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	httpMetricsOnce.Do(func() {
		httpMetrics = fiberprometheus.New(serviceName)
	})
	return httpMetrics
}
