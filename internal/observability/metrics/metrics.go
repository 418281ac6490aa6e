package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "horarios_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "horarios_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	approvalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "horarios_approvals_total",
		Help: "Pending to approved transitions by entity",
	}, []string{"entity"})

	restaurantIDCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "horarios_restaurant_id_collisions_total",
		Help: "Restaurant id candidates rejected by the repository as duplicates",
	})

	authzDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "horarios_authz_denied_total",
		Help: "Authorization denials by reason",
	}, []string{"reason"})

)

// ValidationRejections requests rejected by domain validation, labelled by entity.
var ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "horarios_validation_rejections_total",
	Help: "Create/update requests rejected by domain validation",
}, []string{"entity"})

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveApproval counts a pending→approved transition ("restaurant" or "user").
func ObserveApproval(entity string) {
	approvalsTotal.WithLabelValues(entity).Inc()
}

// ObserveRestaurantIDCollision counts a duplicate id candidate.
func ObserveRestaurantIDCollision() {
	restaurantIDCollisions.Inc()
}

// ObserveAuthzDenied counts an authorization denial.
func ObserveAuthzDenied(reason string) {
	authzDenied.WithLabelValues(reason).Inc()
}

// ObserveValidationRejection counts a validation failure for the given entity.
func ObserveValidationRejection(entity string) {
	ValidationRejections.WithLabelValues(entity).Inc()
}
