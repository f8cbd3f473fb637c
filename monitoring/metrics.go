package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Booking metrics
	BookingsCreated    prometheus.Counter
	BookingTransitions *prometheus.CounterVec
	MessagesPosted     prometheus.Counter

	// Review metrics
	ReviewsSubmitted        prometheus.Counter
	RatingRecomputeFailures prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

var (
	metrics *Metrics
	once    sync.Once
)

// Init initializes all Prometheus metrics
func Init() *Metrics {
	once.Do(func() {
		metrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),
			BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "karigar_bookings_created_total",
				Help: "Bookings created",
			}),
			BookingTransitions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "karigar_booking_transitions_total",
					Help: "Booking status transitions",
				},
				[]string{"from", "to"},
			),
			MessagesPosted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "karigar_booking_messages_total",
				Help: "Messages appended to booking threads",
			}),
			ReviewsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "karigar_reviews_submitted_total",
				Help: "Reviews submitted",
			}),
			RatingRecomputeFailures: promauto.NewCounter(prometheus.CounterOpts{
				Name: "karigar_rating_recompute_failures_total",
				Help: "Provider rating recomputations that failed after a review was saved",
			}),
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "karigar_cache_hits_total",
					Help: "Cache hits",
				},
				[]string{"cache"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "karigar_cache_misses_total",
					Help: "Cache misses",
				},
				[]string{"cache"},
			),
			RateLimitHits: promauto.NewCounter(prometheus.CounterOpts{
				Name: "karigar_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			}),
		}
	})
	return metrics
}

// Get returns the metrics, initializing them on first use.
func Get() *Metrics {
	return Init()
}

// RecordTransition counts one booking status change.
func (m *Metrics) RecordTransition(from, to string) {
	m.BookingTransitions.WithLabelValues(from, to).Inc()
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves /metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
