package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	PredictionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bkt_predictions_total",
			Help: "Total number of BKT predictions served, by parameter source",
		},
		[]string{"params_source"},
	)

	ObservationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bkt_observations_total",
			Help: "Total number of BKT observations applied",
		},
		[]string{"outcome"},
	)

	SuccessPrediction = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bkt_success_prediction",
			Help:    "Distribution of predicted success probabilities",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(PredictionCounter)
	prometheus.MustRegister(ObservationCounter)
	prometheus.MustRegister(SuccessPrediction)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
