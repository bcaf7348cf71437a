package metrics

import (
	"net/http"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics for the marketplace core.
type MetricsManager struct {
	Registry             *prometheus.Registry
	SignupsTotal         prometheus.Counter
	LoginsTotal          prometheus.Counter
	AuthFailuresTotal    *prometheus.CounterVec
	ListingsCreatedTotal prometheus.Counter
	ListingsDeletedTotal prometheus.Counter
	ReviewsCreatedTotal  prometheus.Counter
	SharesTotal          *prometheus.CounterVec
	WishlistTogglesTotal prometheus.Counter
	ChatHandoffsTotal    prometheus.Counter
	APIErrorsTotal       *prometheus.CounterVec
	APILatency           *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	signupsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "signups_total",
		Help:      "Total number of successful signups.",
	})
	loginsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	})
	authFailuresTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts by kind.",
	}, []string{"kind"}) // "validation" or "service"
	listingsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	})
	listingsDeletedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_deleted_total",
		Help:      "Total number of listings permanently deleted.",
	})
	reviewsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews appended to listings.",
	})
	sharesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "shares_total",
		Help:      "Total number of share attempts by outcome.",
	}, []string{"outcome"}) // "native", "aborted", "copied", "failed"
	wishlistTogglesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "wishlist_toggles_total",
		Help:      "Total number of wishlist toggle hand-offs.",
	})
	chatHandoffsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "chat_handoffs_total",
		Help:      "Total number of chat initiation hand-offs.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by method.",
	}, []string{"method", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	registry.MustRegister(
		signupsTotal,
		loginsTotal,
		authFailuresTotal,
		listingsCreatedTotal,
		listingsDeletedTotal,
		reviewsCreatedTotal,
		sharesTotal,
		wishlistTogglesTotal,
		chatHandoffsTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:             registry,
		SignupsTotal:         signupsTotal,
		LoginsTotal:          loginsTotal,
		AuthFailuresTotal:    authFailuresTotal,
		ListingsCreatedTotal: listingsCreatedTotal,
		ListingsDeletedTotal: listingsDeletedTotal,
		ReviewsCreatedTotal:  reviewsCreatedTotal,
		SharesTotal:          sharesTotal,
		WishlistTogglesTotal: wishlistTogglesTotal,
		ChatHandoffsTotal:    chatHandoffsTotal,
		APIErrorsTotal:       apiErrorsTotal,
		APILatency:           apiLatency,
	}
}

// StartMetricsServer starts an HTTP server to expose Prometheus metrics.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
