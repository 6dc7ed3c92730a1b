package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "madiskarte_request_duration_seconds",
			Help:    "Duration of gRPC requests in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"method"},
	)

	llmCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "madiskarte_llm_call_duration_seconds",
			Help:    "Duration of AI provider calls in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 30.0, 60.0},
		},
		[]string{"provider", "operation"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "madiskarte_active_chat_sessions",
			Help: "Number of live mentor chat sessions",
		},
	)

	sessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "madiskarte_chat_sessions_created_total",
			Help: "Total number of mentor chat sessions opened",
		},
	)

	sessionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "madiskarte_chat_sessions_expired_total",
			Help: "Total number of mentor chat sessions removed for inactivity",
		},
	)

	chatTurnsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "madiskarte_chat_turns",
			Help: "Turns held across all live chat sessions",
		},
	)

	// completeness of normalized answers, so fallbacks show up on dashboards
	resultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "madiskarte_results_total",
			Help: "Normalized AI results by operation and completeness",
		},
		[]string{"operation", "completeness"},
	)

	groundingSources = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "madiskarte_grounding_sources",
			Help:    "Web sources returned per market trends answer",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	grpcErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "madiskarte_grpc_errors_total",
			Help: "Total number of gRPC errors by method and code",
		},
		[]string{"method", "grpc_code"},
	)

	llmErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "madiskarte_llm_errors_total",
			Help: "Total number of AI provider errors",
		},
		[]string{"provider", "error_type"},
	)

	serverConfigInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "madiskarte_server_config_info",
			Help: "Server configuration information as labels",
		},
		[]string{"env", "provider", "model", "session_idle_timeout"},
	)

	serverStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "madiskarte_server_start_time_seconds",
			Help: "Unix timestamp when the server started",
		},
	)
)

func recordRequestDuration(method string, seconds float64) {
	requestDuration.WithLabelValues(method).Observe(seconds)
}

func recordLLMCallDuration(provider, operation string, seconds float64) {
	llmCallDuration.WithLabelValues(provider, operation).Observe(seconds)
}

func incrementSessionsCreated() {
	sessionsCreatedTotal.Inc()
}

func incrementResult(operation, completeness string) {
	resultsTotal.WithLabelValues(operation, completeness).Inc()
}

func recordGroundingSources(n int) {
	groundingSources.Observe(float64(n))
}

func incrementGRPCError(method string, grpcCode string) {
	grpcErrors.WithLabelValues(method, grpcCode).Inc()
}

func incrementLLMError(provider string, errorType string) {
	llmErrors.WithLabelValues(provider, errorType).Inc()
}

// updateSessionMetrics refreshes the session gauges from the store
func updateSessionMetrics(app *application) {
	infos := app.sessionStore.GetAllSessionsInfo()
	turns := 0
	for _, info := range infos {
		turns += info.MessageCount
	}
	activeSessions.Set(float64(len(infos)))
	chatTurnsTotal.Set(float64(turns))
}

// initializeServerMetrics sets up one-time server configuration metrics
func initializeServerMetrics(app *application) {
	serverStartTime.Set(float64(time.Now().Unix()))

	serverConfigInfo.WithLabelValues(
		app.config.env,
		app.advisor.ProviderName(),
		app.advisor.Model(),
		app.config.sessionIdleTimeout.String(),
	).Set(1)
}

// startMetricsUpdater refreshes session metrics every interval until done is closed
func startMetricsUpdater(app *application, interval time.Duration, done <-chan struct{}) {
	initializeServerMetrics(app)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				updateSessionMetrics(app)
			case <-done:
				return
			}
		}
	}()
}

// newMetricsServer exposes the default registry on /metrics
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
