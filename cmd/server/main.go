package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	_ "google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"madiskarte.ai/cmd/server/advisor"
	"madiskarte.ai/cmd/server/llm"
	"madiskarte.ai/rpc"
)

type config struct {
	port                   int
	env                    string
	sessionCleanupInterval time.Duration
	sessionIdleTimeout     time.Duration
	metricsPort            int    // 0 disables the metrics endpoint
	provider               string // "gemini" or "echo"
	model                  string
	geminiBaseURL          string
	tlsCertFile            string
	tlsKeyFile             string
}

type application struct {
	config       config
	logger       *slog.Logger
	sessionStore *SessionStore
	advisor      *advisor.Service
	rpc.UnimplementedMentorServiceServer
}

// newApplication wires the advisor and session store around provider
func newApplication(cfg config, logger *slog.Logger, provider llm.Provider) *application {
	return &application{
		config:       cfg,
		logger:       logger,
		sessionStore: NewSessionStore(cfg.sessionIdleTimeout),
		advisor:      advisor.NewService(provider, cfg.model, logger),
	}
}

// loadConfig loads configuration from environment variables
func loadConfig(logger *slog.Logger) (config, error) {
	cfg := config{}

	// Load .env file - check current directory first, then project root
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			logger.Warn("no .env file found, using environment variables only")
		}
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		logger.Error("PORT environment variable is required")
		return cfg, fmt.Errorf("PORT environment variable is required")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Error("invalid PORT value", "value", portStr, "error", err)
		return cfg, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.port = port

	cfg.env = os.Getenv("APP_ENV")
	if cfg.env == "" {
		logger.Error("APP_ENV environment variable is required")
		return cfg, fmt.Errorf("APP_ENV environment variable is required")
	}

	cleanupStr := os.Getenv("SESSION_CLEANUP_INTERVAL")
	if cleanupStr == "" {
		logger.Error("SESSION_CLEANUP_INTERVAL environment variable is required")
		return cfg, fmt.Errorf("SESSION_CLEANUP_INTERVAL environment variable is required")
	}
	interval, err := time.ParseDuration(cleanupStr)
	if err != nil || interval <= 0 {
		logger.Error("invalid SESSION_CLEANUP_INTERVAL value", "value", cleanupStr, "error", err)
		return cfg, fmt.Errorf("invalid SESSION_CLEANUP_INTERVAL %q", cleanupStr)
	}
	cfg.sessionCleanupInterval = interval

	timeoutStr := os.Getenv("SESSION_IDLE_TIMEOUT")
	if timeoutStr == "" {
		logger.Error("SESSION_IDLE_TIMEOUT environment variable is required")
		return cfg, fmt.Errorf("SESSION_IDLE_TIMEOUT environment variable is required")
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		logger.Error("invalid SESSION_IDLE_TIMEOUT value", "value", timeoutStr, "error", err)
		return cfg, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q", timeoutStr)
	}
	cfg.sessionIdleTimeout = timeout

	metricsStr := os.Getenv("METRICS_PORT")
	if metricsStr != "" {
		metricsPort, err := strconv.Atoi(metricsStr)
		if err != nil || metricsPort < 0 {
			logger.Error("invalid METRICS_PORT value", "value", metricsStr, "error", err)
			return cfg, fmt.Errorf("invalid METRICS_PORT %q", metricsStr)
		}
		cfg.metricsPort = metricsPort
	}

	cfg.provider = os.Getenv("LLM_PROVIDER")
	if cfg.provider == "" {
		cfg.provider = llm.KindGemini
	}

	cfg.model = os.Getenv("GEMINI_MODEL")
	if cfg.model == "" {
		cfg.model = llm.DefaultModel
	}

	cfg.geminiBaseURL = os.Getenv("GEMINI_BASE_URL")

	// TLS is optional; both files must be given together
	cfg.tlsCertFile = os.Getenv("TLS_CERT_FILE")
	cfg.tlsKeyFile = os.Getenv("TLS_KEY_FILE")
	if (cfg.tlsCertFile == "") != (cfg.tlsKeyFile == "") {
		logger.Error("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
		return cfg, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	return cfg, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(logger)
	if err != nil {
		os.Exit(1)
	}

	// the credential is read per request, so rotating it needs no restart
	provider := llm.NewProvider(cfg.provider, cfg.env, llm.Config{
		Credential: llm.EnvCredential("GEMINI_API_KEY", "API_KEY"),
		BaseURL:    cfg.geminiBaseURL,
	}, logger)

	app := newApplication(cfg, logger, provider)

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			ErrorInterceptor(),
		),
	}
	if cfg.tlsCertFile != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.tlsCertFile, cfg.tlsKeyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials", "error", err)
			os.Exit(1)
		}
		opts = append(opts, grpc.Creds(creds))
	} else {
		logger.Warn("TLS not configured, serving plaintext gRPC")
	}

	s := grpc.NewServer(opts...)
	rpc.RegisterMentorServiceServer(s, app)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	// Enable reflection in development only
	if cfg.env == "development" {
		reflection.Register(s)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.port))
	if err != nil {
		logger.Error("failed to listen", "error", err)
		os.Exit(1)
	}

	// Start cleanup goroutine for session management
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.sessionCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := app.sessionStore.CleanupIdleSessions(); removed > 0 {
					sessionsExpiredTotal.Add(float64(removed))
					logger.Info("expired idle chat sessions", "count", removed)
				}
			case <-done:
				return
			}
		}
	}()

	startMetricsUpdater(app, 30*time.Second, done)

	var metricsServer *http.Server
	if cfg.metricsPort > 0 {
		metricsServer = newMetricsServer(fmt.Sprintf(":%d", cfg.metricsPort))
		go func() {
			logger.Info("starting metrics server", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting gRPC server",
			"addr", lis.Addr(),
			"env", cfg.env,
			"provider", provider.Name(),
			"model", cfg.model)
		if err := s.Serve(lis); err != nil {
			logger.Error("failed to serve", "error", err)
		}
	}()

	<-sigChan
	logger.Info("shutting down gracefully...")

	healthServer.Shutdown()
	close(done)

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
		cancel()
	}

	s.GracefulStop()
	logger.Info("server stopped")
}
