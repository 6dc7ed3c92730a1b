package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"

	"madiskarte.ai/rpc"
)

const quitCommand = "/quit"

type config struct {
	serverAddr string
	caCertFile string
	timeout    time.Duration
	showStats  bool
}

type application struct {
	config  config
	logger  *slog.Logger
	conn    *grpc.ClientConn
	grpc    rpc.MentorServiceClient
	metrics metrics
}

func main() {
	// .env is optional for the client
	_ = godotenv.Load(".env")

	app := &application{
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	root := newRootCmd(app)
	err := root.Execute()
	if app.conn != nil {
		app.conn.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(app *application) *cobra.Command {
	root := &cobra.Command{
		Use:           "madiskarte",
		Short:         "Madiskarte-E mentor client",
		Long:          "Command line client for the Madiskarte-E business mentor service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.connect()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if app.config.showStats {
				app.metrics.printUsage(cmd.OutOrStdout())
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.config.serverAddr, "addr", envOr("SERVER_ADDR", "localhost:4000"), "gRPC server address")
	flags.StringVar(&app.config.caCertFile, "ca-cert", os.Getenv("CA_CERT_FILE"), "CA certificate for TLS (plaintext when empty)")
	flags.DurationVar(&app.config.timeout, "timeout", 60*time.Second, "per-request timeout")
	flags.BoolVar(&app.config.showStats, "stats", false, "print per-call byte usage when the command finishes")

	root.AddCommand(
		newTrendsCmd(app),
		newProfitCmd(app),
		newRegisterCmd(app),
		newMetadataCmd(app),
		newChecklistCmd(app),
		newChatCmd(app),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (app *application) connect() error {
	// already wired, e.g. to an in-memory server
	if app.grpc != nil {
		return nil
	}

	creds, err := app.transportCredentials()
	if err != nil {
		return err
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.UseCompressor(gzip.Name)),
		grpc.WithUnaryInterceptor(app.byteTracker),
		grpc.WithStatsHandler(&statsHandler{metrics: &app.metrics}),
	}

	conn, err := grpc.NewClient(app.config.serverAddr, opts...)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", app.config.serverAddr, err)
	}

	app.conn = conn
	app.grpc = rpc.NewMentorServiceClient(conn)
	app.logger.Debug("connected to server", "addr", app.config.serverAddr)
	return nil
}

func (app *application) transportCredentials() (credentials.TransportCredentials, error) {
	if app.config.caCertFile == "" {
		return insecure.NewCredentials(), nil
	}

	caCert, err := os.ReadFile(app.config.caCertFile)
	if err != nil {
		return nil, fmt.Errorf("read CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no certificates found in %s", app.config.caCertFile)
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}), nil
}
