package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"madiskarte.ai/cmd/server/llm"
	"madiskarte.ai/rpc"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config {
	return config{
		env:                    "test",
		sessionCleanupInterval: time.Minute,
		sessionIdleTimeout:     time.Hour,
		provider:               llm.KindGemini,
		model:                  "test-model",
	}
}

// setupTestApplication creates an application backed by a mock provider
func setupTestApplication(t testing.TB, responseText string) (*application, *llm.MockProvider) {
	t.Helper()
	mockProvider := llm.NewMockProvider("Mock", responseText)
	return newApplication(testConfig(), testLogger(), mockProvider), mockProvider
}

// startTestServer serves app over an in-memory listener with the production
// interceptor chain and returns a connected client
func startTestServer(t testing.TB, app *application) rpc.MentorServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(app.logger),
		ErrorInterceptor(),
	))
	rpc.RegisterMentorServiceServer(s, app)

	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return rpc.NewMentorServiceClient(conn)
}

// generateRealisticMessage creates mentor chat messages of varying realistic sizes
func generateRealisticMessage(size string, index int) string {
	switch size {
	case "small":
		return fmt.Sprintf("Paano ko mapapalago ang sari-sari store ko sa barangay #%d? Kulang po ang puhunan.", index)
	case "medium":
		base := fmt.Sprintf("Nagtitinda po ako ng kakanin sa palengke, stall #%d. ", index)
		filler := "Mga 3,000 pesos ang kita ko kada araw pero mataas ang renta at kuryente. " +
			"Gusto ko sanang mag-online selling sa Facebook at TikTok pero hindi ko alam kung saan magsisimula. " +
			"Ano po ang dapat kong unahin: packaging, delivery partner, o pag-register sa DTI? "
		return base + strings.Repeat(filler, 4)
	case "large":
		ledger := "Petsa | Benta | Gastos | Tubo\n" + strings.Repeat("2026-01-01 | 3500 | 2100 | 1400\n", 120)
		return fmt.Sprintf("Heto po ang tala ng benta ko (batch %d):\n\n%s\nTama po ba ang presyo ko?", index, ledger)
	default:
		return fmt.Sprintf("Test message %d", index)
	}
}

var systemInfoOnce sync.Once

func printSystemInfo() {
	systemInfoOnce.Do(func() {
		fmt.Println("=== System Information ===")
		fmt.Printf("CPU: %d-core %s\n", runtime.NumCPU(), runtime.GOARCH)
		fmt.Printf("OS: %s\n", runtime.GOOS)
		fmt.Printf("Go: %s (GOMAXPROCS=%d)\n", runtime.Version(), runtime.GOMAXPROCS(0))
		fmt.Println("===========================")
	})
}
