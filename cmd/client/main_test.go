package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"madiskarte.ai/rpc"
)

type fakeMentorServer struct {
	rpc.UnimplementedMentorServiceServer

	mu         sync.Mutex
	profitReqs []*rpc.ProfitAdviceRequest
	states     map[string]bool
	messages   []string
	ended      []string
}

func (s *fakeMentorServer) GetMarketTrends(ctx context.Context, req *rpc.MarketTrendsRequest) (*rpc.MarketTrendsResponse, error) {
	return &rpc.MarketTrendsResponse{
		Text:         "Uso ang milk tea sa " + req.Location,
		Sources:      []rpc.Source{{Title: "Reference", URI: "#"}},
		Places:       []rpc.Place{},
		Completeness: rpc.CompletenessPartial,
	}, nil
}

func (s *fakeMentorServer) CalculateProfitAdvice(ctx context.Context, req *rpc.ProfitAdviceRequest) (*rpc.TextResponse, error) {
	s.mu.Lock()
	s.profitReqs = append(s.profitReqs, req)
	s.mu.Unlock()
	return &rpc.TextResponse{Text: "Markup ng 30%", Completeness: rpc.CompletenessComplete}, nil
}

func (s *fakeMentorServer) GetPublishingChecklist(ctx context.Context, req *rpc.GetPublishingChecklistRequest) (*rpc.GetPublishingChecklistResponse, error) {
	s.mu.Lock()
	s.states = req.States
	s.mu.Unlock()
	return &rpc.GetPublishingChecklistResponse{
		Items:       []rpc.ChecklistItem{{ID: "hosting", Label: "Host the web app", Done: req.States["hosting"]}},
		Completed:   2,
		Total:       5,
		Percent:     40,
		GitCommands: []rpc.GitCommand{{Command: "git init", Description: "Initialize"}},
	}, nil
}

func (s *fakeMentorServer) StartMentorChat(ctx context.Context, req *rpc.StartMentorChatRequest) (*rpc.StartMentorChatResponse, error) {
	return &rpc.StartMentorChatResponse{SessionID: "session-1"}, nil
}

func (s *fakeMentorServer) SendMentorMessage(ctx context.Context, req *rpc.SendMentorMessageRequest) (*rpc.SendMentorMessageResponse, error) {
	s.mu.Lock()
	s.messages = append(s.messages, req.Message)
	s.mu.Unlock()
	return &rpc.SendMentorMessageResponse{
		SessionID:    req.SessionID,
		Reply:        "Kaya mo yan!",
		Completeness: rpc.CompletenessComplete,
	}, nil
}

func (s *fakeMentorServer) EndMentorChat(ctx context.Context, req *rpc.EndMentorChatRequest) (*rpc.EndMentorChatResponse, error) {
	s.mu.Lock()
	s.ended = append(s.ended, req.SessionID)
	count := len(s.messages) * 2
	s.mu.Unlock()
	return &rpc.EndMentorChatResponse{SessionID: req.SessionID, MessageCount: uint32(count)}, nil
}

func setupTestApp(t *testing.T) (*application, *fakeMentorServer) {
	t.Helper()

	fake := &fakeMentorServer{}
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	rpc.RegisterMentorServiceServer(s, fake)
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	app := &application{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(app.byteTracker),
		grpc.WithStatsHandler(&statsHandler{metrics: &app.metrics}),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	app.conn = conn
	app.grpc = rpc.NewMentorServiceClient(conn)
	return app, fake
}

func runCommand(t *testing.T, app *application, stdin string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))

	if err := root.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func TestTrendsCommand(t *testing.T) {
	app, _ := setupTestApp(t)

	out := runCommand(t, app, "", "trends", "Quezon", "City")

	if !strings.Contains(out, "Uso ang milk tea sa Quezon City") {
		t.Errorf("expected joined location in reply, got:\n%s", out)
	}
	if !strings.Contains(out, "Reference (#)") {
		t.Errorf("expected sources to be listed, got:\n%s", out)
	}
	if !strings.Contains(out, "(partial result)") {
		t.Errorf("expected partial marker, got:\n%s", out)
	}
}

func TestProfitCommand(t *testing.T) {
	app, fake := setupTestApp(t)

	out := runCommand(t, app, "", "profit", "--business", "Lugawan", "--capital", "₱10,000", "--expenses", "3000")

	if !strings.Contains(out, "Markup ng 30%") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "result)") {
		t.Errorf("complete results must not be marked, got:\n%s", out)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.profitReqs) != 1 {
		t.Fatalf("expected one request, got %d", len(fake.profitReqs))
	}
	got := fake.profitReqs[0]
	if got.Business != "Lugawan" || got.Capital != "₱10,000" || got.Expenses != "3000" {
		t.Errorf("flags not forwarded verbatim: %+v", got)
	}
}

func TestChecklistCommand(t *testing.T) {
	app, fake := setupTestApp(t)

	out := runCommand(t, app, "", "checklist", "--done", "hosting,assets")

	if !strings.Contains(out, "Progress: 2/5 (40%)") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "[x] hosting") {
		t.Errorf("expected hosting to be checked, got:\n%s", out)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if !fake.states["hosting"] || !fake.states["assets"] || len(fake.states) != 2 {
		t.Errorf("unexpected states sent: %v", fake.states)
	}
}

func TestChatCommand(t *testing.T) {
	app, fake := setupTestApp(t)

	out := runCommand(t, app, "Magandang araw po\n\n"+quitCommand+"\nignored after quit\n", "chat")

	if strings.Count(out, "Mentor: Kaya mo yan!") != 1 {
		t.Errorf("expected exactly one reply, got:\n%s", out)
	}
	if !strings.Contains(out, "[Total:") {
		t.Errorf("expected byte totals, got:\n%s", out)
	}

	if !strings.Contains(out, "Chat ended after 2 messages.") {
		t.Errorf("expected the session to be ended, got:\n%s", out)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.messages) != 1 || fake.messages[0] != "Magandang araw po" {
		t.Errorf("unexpected messages sent: %v", fake.messages)
	}
	if len(fake.ended) != 1 || fake.ended[0] != "session-1" {
		t.Errorf("expected session-1 to be ended once, got %v", fake.ended)
	}

	payloadOut, payloadIn := app.metrics.getPayloadTotals()
	if payloadOut == 0 || payloadIn == 0 {
		t.Errorf("expected payload bytes to be tracked, got out=%d in=%d", payloadOut, payloadIn)
	}
	wireOut, wireIn := app.metrics.getWireTotals()
	if wireOut == 0 || wireIn == 0 {
		t.Errorf("expected wire bytes to be tracked, got out=%d in=%d", wireOut, wireIn)
	}
}

func TestChatCommand_EndsOnEOF(t *testing.T) {
	app, fake := setupTestApp(t)

	runCommand(t, app, "Salamat po\n", "chat")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.ended) != 1 {
		t.Errorf("expected the session to be ended when input runs out, got %v", fake.ended)
	}
}

func TestStatsFlag(t *testing.T) {
	app, _ := setupTestApp(t)

	out := runCommand(t, app, "", "--stats", "checklist")
	if !strings.Contains(out, "Usage:") || !strings.Contains(out, "GetPublishingChecklist") {
		t.Errorf("expected per-method usage, got:\n%s", out)
	}

	app2, _ := setupTestApp(t)
	if out := runCommand(t, app2, "", "checklist"); strings.Contains(out, "Usage:") {
		t.Errorf("usage must only print with --stats, got:\n%s", out)
	}
}

func TestMetrics_PerMethodTotals(t *testing.T) {
	var m metrics

	m.recordCall(rpc.MentorService_SendMentorMessage_FullMethodName, 40, 120, false)
	m.recordCall(rpc.MentorService_SendMentorMessage_FullMethodName, 60, 0, true)
	m.recordCall(rpc.MentorService_GetMarketTrends_FullMethodName, 10, 500, false)

	totals := m.methodTotals()
	if len(totals) != 2 {
		t.Fatalf("expected 2 methods, got %v", totals)
	}
	send := totals["SendMentorMessage"]
	if send.Calls != 2 || send.Failures != 1 || send.PayloadOut != 100 || send.PayloadIn != 120 {
		t.Errorf("unexpected SendMentorMessage totals: %+v", send)
	}

	out, in := m.getPayloadTotals()
	if out != 110 || in != 620 {
		t.Errorf("expected payload totals 110/620, got %d/%d", out, in)
	}

	var buf bytes.Buffer
	m.printUsage(&buf)
	usage := buf.String()
	if strings.Index(usage, "GetMarketTrends") > strings.Index(usage, "SendMentorMessage") {
		t.Errorf("expected methods sorted by name, got:\n%s", usage)
	}
	if !strings.Contains(usage, "2 calls (1 failed)") {
		t.Errorf("expected failure count in usage, got:\n%s", usage)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransportCredentials(t *testing.T) {
	app := &application{}
	creds, err := app.transportCredentials()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Info().SecurityProtocol != "insecure" {
		t.Errorf("expected insecure credentials without a CA, got %q", creds.Info().SecurityProtocol)
	}

	app.config.caCertFile = t.TempDir() + "/missing.crt"
	if _, err := app.transportCredentials(); err == nil {
		t.Error("expected error for missing CA file")
	}
}
