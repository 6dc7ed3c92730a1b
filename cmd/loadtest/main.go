package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"madiskarte.ai/rpc"
)

// LoadTestConfig holds configuration for the load test
type LoadTestConfig struct {
	ServerAddress string
	CACertPath    string // empty means plaintext
	Scenario      *Scenario
}

// LoadTestResults holds the results of a load test
type LoadTestResults struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	MinLatency     time.Duration
	MaxLatency     time.Duration
	Latencies      []time.Duration // successful requests only, for percentiles
	ByOperation    map[string]int64
	Fallbacks      int64
	StartTime      time.Time
	EndTime        time.Time
	ErrorsByType   map[string]int64
}

// LoadTester manages the load testing
type LoadTester struct {
	config  LoadTestConfig
	dial    func() (*grpc.ClientConn, error)
	limiter *rate.Limiter
	results LoadTestResults
	mu      sync.Mutex
}

// NewLoadTester creates a new load tester
func NewLoadTester(config LoadTestConfig) *LoadTester {
	lt := &LoadTester{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.Scenario.RPS), config.Scenario.Burst),
		results: LoadTestResults{
			ErrorsByType: make(map[string]int64),
			ByOperation:  make(map[string]int64),
			MinLatency:   time.Hour,
		},
	}
	lt.dial = lt.dialServer
	return lt
}

func (lt *LoadTester) dialServer() (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if lt.config.CACertPath != "" {
		tlsCreds, err := lt.createTLSCredentialsWithCA()
		if err != nil {
			return nil, err
		}
		creds = tlsCreds
	}
	return grpc.NewClient(lt.config.ServerAddress, grpc.WithTransportCredentials(creds))
}

// runUser simulates a single user's session. Request failures are recorded,
// not returned, so one user's errors do not stop the others.
func (lt *LoadTester) runUser(ctx context.Context, userID int) error {
	conn, err := lt.dial()
	if err != nil {
		lt.recordError("connection_error", err)
		return nil
	}
	defer conn.Close()

	client := rpc.NewMentorServiceClient(conn)
	var sessionID string

	for i := 0; i < lt.config.Scenario.RequestsPerUser; i++ {
		// the shared limiter paces all users together
		if err := lt.limiter.Wait(ctx); err != nil {
			return nil
		}

		op := lt.config.Scenario.pick(userID + i)
		startTime := time.Now()
		completeness, err := lt.invoke(ctx, client, op, &sessionID, i)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			lt.recordError(op.Name, err)
			continue
		}
		lt.recordSuccess(op.Name, completeness, time.Since(startTime))
	}

	if sessionID != "" {
		lt.endChat(ctx, client, sessionID)
	}
	return nil
}

// endChat frees the user's server session so a run does not leave them to the
// idle sweep. Only a failed end shows up in the results.
func (lt *LoadTester) endChat(ctx context.Context, client rpc.MentorServiceClient, sessionID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := client.EndMentorChat(ctx, &rpc.EndMentorChatRequest{SessionID: sessionID}); err != nil {
		lt.recordError("end_chat", err)
	}
}

func (lt *LoadTester) invoke(ctx context.Context, client rpc.MentorServiceClient, op Operation, sessionID *string, i int) (string, error) {
	switch op.Name {
	case opMarketTrends:
		resp, err := client.GetMarketTrends(ctx, &rpc.MarketTrendsRequest{Location: op.Location})
		if err != nil {
			return "", err
		}
		return resp.Completeness, nil
	case opProfitAdvice:
		resp, err := client.CalculateProfitAdvice(ctx, &rpc.ProfitAdviceRequest{
			Business: op.Business,
			Capital:  op.Capital,
			Expenses: op.Expenses,
		})
		if err != nil {
			return "", err
		}
		return resp.Completeness, nil
	case opRegistrationGuide:
		resp, err := client.GetBusinessRegistrationGuide(ctx, &rpc.RegistrationGuideRequest{BusinessType: op.Business})
		if err != nil {
			return "", err
		}
		return resp.Completeness, nil
	case opPlayStoreMetadata:
		resp, err := client.GeneratePlayStoreMetadata(ctx, &rpc.PlayStoreMetadataRequest{})
		if err != nil {
			return "", err
		}
		return resp.Completeness, nil
	case opChecklist:
		_, err := client.GetPublishingChecklist(ctx, &rpc.GetPublishingChecklistRequest{})
		return rpc.CompletenessComplete, err
	case opMentorChat:
		if *sessionID == "" {
			start, err := client.StartMentorChat(ctx, &rpc.StartMentorChatRequest{})
			if err != nil {
				return "", err
			}
			*sessionID = start.SessionID
		}
		resp, err := client.SendMentorMessage(ctx, &rpc.SendMentorMessageRequest{
			SessionID: *sessionID,
			Message:   op.Messages[i%len(op.Messages)],
		})
		if err != nil {
			return "", err
		}
		return resp.Completeness, nil
	}
	return "", fmt.Errorf("unknown operation %q", op.Name)
}

// recordSuccess records a successful request
func (lt *LoadTester) recordSuccess(operation, completeness string, latency time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.results.TotalRequests++
	lt.results.SuccessfulReqs++
	lt.results.ByOperation[operation]++
	if completeness == rpc.CompletenessFallback {
		lt.results.Fallbacks++
	}

	lt.results.Latencies = append(lt.results.Latencies, latency)

	if latency < lt.results.MinLatency {
		lt.results.MinLatency = latency
	}
	if latency > lt.results.MaxLatency {
		lt.results.MaxLatency = latency
	}
}

// recordError records a failed request under "<operation>: <grpc code>"
func (lt *LoadTester) recordError(operation string, err error) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	lt.results.ErrorsByType[fmt.Sprintf("%s: %s", operation, status.Code(err))]++
}

// createTLSCredentialsWithCA creates TLS credentials using a custom CA certificate
func (lt *LoadTester) createTLSCredentialsWithCA() (credentials.TransportCredentials, error) {
	caCert, err := os.ReadFile(lt.config.CACertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA certificate")
	}

	return credentials.NewTLS(&tls.Config{RootCAs: caCertPool, MinVersion: tls.VersionTLS12}), nil
}

// calculatePercentile calculates the nth percentile from a sorted slice of durations
func calculatePercentile(sortedLatencies []time.Duration, percentile float64) time.Duration {
	if len(sortedLatencies) == 0 {
		return 0
	}

	index := (percentile / 100.0) * float64(len(sortedLatencies)-1)
	if index == float64(int(index)) {
		return sortedLatencies[int(index)]
	}

	// Interpolate between two values
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedLatencies) {
		return sortedLatencies[lower]
	}

	weight := index - float64(lower)
	lowerVal := float64(sortedLatencies[lower].Nanoseconds())
	upperVal := float64(sortedLatencies[upper].Nanoseconds())
	interpolated := lowerVal + weight*(upperVal-lowerVal)

	return time.Duration(interpolated)
}

// Run executes the load test
func (lt *LoadTester) Run(ctx context.Context) LoadTestResults {
	ctx, cancel := context.WithTimeout(ctx, lt.config.Scenario.duration)
	defer cancel()

	lt.results.StartTime = time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < lt.config.Scenario.Users; i++ {
		userID := i
		g.Go(func() error {
			return lt.runUser(gctx, userID)
		})
	}
	_ = g.Wait()

	lt.results.EndTime = time.Now()
	return lt.results
}

// PrintResults prints the load test results
func (lt *LoadTester) PrintResults() {
	results := lt.results
	duration := results.EndTime.Sub(results.StartTime)

	fmt.Printf("\n=== Load Test Results ===\n")
	fmt.Printf("Duration: %v\n", duration)
	fmt.Printf("Concurrent Users: %d\n", lt.config.Scenario.Users)
	fmt.Printf("Requests Per User: %d\n", lt.config.Scenario.RequestsPerUser)
	fmt.Printf("Rate Limit: %.1f rps (burst %d)\n", lt.config.Scenario.RPS, lt.config.Scenario.Burst)
	fmt.Printf("\n--- Request Statistics ---\n")
	fmt.Printf("Total Requests: %d\n", results.TotalRequests)
	fmt.Printf("Successful: %d\n", results.SuccessfulReqs)
	fmt.Printf("Failed: %d\n", results.FailedReqs)
	if results.TotalRequests > 0 {
		fmt.Printf("Success Rate: %.2f%%\n", float64(results.SuccessfulReqs)/float64(results.TotalRequests)*100)
	}
	fmt.Printf("Fallback Answers: %d\n", results.Fallbacks)

	if len(results.ByOperation) > 0 {
		fmt.Printf("\n--- Operations ---\n")
		names := make([]string, 0, len(results.ByOperation))
		for name := range results.ByOperation {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %d\n", name, results.ByOperation[name])
		}
	}

	if results.SuccessfulReqs > 0 {
		fmt.Printf("\n--- Latency Distribution ---\n")

		sortedLatencies := make([]time.Duration, len(results.Latencies))
		copy(sortedLatencies, results.Latencies)
		sort.Slice(sortedLatencies, func(i, j int) bool {
			return sortedLatencies[i] < sortedLatencies[j]
		})

		fmt.Printf("Min Latency: %v\n", results.MinLatency)
		fmt.Printf("P50 (Median): %v\n", calculatePercentile(sortedLatencies, 50))
		fmt.Printf("P90: %v\n", calculatePercentile(sortedLatencies, 90))
		fmt.Printf("P99: %v\n", calculatePercentile(sortedLatencies, 99))
		fmt.Printf("P99.9: %v\n", calculatePercentile(sortedLatencies, 99.9))
		fmt.Printf("Max Latency: %v\n", results.MaxLatency)

		throughput := float64(results.SuccessfulReqs) / duration.Seconds()
		fmt.Printf("Throughput: %.2f requests/second\n", throughput)
	}

	if len(results.ErrorsByType) > 0 {
		fmt.Printf("\n--- Error Breakdown ---\n")
		for errorType, count := range results.ErrorsByType {
			fmt.Printf("%s: %d\n", errorType, count)
		}
	}
}

// getServerAddress constructs server address from environment variables
func getServerAddress() string {
	host := os.Getenv("SERVER_NAME")
	if host == "" {
		host = "localhost"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	return fmt.Sprintf("%s:%s", host, port)
}

// getCACertPath gets the CA certificate path from the environment or the usual certs/ locations
func getCACertPath() string {
	if caCertPath := os.Getenv("CA_CERT_PATH"); caCertPath != "" {
		return caCertPath
	}

	defaultPaths := []string{
		"../../certs/ca.crt", // From cmd/loadtest/
		"certs/ca.crt",       // From project root
		"./ca.crt",
	}

	for _, path := range defaultPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				log.Printf("Using CA certificate: %s", absPath)
				return absPath
			}
		}
	}

	log.Printf("No CA certificate found, connecting without TLS")
	return ""
}

func main() {
	scenarioPath := flag.String("scenario", "", "YAML scenario file (built-in mix when empty)")
	maxFailureRate := flag.Float64("max-failure-rate", 0.05, "exit non-zero above this failure ratio")
	flag.Parse()

	// Load .env file - check current directory first, then project root
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("no .env file found, using environment variables only")
		}
	}

	scenario := DefaultScenario()
	if *scenarioPath != "" {
		var err error
		scenario, err = LoadScenario(*scenarioPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	config := LoadTestConfig{
		ServerAddress: getServerAddress(),
		CACertPath:    getCACertPath(),
		Scenario:      scenario,
	}

	log.Printf("Starting load test against %s with %d users, %d requests each at %.1f rps...",
		config.ServerAddress, scenario.Users, scenario.RequestsPerUser, scenario.RPS)

	tester := NewLoadTester(config)
	results := tester.Run(context.Background())
	tester.PrintResults()

	if results.TotalRequests == 0 {
		log.Fatal("no requests completed")
	}
	failureRate := float64(results.FailedReqs) / float64(results.TotalRequests)
	if failureRate > *maxFailureRate {
		log.Fatalf("load test failed with %.2f%% failure rate", failureRate*100)
	}
	log.Println("Load test completed successfully!")
}
