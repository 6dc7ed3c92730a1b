package main

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/stats"

	"madiskarte.ai/rpc"
)

const kibibyte = 1024

// callTotals is the traffic of one MentorService method
type callTotals struct {
	Calls      int
	Failures   int
	PayloadOut int64
	PayloadIn  int64
}

type metrics struct {
	// encoded message bytes per method, before compression and framing
	byMethod map[string]*callTotals

	// bytes on the wire, including gRPC framing and headers
	wireBytesIn  int64
	wireBytesOut int64

	mu sync.RWMutex
}

func (m *metrics) recordCall(method string, out, in int64, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.byMethod == nil {
		m.byMethod = make(map[string]*callTotals)
	}
	name := path.Base(method)
	totals, ok := m.byMethod[name]
	if !ok {
		totals = &callTotals{}
		m.byMethod[name] = totals
	}
	totals.Calls++
	if failed {
		totals.Failures++
	}
	totals.PayloadOut += out
	totals.PayloadIn += in
}

func (m *metrics) addWireBytes(out, in int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wireBytesOut += out
	m.wireBytesIn += in
}

func (m *metrics) getPayloadTotals() (int64, int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out, in int64
	for _, totals := range m.byMethod {
		out += totals.PayloadOut
		in += totals.PayloadIn
	}
	return out, in
}

func (m *metrics) getWireTotals() (int64, int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wireBytesOut, m.wireBytesIn
}

// methodTotals returns a copy of the per-method totals
func (m *metrics) methodTotals() map[string]callTotals {
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := make(map[string]callTotals, len(m.byMethod))
	for name, t := range m.byMethod {
		totals[name] = *t
	}
	return totals
}

// printUsage writes one line per MentorService method called, sorted by name
func (m *metrics) printUsage(out io.Writer) {
	totals := m.methodTotals()
	if len(totals) == 0 {
		return
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\nUsage:")
	for _, name := range names {
		t := totals[name]
		fmt.Fprintf(out, "  %-30s %3d calls (%d failed)  %s sent, %s received\n",
			name, t.Calls, t.Failures, formatBytes(t.PayloadOut), formatBytes(t.PayloadIn))
	}
	wireOut, wireIn := m.getWireTotals()
	fmt.Fprintf(out, "  %-30s %s sent, %s received\n", "wire total", formatBytes(wireOut), formatBytes(wireIn))
}

func formatBytes(bytes int64) string {
	if bytes < kibibyte {
		return fmt.Sprintf("%d B", bytes)
	}
	kb := float64(bytes) / kibibyte
	return fmt.Sprintf("%.1f KB", kb)
}

func (app *application) byteTracker(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	reqBytes := rpc.Size(req)

	err := invoker(ctx, method, req, reply, cc, opts...)

	respBytes := 0
	if err == nil {
		respBytes = rpc.Size(reply)
	}

	app.metrics.recordCall(method, int64(reqBytes), int64(respBytes), err != nil)
	return err
}

// statsHandler implements grpc/stats.Handler to track wire-level bytes
type statsHandler struct {
	metrics *metrics
}

func (h *statsHandler) TagRPC(ctx context.Context, info *stats.RPCTagInfo) context.Context {
	return ctx
}

func (h *statsHandler) HandleRPC(ctx context.Context, s stats.RPCStats) {
	switch stat := s.(type) {
	case *stats.OutPayload:
		h.metrics.addWireBytes(int64(stat.WireLength), 0)
	case *stats.InPayload:
		h.metrics.addWireBytes(0, int64(stat.WireLength))
	case *stats.InHeader:
		if stat.WireLength > 0 {
			h.metrics.addWireBytes(0, int64(stat.WireLength))
		}
	case *stats.InTrailer:
		if stat.WireLength > 0 {
			h.metrics.addWireBytes(0, int64(stat.WireLength))
		}
	}
}

func (h *statsHandler) TagConn(ctx context.Context, info *stats.ConnTagInfo) context.Context {
	return ctx
}

func (h *statsHandler) HandleConn(ctx context.Context, s stats.ConnStats) {}
