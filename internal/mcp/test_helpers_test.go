package mcp

import (
	"context"
	"encoding/json"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/signal"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

type stubAnalyzer struct {
	resp    *domain.Analysis
	err     error
	gotSym  string
	gotMode string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, symbol, mode string) (*domain.Analysis, error) {
	s.gotSym, s.gotMode = symbol, mode
	return s.resp, s.err
}

type stubQuoter struct {
	quotes map[string]domain.PriceSnapshot
}

func (s *stubQuoter) Snapshot(ctx context.Context, symbol string) (domain.PriceSnapshot, error) {
	q, ok := s.quotes[symbol]
	if !ok {
		return domain.PriceSnapshot{Symbol: symbol}, domain.ErrDataUnavailable
	}
	return q, nil
}

func testServer() (*sdkmcp.Server, *stubAnalyzer, *stubQuoter) {
	analyzer := &stubAnalyzer{resp: &domain.Analysis{
		Symbol: "XAUUSD",
		Mode:   domain.ModeSwing,
		Bias:   domain.BiasBullish,
		Price:  2050,
		Buy:    domain.TradeSetup{Side: domain.SideBuy, Entry: 2040, StopLoss: 2030, TakeProfit: 2054, PipDistance: 1000},
		Sell:   domain.TradeSetup{Side: domain.SideSell, Entry: 2060, StopLoss: 2070, TakeProfit: 2046, PipDistance: 1000},
	}}
	quoter := &stubQuoter{quotes: map[string]domain.PriceSnapshot{
		"BTCUSD": {Symbol: "BTCUSD", Price: 65000, Change: 500, Percent: 0.78},
	}}

	srv := NewServer(nil, analyzer, quoter, signal.NewEngine(nil), ServerConfig{RequestTimeout: time.Second, Logger: zerolog.Nop()})
	return srv, analyzer, quoter
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}

func decodeStructured(result *sdkmcp.CallToolResult, out any) error {
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
