package mcp

import (
	"context"
	"testing"
	"time"

	"signal-desk/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestResourcesStaticAndTemplated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	list, err := session.ListResources(ctx, &sdkmcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("list resources failed: %v", err)
	}
	if len(list.Resources) != 2 {
		t.Fatalf("expected 2 static resources, got %d", len(list.Resources))
	}

	readRes, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "market://supported-symbols"})
	if err != nil {
		t.Fatalf("read static resource failed: %v", err)
	}
	var symbols []string
	if err := decodeResourceJSON(readRes, &symbols); err != nil {
		t.Fatalf("decode symbols failed: %v", err)
	}
	if len(symbols) != len(domain.SupportedSymbols) {
		t.Fatalf("expected %d symbols, got %v", len(domain.SupportedSymbols), symbols)
	}

	readRes, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "strategy://scalping"})
	if err != nil {
		t.Fatalf("read strategy resource failed: %v", err)
	}
	var cfg domain.StrategyConfig
	if err := decodeResourceJSON(readRes, &cfg); err != nil {
		t.Fatalf("decode strategy failed: %v", err)
	}
	if cfg.Interval != "15m" || cfg.Kind != domain.KindTrendFollow {
		t.Fatalf("unexpected scalping strategy: %+v", cfg)
	}
}

func TestUnknownStrategyResource(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	if _, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "strategy://position"}); err == nil {
		t.Fatal("expected resource not found error for strategy://position")
	}
}
