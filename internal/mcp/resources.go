package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"signal-desk/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, strategies StrategyReader) {
	server.AddResource(&mcp.Resource{
		URI:         "market://supported-symbols",
		Name:        "supported-symbols",
		Description: "Canonical symbols accepted by the analysis tools",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, domain.SupportedSymbols)
	})

	server.AddResource(&mcp.Resource{
		URI:         "market://modes",
		Name:        "supported-modes",
		Description: "Trading modes accepted by analyze_symbol",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, domain.SupportedModes)
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "strategy://{mode}",
		Name:        "strategy-by-mode",
		Description: "Active strategy configuration (interval, lookback, ATR multipliers) for a trading mode",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if strategies == nil {
			return nil, fmt.Errorf("strategy configuration unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil || parsed.Scheme != "strategy" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		mode, err := domain.ParseMode(strings.TrimSpace(parsed.Host))
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		cfg, err := strategies.Strategy(mode)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, cfg)
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
