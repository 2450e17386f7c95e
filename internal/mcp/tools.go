package mcp

import (
	"context"
	"fmt"

	"signal-desk/internal/report"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, analyzer Analyzer, quoter Quoter) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_symbol",
		Description: "Analyze an instrument in a trading mode and return bias, reasons and BUY/SELL limit setups",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in analyzeSymbolInput) (*mcp.CallToolResult, analyzeSymbolOutput, error) {
		if analyzer == nil {
			return nil, analyzeSymbolOutput{}, fmt.Errorf("analysis service unavailable")
		}
		symbol, err := normalizeSymbol(in.Symbol)
		if err != nil {
			return nil, analyzeSymbolOutput{}, err
		}
		mode, err := normalizeMode(in.Mode)
		if err != nil {
			return nil, analyzeSymbolOutput{}, err
		}

		analysis, err := analyzer.Analyze(ctx, symbol, string(mode))
		if err != nil {
			return nil, analyzeSymbolOutput{}, fmt.Errorf("%s: %w", report.Unavailable, err)
		}
		return nil, newAnalyzeSymbolOutput(analysis, report.TradePlan(analysis)), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "quote_get",
		Description: "Get the latest price and two-day change for one instrument",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in quoteGetInput) (*mcp.CallToolResult, quoteGetOutput, error) {
		if quoter == nil {
			return nil, quoteGetOutput{}, fmt.Errorf("quote service unavailable")
		}
		symbol, err := normalizeSymbol(in.Symbol)
		if err != nil {
			return nil, quoteGetOutput{}, err
		}
		snapshot, err := quoter.Snapshot(ctx, symbol)
		if err != nil {
			return nil, quoteGetOutput{}, err
		}
		return nil, quoteGetOutput{Quote: snapshot}, nil
	})
}
