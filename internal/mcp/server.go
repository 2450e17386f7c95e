package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRequestTimeout = 15 * time.Second

type ServerConfig struct {
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

func NewServer(tracer trace.Tracer, analyzer Analyzer, quoter Quoter, strategies StrategyReader, cfg ServerConfig) *sdkmcp.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "signal-desk-mcp",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: "Use analyze_symbol for a trade plan (bias, reasons, BUY/SELL limit setups) and quote_get for prices. Modes: scalping, daytrade, swing.",
		Logger:       slog.Default(),
	})

	srv.AddReceivingMiddleware(timeoutMiddleware(requestTimeout))
	if tracer != nil {
		srv.AddReceivingMiddleware(tracingMiddleware(tracer))
	}
	srv.AddReceivingMiddleware(loggingMiddleware(cfg.Logger.With().Str("component", "mcp").Logger()))

	registerTools(srv, analyzer, quoter)
	registerResources(srv, strategies)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

func timeoutMiddleware(timeout time.Duration) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(timeoutCtx, method, req)
		}
	}
}

func tracingMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx, span := tracer.Start(ctx, spanName(method, req))
			span.SetAttributes(attribute.String("mcp.method", method))
			defer span.End()

			if name := toolName(req); name != "" {
				span.SetAttributes(attribute.String("mcp.tool", name))
			}
			if readReq, ok := req.(*sdkmcp.ReadResourceRequest); ok {
				span.SetAttributes(attribute.String("mcp.resource.uri", strings.TrimSpace(readReq.Params.URI)))
			}

			result, err := next(ctx, method, req)
			if err != nil {
				span.RecordError(err)
			}
			return result, err
		}
	}
}

func loggingMiddleware(logger zerolog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)

			evt := logger.Debug()
			if err != nil {
				evt = logger.Warn().Err(err)
			}
			evt.Str("method", method).
				Str("tool", toolName(req)).
				Dur("elapsed", time.Since(start)).
				Msg("mcp request")
			return result, err
		}
	}
}

func toolName(req sdkmcp.Request) string {
	if callReq, ok := req.(*sdkmcp.CallToolRequest); ok && callReq.Params != nil {
		return strings.TrimSpace(callReq.Params.Name)
	}
	return ""
}

func spanName(method string, req sdkmcp.Request) string {
	switch method {
	case "tools/call":
		if name := toolName(req); name != "" {
			return "mcp.tool." + strings.ReplaceAll(name, "/", ".")
		}
		return "mcp.tool.call"
	case "resources/read":
		return "mcp.resource.read"
	default:
		return "mcp." + strings.ReplaceAll(method, "/", ".")
	}
}
