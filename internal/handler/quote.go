package handler

import (
	"errors"
	"net/http"

	"signal-desk/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetQuote godoc
// @Summary      Get a price snapshot
// @Description  Latest hourly close with the change over the last two days
// @Tags         quotes
// @Produce      json
// @Param        symbol  path      string  true  "Instrument symbol or alias (e.g., XAUUSD, GOLD, BTC)"
// @Success      200     {object}  domain.PriceSnapshot
// @Failure      400     {object}  map[string]interface{}
// @Failure      503     {object}  map[string]string
// @Router       /api/quotes/{symbol} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	if h.quoter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-quote")
	defer span.End()

	symbol := c.Param("symbol")
	span.SetAttributes(attribute.String("symbol", symbol))

	snapshot, err := h.quoter.Snapshot(ctx, symbol)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, snapshot)
	case errors.Is(err, domain.ErrUnsupportedSymbol):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported symbol: " + symbol,
			"supported_symbols": domain.SupportedSymbols,
		})
	default:
		span.RecordError(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": unavailableMessage})
	}
}

// LegacyQuote godoc
// @Summary      Get a price snapshot (zeros on failure)
// @Tags         quotes
// @Produce      json
// @Param        symbol  path      string  true  "Instrument symbol or alias"
// @Success      200     {object}  domain.PriceSnapshot
// @Router       /analyze/{symbol} [get]
func (h *Handler) LegacyQuote(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.legacy-quote")
	defer span.End()

	symbol := c.Param("symbol")
	if h.quoter == nil {
		c.JSON(http.StatusOK, domain.PriceSnapshot{Symbol: symbol})
		return
	}
	snapshot, err := h.quoter.Snapshot(ctx, symbol)
	if err != nil {
		span.RecordError(err)
		snapshot = domain.PriceSnapshot{Symbol: symbol}
	}
	c.JSON(http.StatusOK, snapshot)
}
