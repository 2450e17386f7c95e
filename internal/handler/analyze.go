package handler

import (
	"errors"
	"net/http"
	"strings"

	"signal-desk/internal/domain"
	"signal-desk/internal/report"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type AnalyzeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Mode   string `json:"mode" binding:"required"`
}

const unavailableMessage = "data unavailable, try again"

// Analyze godoc
// @Summary      Analyze an instrument
// @Description  Returns bias, reasons and BUY/SELL limit setups for the symbol in the given trading mode
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      AnalyzeRequest  true  "Symbol (XAUUSD, BTCUSD, ...) and mode (scalping, daytrade, swing)"
// @Success      200      {object}  domain.Analysis
// @Failure      400      {object}  map[string]interface{}
// @Failure      503      {object}  map[string]string
// @Router       /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	if h.analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol and mode are required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", req.Symbol), attribute.String("mode", req.Mode))

	analysis, err := h.analyzer.Analyze(ctx, req.Symbol, req.Mode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, analysis)
	case errors.Is(err, domain.ErrUnsupportedSymbol):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported symbol: " + strings.ToUpper(req.Symbol),
			"supported_symbols": domain.SupportedSymbols,
		})
	case errors.Is(err, domain.ErrUnsupportedMode):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "unsupported mode: " + req.Mode,
			"supported_modes": domain.SupportedModes,
		})
	case errors.Is(err, domain.ErrNoResult):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": unavailableMessage})
	default:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// AnalyzeCustom godoc
// @Summary      Analyze an instrument as a chat reply
// @Description  Same analysis as /api/analyze rendered as a plain-text trade plan
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      AnalyzeRequest  true  "Symbol and mode"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /analyze_custom [post]
func (h *Handler) AnalyzeCustom(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-custom")
	defer span.End()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol and mode are required"})
		return
	}
	if h.analyzer == nil {
		c.JSON(http.StatusOK, gin.H{"reply": report.Unavailable})
		return
	}

	analysis, err := h.analyzer.Analyze(ctx, req.Symbol, req.Mode)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusOK, gin.H{"reply": report.Unavailable})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": report.TradePlan(analysis)})
}
