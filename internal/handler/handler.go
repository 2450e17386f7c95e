package handler

import (
	"context"
	"net/http"

	"signal-desk/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Analyzer interface {
	Analyze(ctx context.Context, symbol, mode string) (*domain.Analysis, error)
}

type Quoter interface {
	Snapshot(ctx context.Context, symbol string) (domain.PriceSnapshot, error)
}

type Handler struct {
	tracer   trace.Tracer
	analyzer Analyzer
	quoter   Quoter
}

func New(tracer trace.Tracer, analyzer Analyzer, quoter Quoter) *Handler {
	return &Handler{
		tracer:   tracer,
		analyzer: analyzer,
		quoter:   quoter,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/instruments", h.GetInstruments)
	r.POST("/api/analyze", h.Analyze)
	r.GET("/api/quotes/:symbol", h.GetQuote)

	r.POST("/analyze_custom", h.AnalyzeCustom)
	r.GET("/analyze/:symbol", h.LegacyQuote)
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type instrumentView struct {
	Symbol  string   `json:"symbol"`
	Name    string   `json:"name"`
	Class   string   `json:"class"`
	Aliases []string `json:"aliases"`
}

// GetInstruments godoc
// @Summary      List supported instruments and modes
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/instruments [get]
func (h *Handler) GetInstruments(c *gin.Context) {
	out := make([]instrumentView, 0, len(domain.Instruments))
	for _, inst := range domain.Instruments {
		out = append(out, instrumentView{
			Symbol:  inst.Symbol,
			Name:    inst.Name,
			Class:   string(inst.Class),
			Aliases: inst.Aliases,
		})
	}
	c.JSON(http.StatusOK, gin.H{"instruments": out, "modes": domain.SupportedModes})
}
