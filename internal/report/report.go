// Package report renders analyses and quotes as plain-text chat replies.
package report

import (
	"fmt"
	"strings"

	"signal-desk/internal/domain"
)

const (
	Unavailable = "Data unavailable, try again later."
	separator   = "--------------------"
)

// Headline is the one-line recommendation for a bias.
func Headline(b domain.Bias) string {
	switch b {
	case domain.BiasBullish:
		return "Focus on BUY"
	case domain.BiasBearish:
		return "Focus on SELL"
	default:
		return "Wait for direction"
	}
}

// TradePlan formats the full reply for an analysis. A nil analysis yields Unavailable.
func TradePlan(a *domain.Analysis) string {
	if a == nil {
		return Unavailable
	}
	prec := precision(a.Symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "Summary: %s\n", Headline(a.Bias))
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Trade plan %s (%s)\n", a.Symbol, a.Mode)
	fmt.Fprintf(&b, "Data: %s\n", a.SourceLabel)
	fmt.Fprintf(&b, "Current price: $%.*f\n", prec, a.Price)
	status := string(a.Bias)
	if a.WeakTrend {
		status += ", weak trend"
	}
	fmt.Fprintf(&b, "Status: %s (RSI: %.2f)\n", status, a.Indicators.RSI)
	if len(a.Reasons) > 0 {
		fmt.Fprintf(&b, "Why: %s\n", strings.Join(a.Reasons, "; "))
	}
	b.WriteString(separator + "\n")
	writeSetup(&b, "BUY Limit", a.Buy, prec)
	b.WriteString(separator + "\n")
	writeSetup(&b, "SELL Limit", a.Sell, prec)
	return strings.TrimRight(b.String(), "\n")
}

func writeSetup(b *strings.Builder, title string, s domain.TradeSetup, prec int) {
	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "   - Entry: %.*f\n", prec, s.Entry)
	fmt.Fprintf(b, "   - SL: %.*f (~%d pips)\n", prec, s.StopLoss, s.PipDistance)
	fmt.Fprintf(b, "   - TP: %.*f\n", prec, s.TakeProfit)
}

// Quote formats a price snapshot in one line.
func Quote(q domain.PriceSnapshot) string {
	if q.Price == 0 {
		return fmt.Sprintf("%s: %s", q.Symbol, Unavailable)
	}
	prec := precision(q.Symbol)
	return fmt.Sprintf("%s\nPrice: $%.*f\n2d Change: %+.*f (%+.2f%%)", q.Symbol, prec, q.Price, prec, q.Change, q.Percent)
}

func precision(symbol string) int {
	if inst, ok := domain.LookupInstrument(symbol); ok && inst.Precision > 0 {
		return inst.Precision
	}
	return 2
}
