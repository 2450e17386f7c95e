package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/report"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"
)

const (
	defaultMode  = domain.ModeDaytrade
	replyTimeout = 20 * time.Second
)

type Analyzer interface {
	Analyze(ctx context.Context, symbol, mode string) (*domain.Analysis, error)
}

type Quoter interface {
	Snapshot(ctx context.Context, symbol string) (domain.PriceSnapshot, error)
}

// StartTelegramBot starts long polling in the background. An empty token disables the bot and
// returns nil.
func StartTelegramBot(token string, analyzer Analyzer, quoter Quoter, logger zerolog.Logger) (*tele.Bot, error) {
	logger = logger.With().Str("component", "telegram-bot").Logger()
	if token == "" {
		logger.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create Telegram bot: %w", err)
	}

	b.Handle("/start", func(c tele.Context) error {
		return c.Send(helpText())
	})
	b.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText())
	})

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		return c.Send(priceReply(ctx, quoter, c.Args()))
	})

	b.Handle("/signal", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		reply := signalReply(ctx, analyzer, c.Args())
		if reply == report.Unavailable {
			logger.Debug().Strs("args", c.Args()).Msg("signal request produced no result")
		}
		return c.Send(reply)
	})

	logger.Info().Msg("Telegram bot started")
	go b.Start()
	return b, nil
}

func helpText() string {
	modes := make([]string, 0, len(domain.SupportedModes))
	for _, m := range domain.SupportedModes {
		modes = append(modes, string(m))
	}
	return fmt.Sprintf(
		"/price XAUUSD - latest price\n/signal XAUUSD [mode] - trade plan\nSymbols: %s\nModes: %s (default %s)",
		strings.Join(domain.SupportedSymbols, ", "), strings.Join(modes, ", "), defaultMode,
	)
}

func priceReply(ctx context.Context, quoter Quoter, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("Usage: /price XAUUSD\nSupported: %s", strings.Join(domain.SupportedSymbols, ", "))
	}
	if quoter == nil {
		return "Quote service unavailable"
	}
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	if _, ok := domain.LookupInstrument(symbol); !ok {
		return fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, strings.Join(domain.SupportedSymbols, ", "))
	}
	snapshot, err := quoter.Snapshot(ctx, symbol)
	if err != nil {
		return report.Quote(domain.PriceSnapshot{Symbol: symbol})
	}
	return report.Quote(snapshot)
}

func signalReply(ctx context.Context, analyzer Analyzer, args []string) string {
	symbol, mode, err := parseSignalArgs(args)
	if err != nil {
		return "Usage: /signal XAUUSD [scalping|daytrade|swing]\n" + err.Error()
	}
	if analyzer == nil {
		return "Analysis service unavailable"
	}
	analysis, err := analyzer.Analyze(ctx, symbol, string(mode))
	if err != nil {
		return report.Unavailable
	}
	return report.TradePlan(analysis)
}

// parseSignalArgs accepts "<symbol> [mode]" or "<symbol> --mode <mode>".
func parseSignalArgs(args []string) (string, domain.Mode, error) {
	var symbol string
	mode := defaultMode
	modeSet := false

	setMode := func(raw string) error {
		if modeSet {
			return errors.New("multiple modes provided")
		}
		m, err := domain.ParseMode(raw)
		if err != nil {
			return fmt.Errorf("unsupported mode: %s", raw)
		}
		mode, modeSet = m, true
		return nil
	}

	for i := 0; i < len(args); i++ {
		arg := strings.TrimSpace(args[i])
		if arg == "" {
			continue
		}

		if strings.HasPrefix(arg, "--mode=") {
			if err := setMode(strings.TrimPrefix(arg, "--mode=")); err != nil {
				return "", "", err
			}
			continue
		}
		if arg == "--mode" {
			if i+1 >= len(args) {
				return "", "", errors.New("missing mode value")
			}
			i++
			if err := setMode(args[i]); err != nil {
				return "", "", err
			}
			continue
		}
		if strings.HasPrefix(arg, "--") {
			return "", "", errors.New("unknown option")
		}

		if symbol == "" {
			inst, ok := domain.LookupInstrument(arg)
			if !ok {
				return "", "", fmt.Errorf("unsupported symbol: %s", strings.ToUpper(arg))
			}
			symbol = inst.Symbol
			continue
		}
		if err := setMode(arg); err != nil {
			return "", "", err
		}
	}

	if symbol == "" {
		return "", "", errors.New("missing symbol")
	}
	return symbol, mode, nil
}
