package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"signal-desk/internal/domain"
)

// BinanceClient reads spot ticker prices. Gold is proxied through PAXG.
type BinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBinanceClient(baseURL string, timeout time.Duration) *BinanceClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BinanceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BinanceClient) FetchLivePrice(ctx context.Context, inst domain.Instrument) (float64, error) {
	if inst.BinanceSymbol == "" {
		return 0, fmt.Errorf("binance: no market for %s: %w", inst.Symbol, ErrNoData)
	}

	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, url.QueryEscape(inst.BinanceSymbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error fetching price: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("binance API error: status %d: %s", resp.StatusCode, string(body))
	}

	var priceResp struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price,string"`
	}
	if err := json.Unmarshal(body, &priceResp); err != nil {
		return 0, fmt.Errorf("error parsing price: %w", err)
	}
	if priceResp.Price <= 0 {
		return 0, fmt.Errorf("binance %s: %w", inst.BinanceSymbol, ErrNoData)
	}
	return priceResp.Price, nil
}
