package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"finance-tracker/internal/domain"
)

// ErrUnavailable is returned for every failed lookup: unknown symbol, network
// failure, non-2xx status or a malformed body.
var ErrUnavailable = errors.New("quote unavailable")

// Lookup resolves a ticker symbol into a current quote.
type Lookup interface {
	Lookup(ctx context.Context, symbol string) (*domain.Quote, error)
}

// Config describes the remote price service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// Client queries an IEX Cloud compatible quote endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

type quoteResponse struct {
	CompanyName *string          `json:"companyName"`
	LatestPrice *decimal.Decimal `json:"latestPrice"`
	Symbol      *string          `json:"symbol"`
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Lookup fails closed: any problem is reported as ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, err := c.fetch(ctx, symbol)
	if err != nil {
		c.logger.WithField("symbol", symbol).Debugf("quote lookup: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return q, nil
}

func (c *Client) fetch(ctx context.Context, symbol string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/stable/stock/%s/quote?token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("quote endpoint returned status %d", resp.StatusCode)
	}

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	if parsed.CompanyName == nil || parsed.LatestPrice == nil || parsed.Symbol == nil || *parsed.Symbol == "" {
		return nil, errors.New("quote response is missing fields")
	}

	return &domain.Quote{
		Symbol: *parsed.Symbol,
		Name:   *parsed.CompanyName,
		Price:  *parsed.LatestPrice,
	}, nil
}

var _ Lookup = (*Client)(nil)
