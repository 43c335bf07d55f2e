package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulpitworks/lectern/internal/scripture"
)

const (
	NETName           = "net"
	NETDefaultBaseURL = "https://labs.bible.org/api"
)

// NETConfig holds configuration for the NET Bible client. No credential is
// required.
type NETConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // Requests per second
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NETClient fetches passage text from the NET Bible API. The returned text
// keeps the provider's inline markup (verse bold tags, vref spans, Strong's
// <st> tags, <n> footnote anchors) for the markup translator to consume.
type NETClient struct {
	baseURL string
	limiter *RateLimiter
	client  *http.Client
	logger  *slog.Logger
}

// NewNETClient creates a new NET Bible client.
func NewNETClient(cfg NETConfig) *NETClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = NETDefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2.0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &NETClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RateLimit),
		client:  httpClient,
		logger:  cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *NETClient) Name() string {
	return NETName
}

// Fetch retrieves passage text for reference.
func (c *NETClient) Fetch(ctx context.Context, reference string, opts LookupOptions) (*LookupResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewLookupError(http.StatusBadGateway, "NET request cancelled: %v", err)
	}

	requestID := uuid.NewString()

	params := url.Values{}
	params.Set("passage", reference)
	params.Set("type", "json")
	params.Set("formatting", "full")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create NET request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("error connecting to NET Bible API",
			"reference", reference, "request_id", requestID, "error", err)
		return nil, NewLookupError(http.StatusBadGateway,
			"Could not reach the NET Bible API. Try again later.")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewLookupError(http.StatusBadGateway, "failed to read NET response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("NET Bible API returned non-OK status",
			"status", resp.StatusCode, "reference", reference, "request_id", requestID)
		return nil, NewLookupError(http.StatusBadGateway, "NET Bible API request failed upstream.")
	}

	var verses []netVerse
	if err := json.Unmarshal(body, &verses); err != nil {
		return nil, NewLookupError(http.StatusBadGateway, "failed to decode NET response")
	}

	var parts []string
	for _, v := range verses {
		if s := strings.TrimSpace(v.Text); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil, NewLookupError(http.StatusNotFound,
			"No passage text returned for the given reference.")
	}

	return &LookupResult{
		Reference:       reference,
		Canonical:       c.canonical(reference),
		Version:         VersionNET,
		Text:            strings.Join(parts, " "),
		TranslationName: "New English Translation",
		RequestID:       requestID,
	}, nil
}

// canonical synthesizes a canonical reference string; the NET API does not
// confirm one.
func (c *NETClient) canonical(reference string) string {
	ref, err := scripture.Normalize(reference)
	if err != nil {
		return ""
	}
	return ref.String()
}

type netVerse struct {
	BookName string `json:"bookname"`
	Chapter  string `json:"chapter"`
	Verse    string `json:"verse"`
	Text     string `json:"text"`
}

// Verify interface
var _ Provider = (*NETClient)(nil)
