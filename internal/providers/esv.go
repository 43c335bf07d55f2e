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
)

const (
	ESVName           = "esv"
	ESVDefaultBaseURL = "https://api.esv.org/v3"
)

// ESVConfig holds configuration for the ESV passage client.
type ESVConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // Requests per second
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// ESVClient fetches passage text from the ESV API. It requires an API key;
// a missing key is a configuration error, not a fetch error.
type ESVClient struct {
	apiKey  string
	baseURL string
	limiter *RateLimiter
	client  *http.Client
	logger  *slog.Logger
}

// NewESVClient creates a new ESV passage client.
func NewESVClient(cfg ESVConfig) *ESVClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ESVDefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
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

	return &ESVClient{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RateLimit),
		client:  httpClient,
		logger:  cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *ESVClient) Name() string {
	return ESVName
}

// Fetch retrieves passage text for reference. Lookups are never retried;
// classification of the failure is left to the returned LookupError.
func (c *ESVClient) Fetch(ctx context.Context, reference string, opts LookupOptions) (*LookupResult, error) {
	if c.apiKey == "" {
		return nil, NewLookupError(http.StatusServiceUnavailable,
			"ESV API key is not configured. Set ESV_API_KEY.")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewLookupError(http.StatusBadGateway, "ESV request cancelled: %v", err)
	}

	requestID := uuid.NewString()

	params := url.Values{}
	params.Set("q", reference)
	params.Set("include-passage-references", "true")
	params.Set("include-verse-numbers", boolParam(opts.IncludeVerseNumbers))
	params.Set("include-first-verse-numbers", boolParam(opts.IncludeVerseNumbers))
	params.Set("include-footnotes", boolParam(opts.IncludeFootnotes))
	params.Set("include-footnote-body", boolParam(opts.IncludeFootnotes))
	params.Set("include-headings", boolParam(opts.IncludeHeadings))
	params.Set("include-short-copyright", boolParam(opts.IncludeShortCopyright))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/passage/text/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ESV request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("error connecting to ESV API",
			"reference", reference, "request_id", requestID, "error", err)
		return nil, NewLookupError(http.StatusBadGateway,
			"Could not reach the ESV API. Try again later.")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewLookupError(http.StatusBadGateway, "failed to read ESV response")
	}

	if resp.StatusCode != http.StatusOK {
		// The upstream status is logged but never leaked to the caller,
		// and neither is the credential.
		c.logger.Warn("ESV API returned non-OK status",
			"status", resp.StatusCode, "reference", reference, "request_id", requestID)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, NewLookupError(http.StatusBadGateway,
				"ESV API key was rejected. Check ESV_API_KEY.")
		}
		return nil, NewLookupError(http.StatusBadGateway, "ESV API request failed upstream.")
	}

	var payload esvPassageResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewLookupError(http.StatusBadGateway, "failed to decode ESV response")
	}

	var passages []string
	for _, p := range payload.Passages {
		if s := strings.TrimSpace(p); s != "" {
			passages = append(passages, s)
		}
	}
	if len(passages) == 0 {
		return nil, NewLookupError(http.StatusNotFound,
			"No passage text returned for the given reference.")
	}

	return &LookupResult{
		Reference:       reference,
		Canonical:       payload.Canonical,
		Version:         VersionESV,
		Text:            strings.Join(passages, "\n\n"),
		TranslationName: "English Standard Version",
		RequestID:       requestID,
	}, nil
}

func (c *ESVClient) authHeader() string {
	if strings.HasPrefix(c.apiKey, "Token ") {
		return c.apiKey
	}
	return "Token " + c.apiKey
}

type esvPassageResponse struct {
	Canonical string   `json:"canonical"`
	Passages  []string `json:"passages"`
}

// Verify interface
var _ Provider = (*ESVClient)(nil)
