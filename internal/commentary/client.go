package commentary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pulpitworks/lectern/internal/scripture"
)

const DefaultBaseURL = "https://commentariat-production.up.railway.app"

// ClientConfig holds configuration for the commentariat API client.
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches commentary from the commentariat REST API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a commentariat API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  httpClient,
		logger:  cfg.Logger,
	}
}

// ForReference fetches commentary for a reference. Verse references hit the
// verse endpoint with the range's first verse; chapter references hit the
// chapter endpoint. Failures are logged and reported as "no entries".
func (c *Client) ForReference(ctx context.Context, ref scripture.Reference, source string) (*Result, error) {
	path := fmt.Sprintf("/commentaries/%s/%s/%d",
		url.PathEscape(source), url.PathEscape(ref.Book), ref.Chapter)
	if ref.VerseStart != nil {
		path += fmt.Sprintf("/%d", *ref.VerseStart)
	}

	payload, err := c.get(ctx, path)
	if err != nil {
		c.logger.Warn("commentary lookup failed",
			"reference", ref.String(), "source", source, "error", err)
		return nil, nil
	}
	if payload == nil {
		return nil, nil
	}

	entries := make([]Entry, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		entries = append(entries, Entry{
			VerseStart: e.VerseStart,
			VerseEnd:   e.VerseEnd,
			Text:       CleanText(e.Text),
		})
	}
	if len(entries) == 0 {
		return nil, nil
	}

	result := &Result{
		Source:     source,
		SourceName: payload.Commentary.Name,
		Book:       payload.Book,
		Chapter:    payload.Chapter,
		Verse:      ref.VerseStart,
		Entries:    entries,
	}
	if result.SourceName == "" {
		result.SourceName = source
	}
	if result.Book == "" {
		result.Book = ref.Book
	}
	if result.Chapter == 0 {
		result.Chapter = ref.Chapter
	}
	return result, nil
}

// get performs a GET, returning nil for a 404.
func (c *Client) get(ctx context.Context, path string) (*commentaryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commentary API returned status %d", resp.StatusCode)
	}

	var payload commentaryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &payload, nil
}

type commentaryResponse struct {
	Commentary struct {
		Name string `json:"name"`
	} `json:"commentary"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   *int   `json:"verse"`
	Entries []struct {
		VerseStart int    `json:"verse_start"`
		VerseEnd   int    `json:"verse_end"`
		Text       string `json:"text"`
	} `json:"entries"`
}

// Verify interface
var _ Lookup = (*Client)(nil)
