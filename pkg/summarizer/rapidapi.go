package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dtnitsch/sumz/models"
)

// maxErrorBody bounds how much of an error body is read for the message.
const maxErrorBody = 4096

// RapidAPI calls the article-extractor-and-summarizer API.
type RapidAPI struct {
	key        string
	host       string
	baseURL    string
	length     int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a RapidAPI client.
type Option func(*RapidAPI)

// WithHost sets the X-RapidAPI-Host header value.
func WithHost(host string) Option {
	return func(r *RapidAPI) {
		r.host = host
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(baseURL string) Option {
	return func(r *RapidAPI) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLength sets the summary length in paragraphs.
func WithLength(n int) Option {
	return func(r *RapidAPI) {
		r.length = n
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *RapidAPI) {
		r.httpClient = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *RapidAPI) {
		r.logger = l
	}
}

// NewRapidAPI creates a client authenticated with key.
func NewRapidAPI(key string, opts ...Option) *RapidAPI {
	r := &RapidAPI{
		key:        key,
		host:       models.DefaultRapidAPIHost,
		baseURL:    "https://" + models.DefaultRapidAPIHost,
		length:     models.DefaultSummaryLength,
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type rapidSummary struct {
	Summary string `json:"summary"`
}

type rapidError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Summarize issues GET /summarize?url=...&length=N exactly once.
func (r *RapidAPI) Summarize(ctx context.Context, params models.SummarizeParams) models.Outcome {
	query := url.Values{}
	query.Set("url", params.ArticleURL)
	query.Set("length", strconv.Itoa(r.length))
	endpoint := r.baseURL + "/summarize?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Failure(0, fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("X-RapidAPI-Key", r.key)
	req.Header.Set("X-RapidAPI-Host", r.host)
	req.Header.Set("Accept", "application/json")

	r.logger.Info("requesting summary", "provider", models.ProviderRapidAPI, "url", params.ArticleURL)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("summary request failed", "url", params.ArticleURL, "error", err)
		return models.Failure(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp)
		r.logger.Warn("summary request rejected", "url", params.ArticleURL, "status", resp.StatusCode, "error", msg)
		return models.Failure(resp.StatusCode, msg)
	}

	var body rapidSummary
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Failure(resp.StatusCode, fmt.Sprintf("decode response: %v", err))
	}
	summary := strings.TrimSpace(body.Summary)
	if summary == "" {
		return models.Failure(resp.StatusCode, "no summary returned")
	}

	r.logger.Info("summary received", "url", params.ArticleURL, "summary_length", len(summary))
	return models.Success(summary)
}

// errorMessage extracts a readable message from an error response.
func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body rapidError
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return statusMessage(resp.StatusCode, resp.Status)
}
