// Package summarizer turns an article URL into a summary. Every provider
// returns a models.Outcome; none of them retry or cache.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/fetcher"
	"github.com/dtnitsch/sumz/pkg/parser"
)

// Summarizer issues one summarization request per call.
type Summarizer interface {
	Summarize(ctx context.Context, params models.SummarizeParams) models.Outcome
}

// Func adapts a plain function to the Summarizer interface.
type Func func(ctx context.Context, params models.SummarizeParams) models.Outcome

func (f Func) Summarize(ctx context.Context, params models.SummarizeParams) models.Outcome {
	return f(ctx, params)
}

// ErrMissingKey is returned by New when the selected provider needs an API key.
var ErrMissingKey = errors.New("missing API key")

// New builds the provider selected in cfg.
func New(cfg *models.Config, logger *slog.Logger) (Summarizer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := &http.Client{Timeout: cfg.RequestTimeout}

	switch cfg.Provider {
	case models.ProviderRapidAPI:
		if cfg.RapidAPI.Key == "" {
			return nil, fmt.Errorf("rapidapi provider: %w (set rapidapi.key or SUMZ_RAPIDAPI_KEY)", ErrMissingKey)
		}
		return NewRapidAPI(cfg.RapidAPI.Key,
			WithHost(cfg.RapidAPI.Host),
			WithBaseURL(cfg.RapidAPI.BaseURL),
			WithLength(cfg.RapidAPI.Length),
			WithHTTPClient(client),
			WithLogger(logger),
		), nil
	case models.ProviderExtractive:
		return NewExtractive(fetcher.NewFetcher(cfg.RequestTimeout), cfg.Extractive, logger), nil
	case models.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai provider: %w (set openai.api_key or OPENAI_API_KEY)", ErrMissingKey)
		}
		return NewOpenAI(cfg.OpenAI, fetcher.NewFetcher(cfg.RequestTimeout), client, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// failureFromError maps page fetch and parse errors onto a Failure outcome.
func failureFromError(err error) models.Outcome {
	var statusErr *fetcher.StatusError
	switch {
	case errors.As(err, &statusErr):
		return models.Failure(statusErr.StatusCode, statusMessage(statusErr.StatusCode, ""))
	case errors.Is(err, parser.ErrNoContent):
		return models.Failure(http.StatusUnprocessableEntity, err.Error())
	default:
		return models.Failure(0, err.Error())
	}
}

func statusMessage(code int, fallback string) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("unexpected status %d", code)
}
