package summarizer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/analytics"
	"github.com/dtnitsch/sumz/pkg/fetcher"
	"github.com/dtnitsch/sumz/pkg/parser"
)

// Extractive summarizes locally: it downloads the page once, extracts the main
// content with readability and keeps a few of its sentences.
type Extractive struct {
	fetcher   *fetcher.Fetcher
	parser    *parser.Parser
	sentences int
	strategy  string
	logger    *slog.Logger
}

// NewExtractive keeps the leading sentences unless cfg.Strategy is
// models.StrategyFrequency.
func NewExtractive(f *fetcher.Fetcher, cfg models.ExtractiveConfig, logger *slog.Logger) *Extractive {
	if cfg.Sentences < 1 {
		cfg.Sentences = models.DefaultSummaryLength
	}
	if cfg.Strategy == "" {
		cfg.Strategy = models.StrategyLead
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractive{
		fetcher:   f,
		parser:    &parser.Parser{},
		sentences: cfg.Sentences,
		strategy:  cfg.Strategy,
		logger:    logger,
	}
}

func (e *Extractive) Summarize(ctx context.Context, params models.SummarizeParams) models.Outcome {
	e.logger.Info("requesting summary", "provider", models.ProviderExtractive, "url", params.ArticleURL)

	page, err := fetchPage(ctx, e.fetcher, e.parser, params.ArticleURL)
	if err != nil {
		e.logger.Warn("summary request failed", "url", params.ArticleURL, "error", err)
		return failureFromError(err)
	}

	summary := e.pick(page)
	if summary == "" {
		return failureFromError(parser.ErrNoContent)
	}
	e.logger.Info("summary extracted", "url", params.ArticleURL, "title", page.Title, "strategy", e.strategy, "summary_length", len(summary))
	e.logger.Debug("article keywords", "url", params.ArticleURL, "keywords", analytics.TopWords(page.ToPlainText(), 5))
	return models.Success(summary)
}

// pick joins the chosen sentences. Pages without paragraph text fall back to
// the readability excerpt.
func (e *Extractive) pick(page *models.Page) string {
	paragraphs := page.Paragraphs()
	if len(paragraphs) == 0 && page.Excerpt != "" {
		paragraphs = []string{page.Excerpt}
	}
	var picked []string
	if e.strategy == models.StrategyFrequency {
		picked = frequentSentences(paragraphs, e.sentences)
	} else {
		picked = leadingSentences(paragraphs, e.sentences)
	}
	return strings.Join(picked, " ")
}

func fetchPage(ctx context.Context, f *fetcher.Fetcher, p *parser.Parser, rawURL string) (*models.Page, error) {
	html, err := f.GetHtmlBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return p.Parse(models.ParseRequest{URL: rawURL, HTML: string(html)})
}

// leadingSentences returns up to n sentences, taken in order across paragraphs.
func leadingSentences(paragraphs []string, n int) []string {
	var out []string
	for _, para := range paragraphs {
		for _, s := range splitSentences(para) {
			out = append(out, s)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}

// frequentSentences returns the n sentences that score highest on word
// frequency, in article order.
func frequentSentences(paragraphs []string, n int) []string {
	var all []string
	for _, para := range paragraphs {
		all = append(all, splitSentences(para)...)
	}
	var out []string
	for _, i := range analytics.TopSentences(all, n) {
		out = append(out, all[i])
	}
	return out
}

// splitSentences breaks text after '.', '!' or '?' when followed by whitespace.
func splitSentences(text string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}
