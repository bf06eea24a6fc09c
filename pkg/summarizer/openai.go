package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/fetcher"
	"github.com/dtnitsch/sumz/pkg/parser"
	openai "github.com/sashabaranov/go-openai"
)

// maxPromptChars bounds the article text sent to the model.
const maxPromptChars = 12000

const promptTemplate = `Summarize the following article in three short paragraphs or less. State the contents directly without introductions such as "The article says".

<ARTICLE title=%q>
%s
</ARTICLE>`

// OpenAI fetches the article, extracts its text and asks a chat model for a
// summary. It issues two requests: the page fetch and the completion.
type OpenAI struct {
	client  *openai.Client
	model   string
	fetcher *fetcher.Fetcher
	parser  *parser.Parser
	logger  *slog.Logger
}

func NewOpenAI(cfg models.OpenAIConfig, f *fetcher.Fetcher, httpClient *http.Client, logger *slog.Logger) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		fetcher: f,
		parser:  &parser.Parser{},
		logger:  logger,
	}
}

func (o *OpenAI) Summarize(ctx context.Context, params models.SummarizeParams) models.Outcome {
	o.logger.Info("requesting summary", "provider", models.ProviderOpenAI, "model", o.model, "url", params.ArticleURL)

	page, err := fetchPage(ctx, o.fetcher, o.parser, params.ArticleURL)
	if err != nil {
		o.logger.Warn("article fetch failed", "url", params.ArticleURL, "error", err)
		return failureFromError(err)
	}

	text := truncateText(page.ToPlainText(), maxPromptChars)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, page.Title, text),
			},
		},
	})
	if err != nil {
		o.logger.Warn("chat completion failed", "url", params.ArticleURL, "error", err)
		return openAIFailure(err)
	}
	if len(resp.Choices) == 0 {
		return models.Failure(http.StatusBadGateway, "no choices in completion response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return models.Failure(http.StatusBadGateway, "no summary returned")
	}
	o.logger.Info("summary received", "url", params.ArticleURL, "summary_length", len(summary))
	return models.Success(summary)
}

func openAIFailure(err error) models.Outcome {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return models.Failure(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return models.Failure(reqErr.HTTPStatusCode, statusMessage(reqErr.HTTPStatusCode, reqErr.Error()))
	}
	return models.Failure(0, err.Error())
}

// truncateText cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
