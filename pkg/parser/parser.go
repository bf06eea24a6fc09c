package parser

import (
	"bufio"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sumz/models"
	"github.com/go-shiori/go-readability"
)

// ErrNoContent is returned when readability finds no article text.
var ErrNoContent = errors.New("no readable content found")

type Parser struct{}

// Parse uses go-readability to extract the main article content and then walks
// that clean content with goquery into a Page of text blocks.
func (p *Parser) Parse(req models.ParseRequest) (*models.Page, error) {
	parsedURL, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(req.HTML), parsedURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, err
	}

	var content []models.ContentBlock
	doc.Find("h1,h2,h3,h4,p,li").Each(func(i int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if text != "" {
			content = append(content, models.ContentBlock{
				Type: goquery.NodeName(s),
				Text: text,
			})
		}
	})

	// Some pages put their text directly in divs; fall back to the flat text.
	if len(content) == 0 {
		if text := normalizeText(article.TextContent); text != "" {
			content = append(content, models.ContentBlock{Type: "p", Text: text})
		}
	}
	if len(content) == 0 {
		return nil, ErrNoContent
	}

	return &models.Page{
		URL:     req.URL,
		Title:   normalizeText(article.Title),
		Excerpt: normalizeText(article.Excerpt),
		Content: content,
	}, nil
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
