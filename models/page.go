package models

import "strings"

// Page is the readable content of a fetched article, as extracted by the parser.
type Page struct {
	URL     string         `json:"url"`
	Title   string         `json:"title"`
	Excerpt string         `json:"excerpt,omitempty"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock represents a semantic block of text on a page.
type ContentBlock struct {
	Type string `json:"type"` // e.g., "h2", "p", "li"
	Text string `json:"text"`
}

// ToPlainText concatenates readable text from all content blocks.
func (p *Page) ToPlainText() string {
	var sb strings.Builder
	for _, block := range p.Content {
		sb.WriteString(block.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Paragraphs returns the text of paragraph and list blocks, skipping headings.
func (p *Page) Paragraphs() []string {
	var out []string
	for _, block := range p.Content {
		if block.Type == "p" || block.Type == "li" {
			out = append(out, block.Text)
		}
	}
	return out
}
