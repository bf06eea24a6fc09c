package parser

import (
	"strings"
	"testing"

	"github.com/dtnitsch/sumz/models"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Why Gophers Dig</title></head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <article>
    <h1>Why Gophers Dig</h1>
    <p>Gophers dig tunnels to find food and to escape predators. Their burrows can
       stretch for hundreds of meters under a single field.</p>
    <p>A burrow has separate chambers for nesting, storing food and waste. The
       entrances are plugged with soil when the gopher is inside.</p>
    <p>Farmers consider gophers pests because they eat roots and bulbs. Gardeners
       often disagree about the best way to keep them away from vegetables.</p>
    <p>Researchers who study soil have found that gopher activity mixes nutrients
       from deeper layers into the topsoil, which can help native plants recover
       after a drought or a wildfire has cleared the surface.</p>
    <ul><li>Tunnels aerate soil.</li><li>Mounds mark entrances.</li></ul>
  </article>
  <footer>Copyright 2024</footer>
</body>
</html>`

func TestParse(t *testing.T) {
	p := &Parser{}
	page, err := p.Parse(models.ParseRequest{URL: "https://example.com/gophers", HTML: articleHTML})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if page.URL != "https://example.com/gophers" {
		t.Errorf("URL = %q", page.URL)
	}
	if !strings.Contains(page.Title, "Gophers") {
		t.Errorf("Title = %q, want it to mention Gophers", page.Title)
	}

	paragraphs := page.Paragraphs()
	if len(paragraphs) < 3 {
		t.Fatalf("Paragraphs() = %d blocks, want at least 3: %v", len(paragraphs), paragraphs)
	}
	if !strings.HasPrefix(paragraphs[0], "Gophers dig tunnels") {
		t.Errorf("first paragraph = %q", paragraphs[0])
	}
	if strings.Contains(paragraphs[0], "\n") {
		t.Errorf("paragraph not normalized: %q", paragraphs[0])
	}
	if strings.Contains(page.ToPlainText(), "Copyright") {
		t.Error("boilerplate footer leaked into content")
	}
}

func TestParse_NoContent(t *testing.T) {
	p := &Parser{}
	_, err := p.Parse(models.ParseRequest{URL: "https://example.com/empty", HTML: "<html><body></body></html>"})
	// readability may reject the page itself; either way no page comes back.
	if err == nil {
		t.Fatal("Parse() expected error for empty page")
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  hello  ", want: "hello"},
		{in: "line one\n\n   line two\n", want: "line one line two"},
		{in: "\n\n", want: ""},
	}
	for _, tt := range tests {
		if got := normalizeText(tt.in); got != tt.want {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
