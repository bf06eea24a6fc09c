// Package models defines the data structures shared across sumz: articles,
// summarization outcomes, parsed pages and configuration.
package models

// Article is a URL paired with its generated summary.
// Articles are values; a new Article replaces an old one rather than mutating it.
type Article struct {
	URL     string `json:"url" yaml:"url"`
	Summary string `json:"summary" yaml:"summary"`
}

// IsZero reports whether the article is the empty draft.
func (a Article) IsZero() bool {
	return a.URL == "" && a.Summary == ""
}

// History is the ordered collection of summarized articles, most recent first.
// Duplicate URLs are allowed.
type History []Article

// Prepend returns a new History with a in front. The receiver is not modified.
func (h History) Prepend(a Article) History {
	out := make(History, 0, len(h)+1)
	out = append(out, a)
	return append(out, h...)
}

// Clone returns a copy that does not share backing storage with h.
func (h History) Clone() History {
	if h == nil {
		return History{}
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// SummarizeParams is the request payload sent to a summarization backend.
type SummarizeParams struct {
	ArticleURL string `json:"articleUrl"`
}
