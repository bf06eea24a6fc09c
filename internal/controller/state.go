package controller

import (
	"time"

	"github.com/dtnitsch/sumz/models"
)

// Phase is the submission state.
type Phase int

const (
	Idle Phase = iota
	Fetching
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	default:
		return "unknown"
	}
}

// CopyState is either NoCopy (the zero value) or a flagged URL that expires.
type CopyState struct {
	URL     string
	Expires time.Time
}

// NoCopy is the cleared copy state.
var NoCopy = CopyState{}

// Flagged returns the copy state for url, expiring at expires.
func Flagged(url string, expires time.Time) CopyState {
	return CopyState{URL: url, Expires: expires}
}

// IsFlagged reports whether a URL is currently marked as copied.
func (c CopyState) IsFlagged() bool {
	return c.URL != ""
}

// State is everything the presentation layer renders.
type State struct {
	Phase     Phase
	Draft     models.Article
	History   models.History
	Copy      CopyState
	LastError *models.FetchError
}

// IsFetching reports whether a submission is in flight.
func (s State) IsFetching() bool {
	return s.Phase == Fetching
}

func (s State) clone() State {
	out := s
	out.History = s.History.Clone()
	if s.LastError != nil {
		fe := *s.LastError
		out.LastError = &fe
	}
	return out
}
