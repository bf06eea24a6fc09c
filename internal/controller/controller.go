// Package controller owns the in-memory view state: the current draft, the
// article history, the copied-URL flag and the fetch phase. It orchestrates
// the summarizer and keeps the persistent store in step with the history.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/summarizer"
)

// CopyFlagDuration is how long a copied URL stays flagged.
const CopyFlagDuration = 2000 * time.Millisecond

var (
	// ErrSubmitInFlight is returned by Submit while another submission is running.
	ErrSubmitInFlight = errors.New("a summary request is already in flight")
	// ErrNoSuchItem is returned for a history index that is out of range.
	ErrNoSuchItem = errors.New("no such history item")
)

// Store persists the article history.
type Store interface {
	Load() models.History
	Save(models.History) error
}

type Controller struct {
	mu    sync.Mutex
	state State

	store      Store
	summarizer summarizer.Summarizer
	clock      Clock
	clipboard  func(string) error
	logger     *slog.Logger
	onChange   func(State)

	copyTimer Timer
	copyGen   uint64
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(c *Controller) {
		c.clipboard = write
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithOnChange registers fn to receive a snapshot after every state change.
// fn is called without the controller lock held.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// New loads the history from store and returns an idle controller.
func New(store Store, s summarizer.Summarizer, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		summarizer: s,
		clock:      realClock{},
		clipboard:  clipboard.WriteAll,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.state = State{
		Phase:   Idle,
		History: store.Load(),
		Copy:    NoCopy,
	}
	if c.state.History == nil {
		c.state.History = models.History{}
	}
	c.logger.Debug("controller ready", "history_size", len(c.state.History))
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// EditDraft sets the draft URL as the user types. The summary is kept.
func (c *Controller) EditDraft(url string) {
	c.update(func(s *State) {
		s.Draft = models.Article{URL: url, Summary: s.Draft.Summary}
	})
}

// Submit requests a summary for url. On success the new article becomes the
// draft and is prepended to the history, which is saved before it is
// committed in memory. On failure the draft and history are untouched and
// the *models.FetchError is returned and kept in LastError.
func (c *Controller) Submit(ctx context.Context, url string) error {
	c.mu.Lock()
	if c.state.Phase == Fetching {
		c.mu.Unlock()
		c.logger.Warn("submit rejected, request in flight", "url", url)
		return ErrSubmitInFlight
	}
	c.state.Phase = Fetching
	c.state.LastError = nil
	snap := c.state.clone()
	c.mu.Unlock()
	c.notify(snap)

	c.logger.Info("submitting article", "url", url)
	outcome := c.summarizer.Summarize(ctx, models.SummarizeParams{ArticleURL: url})

	var result error
	c.mu.Lock()
	if summary, ok := outcome.Summary(); ok {
		article := models.Article{URL: url, Summary: summary}
		newHistory := c.state.History.Prepend(article)
		c.state.Draft = article
		if err := c.store.Save(newHistory); err != nil {
			c.logger.Error("failed to save history", "url", url, "error", err)
			result = fmt.Errorf("failed to save history: %w", err)
		} else {
			c.state.History = newHistory
			c.logger.Info("article summarized", "url", url, "history_size", len(newHistory))
		}
	} else {
		fe, _ := outcome.Failure()
		c.state.LastError = fe
		c.logger.Warn("summary failed", "url", url, "status", fe.Status, "error", fe.Message())
		result = outcome.Err()
	}
	c.state.Phase = Idle
	snap = c.state.clone()
	c.mu.Unlock()
	c.notify(snap)

	return result
}

// SelectHistoryItem shows a verbatim without any network call.
func (c *Controller) SelectHistoryItem(a models.Article) {
	c.update(func(s *State) {
		s.Draft = a
		s.LastError = nil
	})
}

// SelectHistoryIndex selects the i-th history item, counting from zero.
func (c *Controller) SelectHistoryIndex(i int) (models.Article, error) {
	c.mu.Lock()
	if i < 0 || i >= len(c.state.History) {
		n := len(c.state.History)
		c.mu.Unlock()
		return models.Article{}, fmt.Errorf("%w: index %d, history has %d", ErrNoSuchItem, i, n)
	}
	a := c.state.History[i]
	c.mu.Unlock()

	c.SelectHistoryItem(a)
	return a, nil
}

// Copy flags url as copied, writes it to the clipboard and schedules the flag
// to clear after CopyFlagDuration. A newer Copy supersedes any pending clear.
// The flag is set even when the clipboard write fails.
func (c *Controller) Copy(url string) error {
	c.mu.Lock()
	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	c.copyGen++
	gen := c.copyGen
	c.state.Copy = Flagged(url, c.clock.Now().Add(CopyFlagDuration))
	c.copyTimer = c.clock.AfterFunc(CopyFlagDuration, func() {
		c.clearCopy(gen)
	})
	snap := c.state.clone()
	c.mu.Unlock()
	c.notify(snap)

	if err := c.clipboard(url); err != nil {
		c.logger.Warn("clipboard write failed", "url", url, "error", err)
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	c.logger.Debug("url copied", "url", url)
	return nil
}

func (c *Controller) clearCopy(gen uint64) {
	c.mu.Lock()
	if gen != c.copyGen {
		c.mu.Unlock()
		return
	}
	c.state.Copy = NoCopy
	c.copyTimer = nil
	snap := c.state.clone()
	c.mu.Unlock()
	c.notify(snap)
}

// Close stops any pending copy-flag timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.copyTimer != nil {
		c.copyTimer.Stop()
		c.copyTimer = nil
	}
	c.copyGen++
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snap := c.state.clone()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
