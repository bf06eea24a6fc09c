// Package articles persists the summarized-article history under a single key
// of a key-value backend.
package articles

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/dtnitsch/sumz/models"
)

// StorageKey is the one key the history is stored under.
const StorageKey = "articles"

// KV is a synchronous string key-value store.
type KV interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}

// Store reads and writes the whole history as a JSON array.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// NewStore wraps kv. A nil logger discards log output.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the stored history. A missing key, an unreadable backend or a
// value that is not a JSON array of articles all yield an empty history.
func (s *Store) Load() models.History {
	raw, ok, err := s.kv.GetItem(StorageKey)
	if err != nil {
		s.logger.Warn("failed to read article history", "key", StorageKey, "error", err)
		return models.History{}
	}
	if !ok {
		return models.History{}
	}

	var history models.History
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Debug("discarding unparseable article history", "key", StorageKey, "error", err)
		return models.History{}
	}
	if history == nil {
		return models.History{}
	}
	return history
}

// Save overwrites the stored history with h.
func (s *Store) Save(h models.History) error {
	if h == nil {
		h = models.History{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal article history: %w", err)
	}
	if err := s.kv.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save article history: %w", err)
	}
	s.logger.Debug("article history saved", "count", len(h), "bytes", len(data))
	return nil
}
