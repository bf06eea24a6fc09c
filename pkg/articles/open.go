package articles

import (
	"fmt"
	"io"

	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/db"
	"github.com/dtnitsch/sumz/pkg/storage"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenKV opens the backend named by cfg.Driver. The returned Closer releases it.
func OpenKV(cfg models.StoreConfig) (KV, io.Closer, error) {
	switch cfg.Driver {
	case models.StoreSQLite, "":
		database, err := db.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, database, nil
	case models.StoreFile:
		s, err := storage.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case models.StoreMemory:
		return NewMemoryKV(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
