package db

import (
	"path/filepath"
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestGetItem_Missing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	value, ok, err := db.GetItem("articles")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if ok {
		t.Errorf("GetItem() ok = true for missing key, value = %q", value)
	}
}

func TestSetItem_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "json array", key: "articles", value: `[{"url":"https://a.example","summary":"a"}]`},
		{name: "empty value", key: "empty", value: ""},
		{name: "overwrite", key: "articles", value: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.SetItem(tt.key, tt.value); err != nil {
				t.Fatalf("SetItem() error = %v", err)
			}
			got, ok, err := db.GetItem(tt.key)
			if err != nil {
				t.Fatalf("GetItem() error = %v", err)
			}
			if !ok {
				t.Fatal("GetItem() ok = false after SetItem")
			}
			if got != tt.value {
				t.Errorf("GetItem() = %q, want %q", got, tt.value)
			}
		})
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_store WHERE key = 'articles'").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for key 'articles' = %d, want 1 (overwrite, not append)", count)
	}
}

func TestOpen_CreatesSchemaOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sumz.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.SetItem("articles", "[]"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	db.Close()

	// Reopen: existing schema must be detected and data preserved.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	got, ok, err := db.GetItem("articles")
	if err != nil || !ok || got != "[]" {
		t.Errorf("GetItem() after reopen = %q, %v, %v", got, ok, err)
	}
}
