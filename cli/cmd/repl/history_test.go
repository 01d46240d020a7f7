package repl

import (
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ardnew/konfi/log"
)

func testLogger(t *testing.T) log.Logger {
	t.Helper()

	return log.Make(io.Discard)
}

func historyPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), baseHistory)
}

func TestHistoryWriteAndLoad(t *testing.T) {
	path := historyPath(t)

	h := NewHistory(path)
	for _, entry := range []string{"a + 1", "svc.port", ":list"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) error = %v", entry, err)
		}
	}

	// Reload from disk into a fresh instance.
	h2 := NewHistory(path)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"a + 1", "svc.port", ":list"}
	if got := h2.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(historyPath(t))
	if err := h.Load(); err != nil {
		t.Errorf("Load() on missing file error = %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistoryDeduplication(t *testing.T) {
	h := NewHistory(historyPath(t))

	for _, entry := range []string{"a", "b", "a", "a"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatal(err)
		}
	}

	// Repeated entries move to the end; consecutive repeats collapse.
	want := []string{"b", "a"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistorySkipsBlankEntries(t *testing.T) {
	h := NewHistory(historyPath(t))

	if _, err := h.Write("   "); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistoryGetLine(t *testing.T) {
	h := NewHistory(historyPath(t))

	if _, err := h.Write("only"); err != nil {
		t.Fatal(err)
	}

	line, err := h.GetLine(0)
	if err != nil || line != "only" {
		t.Errorf("GetLine(0) = (%q, %v), want (%q, nil)", line, err, "only")
	}

	if _, err := h.GetLine(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(1) error = %v, want %v", err, ErrOutOfBounds)
	}
}
