// Package history keeps an append-only journal of inventory saves.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/stockroom/internal/adapters/outbound/jsonfile"
	"github.com/abdidvp/stockroom/internal/domain"
)

// DefaultMaxEntries bounds the journal; older entries are dropped first.
const DefaultMaxEntries = 1000

// Path returns the journal file kept next to the data files in dir.
func Path(dir string) string {
	return filepath.Join(dir, ".stockroom", "history", "saves.json")
}

// FileHistory implements domain.SaveJournal as a JSON array rewritten
// atomically on every append.
type FileHistory struct {
	maxEntries int
}

func New() *FileHistory {
	return &FileHistory{maxEntries: DefaultMaxEntries}
}

// NewWithLimit keeps at most limit entries. A non-positive limit keeps everything.
func NewWithLimit(limit int) *FileHistory {
	return &FileHistory{maxEntries: limit}
}

func (h *FileHistory) Append(dir string, entry domain.SaveEntry) error {
	entries, err := h.Entries(dir)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.maxEntries > 0 && len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}
	if err := jsonfile.WriteAtomic(Path(dir), append(data, '\n')); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}

// Entries returns the journal oldest first. A missing journal is empty.
func (h *FileHistory) Entries(dir string) ([]domain.SaveEntry, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	var entries []domain.SaveEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing journal %s: %w", Path(dir), err)
	}
	return entries, nil
}
