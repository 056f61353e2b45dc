// Package jsonfile persists a whole inventory as a single JSON document.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/stockroom/internal/domain"
)

// FormatVersion is written into every saved document.
const FormatVersion = 1

// Document is the on-disk layout.
type Document struct {
	Version  int             `json:"version"`
	Products []domain.Record `json:"products"`
}

// Store implements domain.InventoryStore on the local filesystem.
type Store struct {
	logger *slog.Logger
}

// New creates a Store. A nil logger discards output.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{logger: logger.With("component", "jsonfile")}
}

// NormalizePath rejects an empty path and appends ".json" when missing.
func NormalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: file name cannot be empty", domain.ErrValidation)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".json") {
		path += ".json"
	}
	return path, nil
}

// Load reads path and decodes every record. The first bad record aborts the
// load; no partially populated inventory is ever returned.
func (s *Store) Load(path string, opts ...domain.Option) (*domain.Inventory, error) {
	path, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read", Path: path, Err: err}
	}

	records, err := parse(data)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "parse", Path: path, Err: err}
	}

	products := make([]domain.Product, 0, len(records))
	for i, r := range records {
		p, err := domain.Decode(r)
		if err != nil {
			s.logger.Warn("Rejecting data file", "path", path, "record", i, "error", err)
			return nil, withIndex(err, i)
		}
		products = append(products, p)
	}

	inv := domain.NewInventory(opts...)
	if err := inv.Replace(products); err != nil {
		return nil, &domain.DeserializationError{Index: duplicateIndex(products), Field: domain.FieldProductID, Err: err}
	}

	s.logger.Debug("Loaded inventory", "path", path, "products", inv.Len())
	return inv, nil
}

// Save writes the inventory to path through a temporary file in the same
// directory, so an existing file is either fully replaced or left untouched.
func (s *Store) Save(path string, inv *domain.Inventory) error {
	path, err := NormalizePath(path)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(Document{Version: FormatVersion, Products: inv.Records()}, "", "  ")
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := WriteAtomic(path, data); err != nil {
		s.logger.Error("Saving inventory failed", "path", path, "error", err)
		return &domain.PersistenceError{Op: "write", Path: path, Err: err}
	}

	s.logger.Debug("Saved inventory", "path", path, "products", inv.Len())
	return nil
}

// parse accepts either a Document or a bare array of records.
func parse(data []byte) ([]domain.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var records []domain.Record
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		if err := expectEOF(dec); err != nil {
			return nil, err
		}
		return records, nil
	}

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	if doc.Products == nil {
		return nil, errors.New(`document has no "products" array`)
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	return doc.Products, nil
}

// expectEOF fails when anything other than whitespace follows the document.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON document")
	}
	return nil
}

// WriteAtomic writes data to path through a temporary file in the same
// directory, so an existing file is either fully replaced or left untouched.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func withIndex(err error, i int) error {
	var de *domain.DeserializationError
	if errors.As(err, &de) {
		cp := *de
		cp.Index = i
		return &cp
	}
	return &domain.DeserializationError{Index: i, Err: err}
}

func duplicateIndex(products []domain.Product) int {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if _, ok := seen[p.ID()]; ok {
			return i
		}
		seen[p.ID()] = struct{}{}
	}
	return -1
}
