package application

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abdidvp/stockroom/internal/domain"
)

// InventoryService owns the single Inventory of a process and keeps it in sync
// with its data file: every successful mutation is saved before returning.
// Calls are serialised with a mutex so inbound adapters that dispatch
// concurrently never interleave inside the engine.
type InventoryService struct {
	mu      sync.Mutex
	store   domain.InventoryStore
	journal domain.SaveJournal
	git     domain.GitInfo
	logger  *slog.Logger
	path    string
	opts    []domain.Option
	inv     *domain.Inventory
}

func NewInventoryService(
	store domain.InventoryStore,
	journal domain.SaveJournal,
	git domain.GitInfo,
	path string,
	logger *slog.Logger,
	opts ...domain.Option,
) *InventoryService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &InventoryService{
		store:   store,
		journal: journal,
		git:     git,
		logger:  logger.With("component", "inventory"),
		path:    path,
		opts:    opts,
		inv:     domain.NewInventory(opts...),
	}
}

// Path returns the data file the service reads and writes.
func (s *InventoryService) Path() string { return s.path }

// Open loads the data file. A missing file yields an empty inventory; any other
// failure leaves the current inventory untouched.
func (s *InventoryService) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.store.Load(s.path, s.opts...)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("Data file not found, starting empty", "path", s.path)
			s.inv = domain.NewInventory(s.opts...)
			return nil
		}
		return fmt.Errorf("loading %s: %w", s.path, err)
	}
	s.inv = inv
	s.logger.Debug("Inventory opened", "path", s.path, "products", inv.Len())
	return nil
}

// Save persists the whole inventory and records the save in the journal.
func (s *InventoryService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *InventoryService) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.List()
}

func (s *InventoryService) Get(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Get(id)
}

func (s *InventoryService) SearchByName(substr string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.SearchByName(substr)
}

func (s *InventoryService) SearchByKind(kind domain.Kind) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.SearchByKind(kind)
}

func (s *InventoryService) TotalValue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.TotalValue()
}

// Report summarises the inventory for the dashboard.
func (s *InventoryService) Report(lowStock, recent int) domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.inv, lowStock, recent)
}

// History returns the save journal for the data file's directory.
func (s *InventoryService) History() ([]domain.SaveEntry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Entries(filepath.Dir(s.path))
}

func (s *InventoryService) Add(p domain.Product) (domain.Product, error) {
	var added domain.Product
	err := s.mutate("add", func(inv *domain.Inventory) error {
		if err := inv.Add(p); err != nil {
			return err
		}
		var err error
		added, err = inv.Get(p.ID())
		return err
	})
	return added, err
}

func (s *InventoryService) Remove(id string) (domain.Product, error) {
	var removed domain.Product
	err := s.mutate("remove", func(inv *domain.Inventory) error {
		var err error
		removed, err = inv.Remove(id)
		return err
	})
	return removed, err
}

func (s *InventoryService) Sell(id string, quantity int) (domain.Product, error) {
	var updated domain.Product
	err := s.mutate("sell", func(inv *domain.Inventory) error {
		var err error
		updated, err = inv.Sell(id, quantity)
		return err
	})
	return updated, err
}

func (s *InventoryService) Restock(id string, quantity int) (domain.Product, error) {
	var updated domain.Product
	err := s.mutate("restock", func(inv *domain.Inventory) error {
		var err error
		updated, err = inv.Restock(id, quantity)
		return err
	})
	return updated, err
}

func (s *InventoryService) Reprice(id string, price float64) (domain.Product, error) {
	var updated domain.Product
	err := s.mutate("reprice", func(inv *domain.Inventory) error {
		var err error
		updated, err = inv.Reprice(id, price)
		return err
	})
	return updated, err
}

// RemoveExpired purges expired groceries and returns how many were removed.
// Nothing is written when no product expired.
func (s *InventoryService) RemoveExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.inv.List()
	n := s.inv.RemoveExpired()
	if n == 0 {
		return 0, nil
	}
	if err := s.save(); err != nil {
		s.restore(snapshot)
		return 0, err
	}
	s.logger.Info("Removed expired products", "count", n)
	return n, nil
}

// mutate runs fn against the inventory and saves. If saving fails the
// in-memory state is rolled back so it keeps matching the file.
func (s *InventoryService) mutate(op string, fn func(*domain.Inventory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.inv.List()
	if err := fn(s.inv); err != nil {
		s.logger.Debug("Operation rejected", "op", op, "error", err)
		return err
	}
	if err := s.save(); err != nil {
		s.restore(snapshot)
		return err
	}
	s.logger.Info("Inventory updated", "op", op, "products", s.inv.Len())
	return nil
}

func (s *InventoryService) restore(snapshot []domain.Product) {
	if err := s.inv.Replace(snapshot); err != nil {
		s.logger.Error("Restoring inventory failed", "error", err)
	}
}

func (s *InventoryService) save() error {
	if err := s.store.Save(s.path, s.inv); err != nil {
		return err
	}

	entry := domain.SaveEntry{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		DataFile:     filepath.Base(s.path),
		ProductCount: s.inv.Len(),
		TotalValue:   s.inv.TotalValue(),
	}
	dir := filepath.Dir(s.path)
	if s.git != nil {
		if hash, err := s.git.CommitHash(dir); err == nil {
			entry.CommitHash = hash
		}
	}
	if s.journal != nil {
		if err := s.journal.Append(dir, entry); err != nil {
			s.logger.Warn("Recording save in journal failed", "error", err)
		}
	}
	return nil
}
