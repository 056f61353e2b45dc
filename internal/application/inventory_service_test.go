package application_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/abdidvp/stockroom/internal/adapters/outbound/history"
	"github.com/abdidvp/stockroom/internal/adapters/outbound/jsonfile"
	"github.com/abdidvp/stockroom/internal/application"
	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore wraps a real store and fails Save on demand.
type failingStore struct {
	domain.InventoryStore
	failSave bool
}

func (f *failingStore) Save(path string, inv *domain.Inventory) error {
	if f.failSave {
		return &domain.PersistenceError{Op: "write", Path: path, Err: errors.New("disk full")}
	}
	return f.InventoryStore.Save(path, inv)
}

type stubGit struct{ hash string }

func (g stubGit) CommitHash(string) (string, error) { return g.hash, nil }

func newService(t *testing.T, store domain.InventoryStore) (*application.InventoryService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	clock := domain.WithClock(func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) })
	svc := application.NewInventoryService(store, history.New(), stubGit{hash: "deadbeef"}, path, nil, clock)
	require.NoError(t, svc.Open())
	return svc, path
}

func phone(t *testing.T) domain.Product {
	t.Helper()
	p, err := domain.NewElectronics(domain.Item{ID: "E1", Name: "Phone", Price: 500, Stock: 10}, 2, "Acme")
	require.NoError(t, err)
	return p
}

func oldMilk(t *testing.T) domain.Product {
	t.Helper()
	p, err := domain.NewGrocery(domain.Item{ID: "G1", Name: "Milk", Price: 1, Stock: 5}, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestInventoryService_OpenMissingFileStartsEmpty(t *testing.T) {
	svc, path := newService(t, jsonfile.New(nil))
	assert.Empty(t, svc.List())
	assert.Equal(t, path, svc.Path())
	assert.NoFileExists(t, path)
}

func TestInventoryService_OpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	svc := application.NewInventoryService(jsonfile.New(nil), nil, nil, path, nil)
	err := svc.Open()
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestInventoryService_MutationsArePersisted(t *testing.T) {
	svc, path := newService(t, jsonfile.New(nil))

	added, err := svc.Add(phone(t))
	require.NoError(t, err)
	assert.Equal(t, "E1", added.ID())

	_, err = svc.Sell("E1", 3)
	require.NoError(t, err)
	_, err = svc.Reprice("E1", 450)
	require.NoError(t, err)

	reopened := application.NewInventoryService(jsonfile.New(nil), nil, nil, path, nil)
	require.NoError(t, reopened.Open())
	got, err := reopened.Get("E1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock())
	assert.InDelta(t, 450.0, got.Price(), 1e-9)
	assert.InDelta(t, 3150.0, reopened.TotalValue(), 1e-9)
}

func TestInventoryService_RejectedOperationDoesNotSave(t *testing.T) {
	svc, path := newService(t, jsonfile.New(nil))
	_, err := svc.Add(phone(t))
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = svc.Sell("E1", 15)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = svc.Add(phone(t))
	require.ErrorIs(t, err, domain.ErrDuplicateID)
	_, err = svc.Restock("missing", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	got, err := svc.Get("E1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock())
}

func TestInventoryService_SaveFailureRollsBack(t *testing.T) {
	store := &failingStore{InventoryStore: jsonfile.New(nil)}
	svc, _ := newService(t, store)
	_, err := svc.Add(phone(t))
	require.NoError(t, err)

	store.failSave = true
	_, err = svc.Sell("E1", 4)
	require.ErrorIs(t, err, domain.ErrPersistence)

	got, err := svc.Get("E1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock(), "memory must match the last saved file")

	_, err = svc.Remove("E1")
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Len(t, svc.List(), 1)
}

func TestInventoryService_RemoveExpired(t *testing.T) {
	svc, _ := newService(t, jsonfile.New(nil))
	_, err := svc.Add(phone(t))
	require.NoError(t, err)
	_, err = svc.Add(oldMilk(t))
	require.NoError(t, err)

	n, err := svc.RemoveExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.RemoveExpired()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Len(t, svc.SearchByKind(domain.KindGrocery), 0)
	assert.Len(t, svc.SearchByName("phone"), 1)
}

func TestInventoryService_JournalRecordsSaves(t *testing.T) {
	svc, _ := newService(t, jsonfile.New(nil))
	_, err := svc.Add(phone(t))
	require.NoError(t, err)
	_, err = svc.Restock("E1", 5)
	require.NoError(t, err)

	entries, err := svc.History()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "inventory.json", entries[1].DataFile)
	assert.Equal(t, 1, entries[1].ProductCount)
	assert.InDelta(t, 7500.0, entries[1].TotalValue, 1e-9)
	assert.Equal(t, "deadbeef", entries[1].CommitHash)
}

func TestInventoryService_Report(t *testing.T) {
	svc, _ := newService(t, jsonfile.New(nil))
	_, err := svc.Add(phone(t))
	require.NoError(t, err)
	_, err = svc.Add(oldMilk(t))
	require.NoError(t, err)

	r := svc.Report(5, 10)
	assert.Equal(t, 2, r.TotalProducts)
	assert.Equal(t, 1, r.ExpiredCount)
	assert.Len(t, r.LowStock, 1)
}

func TestInventoryService_ConcurrentSales(t *testing.T) {
	svc, _ := newService(t, jsonfile.New(nil))
	_, err := svc.Add(phone(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Sell("E1", 1)
		}()
	}
	wg.Wait()

	got, err := svc.Get("E1")
	require.NoError(t, err)
	assert.Zero(t, got.Stock())
}
