package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/stockroom/internal/adapters/inbound/cli"
	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a data file in dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err)
	return out
}

func seed(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "add", "electronics", "--id", "E1", "--name", "Phone", "--price", "500", "--stock", "10", "--warranty", "2", "--brand", "Acme")
	mustRun(t, dir, "add", "grocery", "--id", "G1", "--name", "Milk", "--price", "1.5", "--stock", "2", "--expiry", "2000-01-01")
	mustRun(t, dir, "add", "clothing", "--id", "C1", "--name", "Shirt", "--price", "20", "--stock", "3", "--size", "M", "--material", "Cotton")
}

func TestAddCmd_WritesDataFile(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "add", "electronics", "--id", "E1", "--name", "Phone", "--price", "500", "--stock", "10", "--warranty", "2", "--brand", "Acme")
	assert.Contains(t, out, "Added Electronics - ID: E1")

	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"product_id": "E1"`)
}

func TestAddCmd_GeneratesID(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "clothing", "--name", "Scarf", "--price", "12", "--stock", "1", "--size", "L", "--material", "Wool")

	out := mustRun(t, dir, "list", "--json")
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Regexp(t, `^C-[0-9a-f]{8}$`, records[0]["product_id"])
}

func TestAddCmd_Rejected(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	_, err := run(t, dir, "add", "electronics", "--id", "E1", "--name", "Other", "--price", "1", "--stock", "1", "--brand", "X")
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	_, err = run(t, dir, "add", "grocery", "--name", "Bread", "--price=-2", "--stock", "1", "--expiry", "2030-01-01")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, dir, "add", "grocery", "--name", "Bread", "--price", "2", "--stock", "1", "--expiry", "soon")
	assert.ErrorIs(t, err, domain.ErrValidation)

	out := mustRun(t, dir, "list", "--json")
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 3)
}

func TestSellCmd(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out := mustRun(t, dir, "sell", "E1", "4")
	assert.Contains(t, out, "Sold 4 x Phone, 6 left")

	_, err := run(t, dir, "sell", "E1", "7")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "has 6 in stock")

	_, err = run(t, dir, "sell", "E1", "two")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, dir, "sell", "nope", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestockRepriceAndValue(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	assert.Contains(t, mustRun(t, dir, "value"), "Total inventory value: $5063.00")

	mustRun(t, dir, "restock", "C1", "2")
	mustRun(t, dir, "reprice", "E1", "450")
	assert.Contains(t, mustRun(t, dir, "value"), "Total inventory value: $4603.00")

	_, err := run(t, dir, "restock", "C1", "0")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = run(t, dir, "restock", "C1", "9223372036854775807")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, mustRun(t, dir, "value"), "Total inventory value: $4603.00")
}

func TestRemoveAndPurgeExpired(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	assert.Contains(t, mustRun(t, dir, "purge-expired"), "Removed 1 expired product(s)")
	assert.Contains(t, mustRun(t, dir, "purge-expired"), "Removed 0 expired product(s)")

	assert.Contains(t, mustRun(t, dir, "remove", "C1"), "Removed Clothing - ID: C1")
	_, err := run(t, dir, "remove", "C1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out := mustRun(t, dir, "list")
	assert.Contains(t, out, "Phone")
	assert.NotContains(t, out, "Shirt")
	assert.NotContains(t, out, "Milk")
}

func TestListCmd_FiltersByType(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out := mustRun(t, dir, "list", "--type", "Grocery", "--json")
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "G1", records[0]["product_id"])

	_, err := run(t, dir, "list", "--type", "toys")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSearchAndShow(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out := mustRun(t, dir, "search", "MIL")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "EXPIRED")
	assert.NotContains(t, out, "Phone")

	out = mustRun(t, dir, "show", "E1")
	assert.Contains(t, out, "Warranty Years")
	assert.Contains(t, out, "Acme")

	out = mustRun(t, dir, "show", "G1", "--json")
	assert.Contains(t, out, `"expiry_date": "2000-01-01"`)
}

func TestDashboardCmd(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)

	out := mustRun(t, dir, "dashboard")
	assert.Contains(t, out, "Inventory Dashboard")
	assert.Contains(t, out, "3 products")

	out = mustRun(t, dir, "dashboard", "--json", "--low-stock", "2", "--recent", "1")
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.EqualValues(t, 3, report["total_products"])
	assert.EqualValues(t, 1, report["expired_count"])
	assert.Len(t, report["low_stock"], 1)
	assert.Len(t, report["recent"], 1)
}

func TestHistoryCmd(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	mustRun(t, dir, "sell", "E1", "1")

	out := mustRun(t, dir, "history", "--json")
	var entries []domain.SaveEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, 3, entries[3].ProductCount)
	assert.Equal(t, "inventory.json", entries[3].DataFile)
}

func TestFileFlag_AppendsExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "backup")
	mustRun(t, dir, "--file", target, "add", "clothing", "--id", "C9", "--name", "Hat", "--price", "5", "--stock", "1", "--size", "S", "--material", "Felt")

	assert.FileExists(t, target+".json")
	assert.NoFileExists(t, filepath.Join(dir, "inventory.json"))
}

func TestConfigDataFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stockroom.yaml"), []byte("data_file: shop.json\n"), 0644))
	seed(t, dir)
	assert.FileExists(t, filepath.Join(dir, "shop.json"))
}

func TestCorruptDataFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.json"), []byte("{not json"), 0644))

	_, err := run(t, dir, "list")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, t.TempDir(), "--log-level", "loud", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestVersionCmd(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	assert.Contains(t, out, "stockroom dev")
}
