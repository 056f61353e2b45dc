package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "stockroom-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "stockroom")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/stockroom")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

// legacyFixture copies the bare-array fixture into a fresh directory.
func legacyFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/legacy_inventory.json")
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.json"), data, 0644))
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, append([]string{"--config", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Inventory Tests ---

func TestE2E_AddSellList(t *testing.T) {
	dir := t.TempDir()

	out, code := run(t, dir, "add", "electronics", "--id", "E1", "--name", "Phone", "--price", "500", "--stock", "10", "--warranty", "2", "--brand", "Acme")
	require.Equal(t, 0, code, out)

	out, code = run(t, dir, "sell", "E1", "3")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "7 left")

	out, code = run(t, dir, "list", "--json")
	require.Equal(t, 0, code, out)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.EqualValues(t, 7, records[0]["quantity_in_stock"])
}

func TestE2E_FailureExitCode(t *testing.T) {
	dir := t.TempDir()

	out, code := run(t, dir, "sell", "E1", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "product not found")
	assert.NoFileExists(t, filepath.Join(dir, "inventory.json"))
}

func TestE2E_LegacyFile(t *testing.T) {
	dir := legacyFixture(t)

	out, code := run(t, dir, "value")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "$4140.32")

	out, code = run(t, dir, "purge-expired")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Removed 1")

	// The rewrite uses the versioned document layout.
	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	var doc struct {
		Version  int              `json:"version"`
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.Products, 2)
}

func TestE2E_Dashboard(t *testing.T) {
	dir := legacyFixture(t)

	out, code := run(t, dir, "dashboard", "--json")
	require.Equal(t, 0, code, out)

	var report struct {
		TotalProducts int              `json:"total_products"`
		ExpiredCount  int              `json:"expired_count"`
		CountByKind   map[string]int   `json:"count_by_kind"`
		LowStock      []map[string]any `json:"low_stock"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.TotalProducts)
	assert.Equal(t, 1, report.ExpiredCount)
	assert.Equal(t, 1, report.CountByKind[string(domain.KindClothing)])
	assert.Len(t, report.LowStock, 2)
}

func TestE2E_History(t *testing.T) {
	dir := t.TempDir()
	_, code := run(t, dir, "add", "clothing", "--id", "C1", "--name", "Shirt", "--price", "20", "--stock", "3", "--size", "M", "--material", "Cotton")
	require.Equal(t, 0, code)

	out, code := run(t, dir, "history", "--json")
	require.Equal(t, 0, code, out)
	var entries []domain.SaveEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ProductCount)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, t.TempDir(), "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "stockroom")
}
