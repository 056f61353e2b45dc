package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	inv := seeded(t, fixedClock("2024-06-01"))

	r := domain.Summarize(inv, 4, 2)

	assert.Equal(t, 4, r.TotalProducts)
	assert.InDelta(t, inv.TotalValue(), r.TotalValue, 1e-9)
	assert.Equal(t, map[domain.Kind]int{
		domain.KindElectronics: 1,
		domain.KindGrocery:     2,
		domain.KindClothing:    1,
	}, r.CountByKind)
	assert.InDelta(t, 16.0, r.ValueByKind[domain.KindGrocery], 1e-9)
	assert.Equal(t, 1, r.ExpiredCount)
	assert.Equal(t, []string{"G1", "C1", "G2"}, ids(r.LowStock))
	assert.Equal(t, []string{"E1", "G1"}, ids(r.Recent))
}

func TestSummarize_Empty(t *testing.T) {
	r := domain.Summarize(domain.NewInventory(), 5, 10)
	assert.Zero(t, r.TotalProducts)
	assert.Zero(t, r.TotalValue)
	assert.Equal(t, 0, r.CountByKind[domain.KindClothing])
	assert.Empty(t, r.Recent)
	assert.Empty(t, r.LowStock)
}

func TestReport_MarshalJSON(t *testing.T) {
	r := domain.Summarize(seeded(t, fixedClock("2024-06-01")), 4, 1)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.EqualValues(t, 4, doc["total_products"])
	assert.Len(t, doc["low_stock"], 3)
	recent := doc["recent"].([]any)
	require.Len(t, recent, 1)
	assert.Equal(t, "E1", recent[0].(map[string]any)["product_id"])
}
