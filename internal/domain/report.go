package domain

import "encoding/json"

// Report is the dashboard summary of an inventory.
type Report struct {
	TotalProducts int              `json:"total_products"`
	TotalValue    float64          `json:"total_value"`
	CountByKind   map[Kind]int     `json:"count_by_kind"`
	ValueByKind   map[Kind]float64 `json:"value_by_kind"`
	ExpiredCount  int              `json:"expired_count"`
	LowStock      []Product        `json:"-"`
	Recent        []Product        `json:"-"`
}

// Summarize builds a Report. Products with stock at or below lowStock are
// listed as low; Recent holds up to recent products in insertion order.
func Summarize(inv *Inventory, lowStock, recent int) Report {
	r := Report{
		TotalValue:  inv.TotalValue(),
		CountByKind: make(map[Kind]int, len(ValidKinds)),
		ValueByKind: make(map[Kind]float64, len(ValidKinds)),
		LowStock:    make([]Product, 0),
	}
	for _, k := range ValidKinds {
		r.CountByKind[k] = 0
		r.ValueByKind[k] = 0
	}

	all := inv.List()
	r.TotalProducts = len(all)
	for _, p := range all {
		r.CountByKind[p.Kind()]++
		r.ValueByKind[p.Kind()] += p.TotalValue()
		if p.Stock() <= lowStock {
			r.LowStock = append(r.LowStock, p)
		}
	}
	r.ExpiredCount = len(inv.Expired())

	switch {
	case recent < 0:
		recent = 0
	case recent > len(all):
		recent = len(all)
	}
	r.Recent = all[:recent]
	return r
}

// MarshalJSON writes the product lists in their record form.
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	return json.Marshal(struct {
		plain
		LowStock []Record `json:"low_stock"`
		Recent   []Record `json:"recent"`
	}{plain(r), EncodeAll(r.LowStock), EncodeAll(r.Recent)})
}
