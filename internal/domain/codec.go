package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Record is the generic structured form of a product, as stored in the data
// file.
type Record map[string]any

// Record keys.
const (
	FieldType          = "type"
	FieldProductID     = "product_id"
	FieldName          = "name"
	FieldPrice         = "price"
	FieldStock         = "quantity_in_stock"
	FieldWarrantyYears = "warranty_years"
	FieldBrand         = "brand"
	FieldExpiryDate    = "expiry_date"
	FieldSize          = "size"
	FieldMaterial      = "material"
)

// Encode maps a product to its record form.
func Encode(p Product) Record {
	r := Record{
		FieldType:      string(p.Kind()),
		FieldProductID: p.ID(),
		FieldName:      p.Name(),
		FieldPrice:     p.Price(),
		FieldStock:     p.Stock(),
	}
	switch v := p.(type) {
	case *Electronics:
		r[FieldWarrantyYears] = v.warrantyYears
		r[FieldBrand] = v.brand
	case *Grocery:
		r[FieldExpiryDate] = v.expiryDate.Format(DateLayout)
	case *Clothing:
		r[FieldSize] = v.size
		r[FieldMaterial] = v.material
	}
	return r
}

// EncodeAll maps products to records, preserving order. The result is never nil.
func EncodeAll(products []Product) []Record {
	out := make([]Record, 0, len(products))
	for _, p := range products {
		out = append(out, Encode(p))
	}
	return out
}

// Decode rebuilds a product from a record, dispatching on its type tag.
func Decode(r Record) (Product, error) {
	d := decoder{r: r}
	tag := d.string(FieldType)
	if d.err != nil {
		return nil, d.err
	}

	item := Item{
		ID:    d.string(FieldProductID),
		Name:  d.string(FieldName),
		Price: d.float(FieldPrice),
		Stock: d.int(FieldStock),
	}

	var (
		p   Product
		err error
	)
	switch Kind(tag) {
	case KindElectronics:
		warranty, brand := d.int(FieldWarrantyYears), d.string(FieldBrand)
		if d.err != nil {
			return nil, d.err
		}
		p, err = NewElectronics(item, warranty, brand)
	case KindGrocery:
		expiry := d.date(FieldExpiryDate)
		if d.err != nil {
			return nil, d.err
		}
		p, err = NewGrocery(item, expiry)
	case KindClothing:
		size, material := d.string(FieldSize), d.string(FieldMaterial)
		if d.err != nil {
			return nil, d.err
		}
		p, err = NewClothing(item, size, material)
	default:
		return nil, &DeserializationError{Index: -1, Field: FieldType, Err: fmt.Errorf("unknown product type %q", tag)}
	}
	if err != nil {
		return nil, &DeserializationError{Index: -1, Err: err}
	}
	return p, nil
}

// decoder reads typed fields from a record and keeps the first failure.
type decoder struct {
	r   Record
	err error
}

func (d *decoder) fail(field string, format string, args ...any) {
	if d.err == nil {
		d.err = &DeserializationError{Index: -1, Field: field, Err: fmt.Errorf(format, args...)}
	}
}

func (d *decoder) lookup(field string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	v, ok := d.r[field]
	if !ok || v == nil {
		d.fail(field, "missing")
		return nil, false
	}
	return v, true
}

func (d *decoder) string(field string) string {
	v, ok := d.lookup(field)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(field, "expected string, got %T", v)
	}
	return s
}

func (d *decoder) float(field string) float64 {
	v, ok := d.lookup(field)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			d.fail(field, "not a number: %q", n.String())
		}
		return f
	default:
		d.fail(field, "expected number, got %T", v)
		return 0
	}
}

func (d *decoder) int(field string) int {
	v, ok := d.lookup(field)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			d.fail(field, "out of range: %d", n)
			return 0
		}
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			d.fail(field, "not an integer or out of range: %q", n.String())
			return 0
		}
		if i > math.MaxInt || i < math.MinInt {
			d.fail(field, "out of range: %d", i)
			return 0
		}
		return int(i)
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			d.fail(field, "not an integer: %v", n)
			return 0
		}
		if !IntInRange(n) {
			d.fail(field, "out of range: %v", n)
			return 0
		}
		return int(n)
	default:
		d.fail(field, "expected integer, got %T", v)
		return 0
	}
}

// IntInRange reports whether the whole number f converts to int without
// wrapping.
func IntInRange(f float64) bool {
	// float64(math.MaxInt) rounds up to 2^63, which is itself out of range.
	return f >= math.MinInt && f < math.MaxInt
}

func (d *decoder) date(field string) time.Time {
	s := d.string(field)
	if d.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		d.fail(field, "invalid date %q, want YYYY-MM-DD", s)
	}
	return t
}
