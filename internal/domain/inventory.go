package domain

import (
	"fmt"
	"strings"
	"time"
)

// Inventory is the in-memory collection of products keyed by id. It owns every
// product it holds: inputs are copied on the way in and results are copies, so
// stored state only changes through Inventory methods.
//
// Inventory is not safe for concurrent use.
type Inventory struct {
	products map[string]Product
	order    []string
	now      func() time.Time
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithClock sets the time source used to decide whether groceries are expired.
func WithClock(now func() time.Time) Option {
	return func(inv *Inventory) { inv.now = now }
}

// NewInventory creates an empty inventory.
func NewInventory(opts ...Option) *Inventory {
	inv := &Inventory{
		products: make(map[string]Product),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Len returns the number of products held.
func (inv *Inventory) Len() int { return len(inv.order) }

// Add inserts a copy of p. Fails with ErrDuplicateID if the id is taken.
func (inv *Inventory) Add(p Product) error {
	if p == nil {
		return validationErrorf("product is nil")
	}
	if _, exists := inv.products[p.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID())
	}
	inv.products[p.ID()] = p.clone()
	inv.order = append(inv.order, p.ID())
	return nil
}

// Remove deletes the product with the given id and returns it.
func (inv *Inventory) Remove(id string) (Product, error) {
	p, ok := inv.products[id]
	if !ok {
		return nil, notFound(id)
	}
	delete(inv.products, id)
	inv.order = removeID(inv.order, id)
	return p, nil
}

// Get returns a copy of the product with the given id.
func (inv *Inventory) Get(id string) (Product, error) {
	p, ok := inv.products[id]
	if !ok {
		return nil, notFound(id)
	}
	return p.clone(), nil
}

// List returns copies of all products in insertion order.
func (inv *Inventory) List() []Product {
	return inv.filter(func(Product) bool { return true })
}

// SearchByName returns products whose name contains substr, ignoring case.
func (inv *Inventory) SearchByName(substr string) []Product {
	needle := strings.ToLower(substr)
	return inv.filter(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name()), needle)
	})
}

// SearchByKind returns products of the given variant.
func (inv *Inventory) SearchByKind(kind Kind) []Product {
	return inv.filter(func(p Product) bool { return p.Kind() == kind })
}

// Sell removes quantity units from the product's stock and returns the updated product.
func (inv *Inventory) Sell(id string, quantity int) (Product, error) {
	return inv.mutate(id, func(p Product) error { return p.Sell(quantity) })
}

// Restock adds quantity units to the product's stock and returns the updated product.
func (inv *Inventory) Restock(id string, quantity int) (Product, error) {
	return inv.mutate(id, func(p Product) error { return p.Restock(quantity) })
}

// Reprice sets a new unit price and returns the updated product.
func (inv *Inventory) Reprice(id string, price float64) (Product, error) {
	return inv.mutate(id, func(p Product) error { return p.SetPrice(price) })
}

// TotalValue sums price times stock over all products.
func (inv *Inventory) TotalValue() float64 {
	var total float64
	for _, id := range inv.order {
		total += inv.products[id].TotalValue()
	}
	return total
}

// Expired returns copies of the groceries that are expired as of the clock.
func (inv *Inventory) Expired() []Product {
	now := inv.now()
	return inv.filter(func(p Product) bool {
		e, ok := p.(Expirable)
		return ok && e.ExpiredOn(now)
	})
}

// RemoveExpired deletes every expired grocery and returns how many were removed.
func (inv *Inventory) RemoveExpired() int {
	now := inv.now()
	kept := inv.order[:0:0]
	removed := 0
	for _, id := range inv.order {
		if e, ok := inv.products[id].(Expirable); ok && e.ExpiredOn(now) {
			delete(inv.products, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	inv.order = kept
	return removed
}

// Records encodes every product in insertion order.
func (inv *Inventory) Records() []Record {
	out := make([]Record, 0, len(inv.order))
	for _, id := range inv.order {
		out = append(out, Encode(inv.products[id]))
	}
	return out
}

// Replace swaps the whole content for products, keeping their order. On a
// duplicate id nothing changes.
func (inv *Inventory) Replace(products []Product) error {
	next := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		if _, exists := next[p.ID()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID())
		}
		next[p.ID()] = p.clone()
		order = append(order, p.ID())
	}
	inv.products = next
	inv.order = order
	return nil
}

// mutate applies fn to a scratch copy and commits it only on success.
func (inv *Inventory) mutate(id string, fn func(Product) error) (Product, error) {
	p, ok := inv.products[id]
	if !ok {
		return nil, notFound(id)
	}
	scratch := p.clone()
	if err := fn(scratch); err != nil {
		return nil, err
	}
	inv.products[id] = scratch
	return scratch.clone(), nil
}

func (inv *Inventory) filter(keep func(Product) bool) []Product {
	out := make([]Product, 0)
	for _, id := range inv.order {
		if p := inv.products[id]; keep(p) {
			out = append(out, p.clone())
		}
	}
	return out
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}
