package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind is the type tag of a product variant.
type Kind string

const (
	KindElectronics Kind = "electronics"
	KindGrocery     Kind = "grocery"
	KindClothing    Kind = "clothing"
)

// ValidKinds enumerates all product variants in display order.
var ValidKinds = []Kind{KindElectronics, KindGrocery, KindClothing}

// ParseKind resolves a user-supplied type tag, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidKinds {
		if k == v {
			return k, nil
		}
	}
	return "", validationErrorf("unknown product type %q (valid: electronics, grocery, clothing)", s)
}

// Label returns the capitalised variant name used in displays.
func (k Kind) Label() string {
	switch k {
	case KindElectronics:
		return "Electronics"
	case KindGrocery:
		return "Grocery"
	case KindClothing:
		return "Clothing"
	default:
		return string(k)
	}
}

// Product is the capability set shared by every variant. The set of
// implementations is closed: Electronics, Grocery and Clothing.
type Product interface {
	ID() string
	Name() string
	Price() float64
	Stock() int
	Kind() Kind

	// TotalValue is price multiplied by units in stock.
	TotalValue() float64
	Restock(amount int) error
	Sell(quantity int) error
	SetPrice(price float64) error

	// Attributes lists the variant-specific fields in display order.
	Attributes() []Attribute
	String() string

	clone() Product
}

// Expirable is implemented by variants that carry an expiry date.
type Expirable interface {
	ExpiryDate() time.Time
	ExpiredOn(now time.Time) bool
}

// Attribute is a single variant-specific field rendered by presentation code.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Item holds the fields every product shares. It is the construction input for
// all variants.
type Item struct {
	ID    string  `json:"product_id" validate:"required,notblank"`
	Name  string  `json:"name" validate:"required,notblank"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"quantity_in_stock" validate:"gte=0"`
}

type base struct {
	id    string
	name  string
	price float64
	stock int
}

func newBase(item Item) base {
	return base{id: item.ID, name: item.Name, price: item.Price, stock: item.Stock}
}

func (b *base) ID() string { return b.id }
func (b *base) Name() string { return b.name }
func (b *base) Price() float64 { return b.price }
func (b *base) Stock() int { return b.stock }
func (b *base) TotalValue() float64 { return b.price * float64(b.stock) }

func (b *base) Restock(amount int) error {
	if amount <= 0 {
		return validationErrorf("restock amount must be positive, got %d", amount)
	}
	if amount > math.MaxInt-b.stock {
		return validationErrorf("restock amount %d would overflow stock of %d", amount, b.stock)
	}
	b.stock += amount
	return nil
}

func (b *base) Sell(quantity int) error {
	if quantity <= 0 {
		return validationErrorf("sale quantity must be positive, got %d", quantity)
	}
	if quantity > b.stock {
		return &InsufficientStockError{ProductID: b.id, Available: b.stock, Requested: quantity}
	}
	b.stock -= quantity
	return nil
}

func (b *base) SetPrice(price float64) error {
	if err := checkPrice(price); err != nil {
		return err
	}
	b.price = price
	return nil
}

func checkPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return validationErrorf("price must be a non-negative number, got %v", price)
	}
	return nil
}

// Electronics is a product with a manufacturer warranty.
type Electronics struct {
	base
	warrantyYears int
	brand         string
}

type electronicsFields struct {
	WarrantyYears int    `json:"warranty_years" validate:"gte=0"`
	Brand         string `json:"brand"`
}

// NewElectronics validates and builds an Electronics product.
func NewElectronics(item Item, warrantyYears int, brand string) (*Electronics, error) {
	if err := validateFields(item, electronicsFields{WarrantyYears: warrantyYears, Brand: brand}); err != nil {
		return nil, err
	}
	return &Electronics{base: newBase(item), warrantyYears: warrantyYears, brand: brand}, nil
}

func (e *Electronics) Kind() Kind { return KindElectronics }
func (e *Electronics) WarrantyYears() int { return e.warrantyYears }
func (e *Electronics) Brand() string { return e.brand }
func (e *Electronics) clone() Product {
	c := *e
	return &c
}

func (e *Electronics) Attributes() []Attribute {
	return []Attribute{
		{Key: "Brand", Value: e.brand},
		{Key: "WarrantyYears", Value: fmt.Sprintf("%d", e.warrantyYears)},
	}
}

func (e *Electronics) String() string {
	return fmt.Sprintf("Electronics - ID: %s, Name: %s, Brand: %s, Price: $%.2f, Warranty: %d years, Stock: %d",
		e.id, e.name, e.brand, e.price, e.warrantyYears, e.stock)
}

// Grocery is a perishable product with an expiry date.
type Grocery struct {
	base
	expiryDate time.Time
}

// NewGrocery validates and builds a Grocery product. Only the calendar date of
// expiry is kept.
func NewGrocery(item Item, expiryDate time.Time) (*Grocery, error) {
	if err := validateFields(item); err != nil {
		return nil, err
	}
	if expiryDate.IsZero() {
		return nil, validationErrorf("expiry_date is required")
	}
	return &Grocery{base: newBase(item), expiryDate: CalendarDate(expiryDate)}, nil
}

func (g *Grocery) Kind() Kind { return KindGrocery }
func (g *Grocery) ExpiryDate() time.Time { return g.expiryDate }
func (g *Grocery) clone() Product {
	c := *g
	return &c
}

// ExpiredOn reports whether the expiry date falls strictly before the calendar
// date of now.
func (g *Grocery) ExpiredOn(now time.Time) bool {
	return g.expiryDate.Before(CalendarDate(now))
}

// IsExpired reports whether the product expired before today.
func (g *Grocery) IsExpired() bool { return g.ExpiredOn(time.Now()) }

func (g *Grocery) Attributes() []Attribute {
	return []Attribute{
		{Key: "ExpiryDate", Value: g.expiryDate.Format(DateLayout)},
	}
}

func (g *Grocery) String() string {
	expired := ""
	if g.IsExpired() {
		expired = " (EXPIRED)"
	}
	return fmt.Sprintf("Grocery - ID: %s, Name: %s, Price: $%.2f, Expiry: %s%s, Stock: %d",
		g.id, g.name, g.price, g.expiryDate.Format(DateLayout), expired, g.stock)
}

// Clothing is a wearable product.
type Clothing struct {
	base
	size     string
	material string
}

// NewClothing validates and builds a Clothing product.
func NewClothing(item Item, size, material string) (*Clothing, error) {
	if err := validateFields(item); err != nil {
		return nil, err
	}
	return &Clothing{base: newBase(item), size: size, material: material}, nil
}

func (c *Clothing) Kind() Kind { return KindClothing }
func (c *Clothing) Size() string { return c.size }
func (c *Clothing) Material() string { return c.material }
func (c *Clothing) clone() Product {
	cp := *c
	return &cp
}

func (c *Clothing) Attributes() []Attribute {
	return []Attribute{
		{Key: "Size", Value: c.size},
		{Key: "Material", Value: c.material},
	}
}

func (c *Clothing) String() string {
	return fmt.Sprintf("Clothing - ID: %s, Name: %s, Size: %s, Material: %s, Price: $%.2f, Stock: %d",
		c.id, c.name, c.size, c.material, c.price, c.stock)
}

// Clone returns an independent copy of p.
func Clone(p Product) Product {
	if p == nil {
		return nil
	}
	return p.clone()
}

// DateLayout is the ISO-8601 calendar date format used for expiry dates.
const DateLayout = "2006-01-02"

// CalendarDate truncates t to midnight UTC of its own calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
