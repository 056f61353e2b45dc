package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported by the inventory engine. Every failure returned by this
// package (and by the persistence adapters) matches at least one of these with
// errors.Is. A DeserializationError also matches the kind of the error it
// wraps, such as ErrValidation or ErrDuplicateID.
var (
	ErrValidation        = errors.New("validation error")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateID       = errors.New("duplicate product id")
	ErrNotFound          = errors.New("product not found")
	ErrDeserialization   = errors.New("deserialization error")
	ErrPersistence       = errors.New("persistence error")
)

// InsufficientStockError is returned when a sale asks for more units than are held.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d in stock, requested %d",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// DeserializationError describes a product record that could not be decoded.
// Index is the record position within a loaded document, or -1 when the
// record was decoded on its own.
type DeserializationError struct {
	Index int
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	msg := ErrDeserialization.Error()
	if e.Index >= 0 {
		msg += fmt.Sprintf(": record %d", e.Index)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DeserializationError) Is(target error) bool { return target == ErrDeserialization }

func (e *DeserializationError) Unwrap() error { return e.Err }

// PersistenceError wraps an I/O failure while reading or writing the data file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrPersistence, e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
