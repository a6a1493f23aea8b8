package domain

import "errors"

var (
	ErrSweetNotFound     = errors.New("sweet not found")
	ErrInsufficientStock = errors.New("insufficient stock to fulfill purchase")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidSweet      = errors.New("invalid sweet fields")
)

// Sweet is a catalog item. Quantity is the only field mutated concurrently;
// it must never drop below zero.
type Sweet struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// Validate enforces the field-level invariants applied on create and update.
func (s *Sweet) Validate() error {
	if s.Name == "" || s.Price < 0 || s.Quantity < 0 {
		return ErrInvalidSweet
	}
	return nil
}
