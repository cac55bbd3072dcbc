package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDiscountValue = errors.New("invalid discount value")
	ErrValidation           = errors.New("validation failed")
	ErrResourceUnavailable  = errors.New("resource unavailable")
)

// StockError reports how much of an item is actually left when a request
// asked for more. Available == 0 means the item is out of stock.
type StockError struct {
	Item      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	if e.Available == 0 {
		return fmt.Sprintf("%s is out of stock", e.Item)
	}
	return fmt.Sprintf("only %d of %s available, requested %d", e.Available, e.Item, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
