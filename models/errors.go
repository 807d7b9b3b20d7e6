package models

import (
	"errors"
	"fmt"
)

// ErrInsufficientPayment rejects a deploy whose paid fee is below the flat
// deploy fee, and a mint whose paid fee is below the escalator quote.
var ErrInsufficientPayment = errors.New("insufficient payment")

// ErrInsufficientFunds rejects a withdrawal exceeding the vault balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ValidationError is any admission rejection with a specific reason.
// It is always raised before state changes.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ConflictError rejects a deploy whose canonical symbol is already taken.
type ConflictError struct {
	Symbol string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("symbol %q already registered", e.Symbol)
}

// InstantiationError reports a failed module instantiation. It always rolls
// back the whole deploy, id included.
type InstantiationError struct {
	Address string
	Err     error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("module instantiation at %s failed: %v", e.Address, e.Err)
}

func (e *InstantiationError) Unwrap() error { return e.Err }

// RangeError rejects page requests with a zero size or a page number past
// the available page count.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return "out of range: " + e.Reason
}
