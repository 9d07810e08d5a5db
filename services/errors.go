package services

import "errors"

// Engine error taxonomy. All of these are recoverable conditions returned
// to the caller of the specific operation; none of them crash the engine.
var (
	ErrInvalidTransition   = errors.New("invalid table status transition")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrUnknownTable        = errors.New("table not found")
	ErrUnknownArea         = errors.New("area not found")
	ErrCartExists          = errors.New("table already has an active cart")
	ErrNoCart              = errors.New("table has no active cart")
	ErrLineNotFound        = errors.New("cart line not found")
)
