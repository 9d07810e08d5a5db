package controllers

import (
	"errors"
	"net/http"

	"github.com/littleboyzz/Billiard-Plus-App/services"
)

// statusFor maps engine errors to HTTP status codes. Everything in the
// engine taxonomy is recoverable; only unexpected failures become 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownTable),
		errors.Is(err, services.ErrUnknownArea),
		errors.Is(err, services.ErrNoCart),
		errors.Is(err, services.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrCartExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
