package utils

import "errors"

// Common application errors used across services.
var (
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
	ErrEventNotFound       = errors.New("EVENT_NOT_FOUND")
	ErrEventNotPublished   = errors.New("EVENT_NOT_PUBLISHED")
	ErrCategoryNotFound    = errors.New("CATEGORY_NOT_FOUND")
	ErrCategoryInactive    = errors.New("CATEGORY_INACTIVE")
	ErrCategoryMismatch    = errors.New("CATEGORY_MISMATCH")
	ErrInsufficientStock   = errors.New("INSUFFICIENT_STOCK")
	ErrInvalidTransition   = errors.New("INVALID_TRANSITION")
	ErrReasonTooShort      = errors.New("REASON_TOO_SHORT")
	ErrAlreadyPaid         = errors.New("ALREADY_PAID")
	ErrGatewayUnavailable  = errors.New("GATEWAY_UNAVAILABLE")
	ErrInvalidToken        = errors.New("INVALID_TOKEN")
)
