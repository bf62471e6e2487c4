package errors

import "net/http"

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient B-Coin balance",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
		Status:  http.StatusBadRequest,
	}
	ErrProfileNotFound = &DomainError{
		Code:    "PROFILE_NOT_FOUND",
		Message: "customer profile not found",
		Status:  http.StatusNotFound,
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
		Status:  http.StatusNotFound,
	}
)
