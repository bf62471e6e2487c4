package errors

import "net/http"

var (
	ErrInvalidQR = &DomainError{
		Code:    "INVALID_QR",
		Message: "invalid QR code",
		Status:  http.StatusNotFound,
	}
	ErrQRInactive = &DomainError{
		Code:    "QR_INACTIVE",
		Message: "QR code is not active",
		Status:  http.StatusBadRequest,
	}
	ErrQRExpired = &DomainError{
		Code:    "QR_EXPIRED",
		Message: "QR code has expired",
		Status:  http.StatusBadRequest,
	}
)
