package errors

import "net/http"

var (
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "missing or invalid credentials",
		Status:  http.StatusUnauthorized,
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "not allowed for this account",
		Status:  http.StatusForbidden,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
	}
	ErrEmailTaken = &DomainError{
		Code:    "EMAIL_TAKEN",
		Message: "email is already registered",
		Status:  http.StatusConflict,
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Status:  http.StatusNotFound,
	}
	ErrAlreadyRated = &DomainError{
		Code:    "ALREADY_RATED",
		Message: "business already rated by this customer",
		Status:  http.StatusConflict,
	}
	ErrRatingNotFound = &DomainError{
		Code:    "RATING_NOT_FOUND",
		Message: "rating not found",
		Status:  http.StatusNotFound,
	}
)
