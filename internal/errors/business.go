package errors

import "net/http"

var (
	ErrBusinessNotFound = &DomainError{
		Code:    "BUSINESS_NOT_FOUND",
		Message: "business not found",
		Status:  http.StatusNotFound,
	}
	ErrBusinessInactive = &DomainError{
		Code:    "BUSINESS_INACTIVE",
		Message: "business is not active",
		Status:  http.StatusBadRequest,
	}
	ErrBusinessExists = &DomainError{
		Code:    "BUSINESS_EXISTS",
		Message: "user already owns a business",
		Status:  http.StatusConflict,
	}
	ErrCategoryTaken = &DomainError{
		Code:    "CATEGORY_TAKEN",
		Message: "an active business of this category already exists in this pincode",
		Status:  http.StatusConflict,
	}
	ErrInvalidCategory = &DomainError{
		Code:    "INVALID_CATEGORY",
		Message: "unknown business category",
		Status:  http.StatusBadRequest,
	}
	ErrBundleNotFound = &DomainError{
		Code:    "BUNDLE_NOT_FOUND",
		Message: "bundle not found",
		Status:  http.StatusNotFound,
	}
)
