package ledger

import domainerrors "baartal/internal/errors"

// Errors returned by this service. Aliased so callers read
// ledger.ErrInsufficientBalance while the taxonomy stays in one place.
var (
	ErrInvalidAmount       = domainerrors.ErrInvalidAmount
	ErrInsufficientBalance = domainerrors.ErrInsufficientBalance
	ErrProfileNotFound     = domainerrors.ErrProfileNotFound
	ErrTransactionNotFound = domainerrors.ErrTransactionNotFound
	ErrBusinessNotFound    = domainerrors.ErrBusinessNotFound
	ErrBusinessInactive    = domainerrors.ErrBusinessInactive
	ErrAlreadyRated        = domainerrors.ErrAlreadyRated
)
