package qr

import domainerrors "baartal/internal/errors"

var (
	ErrInvalidQR        = domainerrors.ErrInvalidQR
	ErrQRInactive       = domainerrors.ErrQRInactive
	ErrQRExpired        = domainerrors.ErrQRExpired
	ErrBusinessInactive = domainerrors.ErrBusinessInactive
	ErrForbidden        = domainerrors.ErrForbidden
)
