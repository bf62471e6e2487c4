package business

import domainerrors "baartal/internal/errors"

var (
	ErrBusinessNotFound = domainerrors.ErrBusinessNotFound
	ErrBusinessExists   = domainerrors.ErrBusinessExists
	ErrCategoryTaken    = domainerrors.ErrCategoryTaken
	ErrInvalidCategory  = domainerrors.ErrInvalidCategory
	ErrForbidden        = domainerrors.ErrForbidden
)
