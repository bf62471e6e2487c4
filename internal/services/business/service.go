package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "baartal/internal/errors"
	"baartal/internal/logger"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/utils"
	"baartal/internal/validation"
)

type service struct {
	repo  repositories.BusinessRepository
	users repositories.UserRepository
	log   *zap.Logger
}

// NewService creates the business service.
func NewService(repo repositories.BusinessRepository, users repositories.UserRepository) Service {
	if repo == nil {
		panic("business repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	return &service{
		repo:  repo,
		users: users,
		log:   logger.Get().Named("business"),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	v := validation.New()
	v.Required("businessName", req.BusinessName)
	v.MaxLength("businessName", req.BusinessName, validation.MaxNameLength)
	v.Pincode("pincode", req.Pincode)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if !models.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	rate := models.DefaultBCoinRate
	if req.BCoinRate != nil {
		rate = *req.BCoinRate
	}
	if err := checkRate(rate); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}
	if !owner.IsBusiness() {
		return nil, ErrForbidden.WithMessage("only business accounts can register a business")
	}

	var result RegisterResult
	err = s.repo.ExecuteInTransaction(func(tx repositories.BusinessRepository) error {
		existing, err := tx.GetByOwnerUserID(req.OwnerUserID)
		if err != nil && !errors.Is(err, ErrBusinessNotFound) {
			return err
		}
		if existing != nil {
			return ErrBusinessExists
		}

		// The bundle row lock serializes registrations per pincode, so
		// the clash scan below cannot race another registration.
		bundle, err := tx.GetOrCreateBundleForUpdate(req.Pincode)
		if err != nil {
			return err
		}
		clash, err := tx.FindActiveCategoryClash(req.Category, req.Pincode, uuid.Nil)
		if err != nil {
			return err
		}
		if clash != nil {
			return categoryTaken(clash)
		}

		b := &models.Business{
			OwnerUserID:  req.OwnerUserID,
			BusinessName: req.BusinessName,
			Category:     req.Category,
			Pincode:      req.Pincode,
			Address:      req.Address,
			Description:  req.Description,
			BCoinRate:    rate,
			IsActive:     true,
			BundleID:     &bundle.ID,
		}
		if err := tx.Create(b); err != nil {
			return err
		}

		qr := &models.QRCode{
			Code:        utils.MustGenerateSecureCode(),
			BusinessID:  b.ID,
			Description: "primary counter code",
			IsActive:    true,
		}
		if err := tx.CreateQRCode(qr); err != nil {
			return err
		}

		result = RegisterResult{Business: b, QRCode: qr}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("business registered",
		zap.String("business_id", result.Business.ID.String()),
		zap.String("category", result.Business.Category),
		zap.String("pincode", result.Business.Pincode),
	)
	return &result, nil
}

func (s *service) Update(ctx context.Context, callerID, businessID uuid.UUID, req UpdateRequest) (*models.Business, error) {
	if req.BusinessName != nil && *req.BusinessName == "" {
		return nil, domainerrors.Validation("businessName cannot be empty")
	}
	if req.Category != nil && !models.IsValidCategory(*req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Pincode != nil {
		v := validation.New()
		v.Pincode("pincode", *req.Pincode)
		if err := v.Err(); err != nil {
			return nil, err
		}
	}
	if req.BCoinRate != nil {
		if err := checkRate(*req.BCoinRate); err != nil {
			return nil, err
		}
	}

	var updated *models.Business
	err := s.repo.ExecuteInTransaction(func(tx repositories.BusinessRepository) error {
		b, err := tx.GetByID(businessID)
		if err != nil {
			return err
		}
		if b.OwnerUserID != callerID {
			return ErrForbidden
		}

		category := b.Category
		if req.Category != nil {
			category = *req.Category
		}
		pincode := b.Pincode
		if req.Pincode != nil {
			pincode = *req.Pincode
		}

		// Moving to another category or pincode claims a new slot and
		// must pass the same check as a fresh registration.
		if category != b.Category || pincode != b.Pincode {
			bundle, err := tx.GetOrCreateBundleForUpdate(pincode)
			if err != nil {
				return err
			}
			clash, err := tx.FindActiveCategoryClash(category, pincode, b.ID)
			if err != nil {
				return err
			}
			if clash != nil {
				return categoryTaken(clash)
			}
			b.Category = category
			b.Pincode = pincode
			b.BundleID = &bundle.ID
		}

		if req.BusinessName != nil {
			b.BusinessName = *req.BusinessName
		}
		if req.Address != nil {
			b.Address = *req.Address
		}
		if req.Description != nil {
			b.Description = *req.Description
		}
		if req.BCoinRate != nil {
			b.BCoinRate = *req.BCoinRate
		}

		if err := tx.Update(b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("business updated", zap.String("business_id", businessID.String()))
	return updated, nil
}

func (s *service) Deactivate(ctx context.Context, callerID, businessID uuid.UUID) error {
	err := s.repo.ExecuteInTransaction(func(tx repositories.BusinessRepository) error {
		b, err := tx.GetByID(businessID)
		if err != nil {
			return err
		}
		if b.OwnerUserID != callerID {
			return ErrForbidden
		}
		if !b.IsActive {
			return nil
		}
		b.IsActive = false
		return tx.Update(b)
	})
	if err != nil {
		return err
	}

	s.log.Info("business deactivated", zap.String("business_id", businessID.String()))
	return nil
}

func (s *service) Reactivate(ctx context.Context, callerID, businessID uuid.UUID) error {
	err := s.repo.ExecuteInTransaction(func(tx repositories.BusinessRepository) error {
		b, err := tx.GetByID(businessID)
		if err != nil {
			return err
		}
		if b.OwnerUserID != callerID {
			return ErrForbidden
		}
		if b.IsActive {
			return nil
		}

		// The slot may have been claimed while this business was
		// inactive.
		if _, err := tx.GetOrCreateBundleForUpdate(b.Pincode); err != nil {
			return err
		}
		clash, err := tx.FindActiveCategoryClash(b.Category, b.Pincode, b.ID)
		if err != nil {
			return err
		}
		if clash != nil {
			return categoryTaken(clash)
		}

		b.IsActive = true
		return tx.Update(b)
	})
	if err != nil {
		return err
	}

	s.log.Info("business reactivated", zap.String("business_id", businessID.String()))
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	return s.repo.GetByID(id)
}

func (s *service) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Business, error) {
	return s.repo.GetByOwnerUserID(ownerUserID)
}

func (s *service) List(ctx context.Context, filter repositories.BusinessFilter) ([]models.Business, int64, error) {
	if filter.Category != "" && !models.IsValidCategory(filter.Category) {
		return nil, 0, ErrInvalidCategory
	}
	if filter.Limit <= 0 {
		filter.Limit = utils.DefaultLimit
	}
	if filter.Limit > utils.MaxLimit {
		filter.Limit = utils.MaxLimit
	}
	return s.repo.List(ctx, filter)
}

func checkRate(rate float64) error {
	if rate < models.MinBCoinRate || rate > models.MaxBCoinRate {
		return domainerrors.Validation(fmt.Sprintf("bCoinRate must be between %.0f and %.0f",
			models.MinBCoinRate, models.MaxBCoinRate))
	}
	return nil
}

func categoryTaken(clash *models.Business) error {
	return ErrCategoryTaken.WithMessage(fmt.Sprintf(
		"category %s in pincode %s is already held by %s",
		clash.Category, clash.Pincode, clash.BusinessName))
}
