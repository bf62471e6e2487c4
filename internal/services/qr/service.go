package qr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "baartal/internal/errors"
	"baartal/internal/logger"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/utils"
)

type service struct {
	repo       repositories.QRCodeRepository
	businesses repositories.BusinessRepository
	log        *zap.Logger
}

// NewService creates the QR token service.
func NewService(repo repositories.QRCodeRepository, businesses repositories.BusinessRepository) Service {
	if repo == nil {
		panic("qr code repository is required")
	}
	if businesses == nil {
		panic("business repository is required")
	}
	return &service{
		repo:       repo,
		businesses: businesses,
		log:        logger.Get().Named("qr"),
	}
}

func (s *service) Mint(ctx context.Context, callerID uuid.UUID, req MintRequest) (*models.QRCode, error) {
	business, err := s.businesses.GetByID(req.BusinessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerUserID != callerID {
		return nil, ErrForbidden
	}
	if !business.IsActive {
		return nil, ErrBusinessInactive
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		return nil, domainerrors.Validation("expiresAt must be in the future")
	}

	active, err := s.repo.CountActiveByBusiness(req.BusinessID)
	if err != nil {
		return nil, err
	}
	if active >= MaxActivePerBusiness {
		return nil, domainerrors.Validation(fmt.Sprintf(
			"a business may hold at most %d active QR codes", MaxActivePerBusiness))
	}

	code, err := utils.GenerateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	qr := &models.QRCode{
		Code:        code,
		BusinessID:  req.BusinessID,
		Description: req.Description,
		IsActive:    true,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := s.repo.Create(qr); err != nil {
		return nil, err
	}

	s.log.Info("qr code minted",
		zap.String("business_id", req.BusinessID.String()),
		zap.String("qr_id", qr.ID.String()),
	)
	return qr, nil
}

func (s *service) Resolve(ctx context.Context, code string) (*ResolveResult, error) {
	if code == "" {
		return nil, ErrInvalidQR
	}

	qr, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !qr.IsActive {
		return nil, ErrQRInactive
	}
	if qr.Expired(time.Now()) {
		return nil, ErrQRExpired
	}

	business, err := s.businesses.GetByID(qr.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.IsActive {
		return nil, ErrBusinessInactive
	}

	return &ResolveResult{QRCode: qr, Business: business}, nil
}

func (s *service) Deactivate(ctx context.Context, callerID, codeID uuid.UUID) error {
	qr, err := s.repo.GetByID(codeID)
	if err != nil {
		return err
	}
	business, err := s.businesses.GetByID(qr.BusinessID)
	if err != nil {
		return err
	}
	if business.OwnerUserID != callerID {
		return ErrForbidden
	}
	if !qr.IsActive {
		return nil
	}

	qr.IsActive = false
	if err := s.repo.Update(qr); err != nil {
		return err
	}

	s.log.Info("qr code deactivated", zap.String("qr_id", codeID.String()))
	return nil
}

func (s *service) List(ctx context.Context, callerID, businessID uuid.UUID) ([]models.QRCode, error) {
	business, err := s.businesses.GetByID(businessID)
	if err != nil {
		return nil, err
	}
	if business.OwnerUserID != callerID {
		return nil, ErrForbidden
	}
	return s.repo.ListByBusiness(ctx, businessID)
}
