package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainerrors "baartal/internal/errors"
	"baartal/internal/models"
)

// QRCodeRepository stores reusable counter tokens.
type QRCodeRepository interface {
	Create(qr *models.QRCode) error
	GetByID(id uuid.UUID) (*models.QRCode, error)
	GetByCode(code string) (*models.QRCode, error)
	Update(qr *models.QRCode) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.QRCode, error)
	CountActiveByBusiness(businessID uuid.UUID) (int64, error)
}

type qrCodeRepository struct {
	db *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

func (r *qrCodeRepository) Create(qr *models.QRCode) error {
	if err := r.db.Create(qr).Error; err != nil {
		return fmt.Errorf("create qr code: %w", err)
	}
	return nil
}

func (r *qrCodeRepository) GetByID(id uuid.UUID) (*models.QRCode, error) {
	var qr models.QRCode
	if err := r.db.First(&qr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrInvalidQR
		}
		return nil, fmt.Errorf("get qr code: %w", err)
	}
	return &qr, nil
}

func (r *qrCodeRepository) GetByCode(code string) (*models.QRCode, error) {
	var qr models.QRCode
	if err := r.db.Where("code = ?", code).First(&qr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrInvalidQR
		}
		return nil, fmt.Errorf("get qr code: %w", err)
	}
	return &qr, nil
}

func (r *qrCodeRepository) Update(qr *models.QRCode) error {
	if err := r.db.Save(qr).Error; err != nil {
		return fmt.Errorf("update qr code: %w", err)
	}
	return nil
}

func (r *qrCodeRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.QRCode, error) {
	var codes []models.QRCode
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&codes).Error
	if err != nil {
		return nil, fmt.Errorf("list qr codes: %w", err)
	}
	return codes, nil
}

func (r *qrCodeRepository) CountActiveByBusiness(businessID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.QRCode{}).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active qr codes: %w", err)
	}
	return count, nil
}
