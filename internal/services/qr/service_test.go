package qr

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "baartal/internal/errors"
	"baartal/internal/models"
	"baartal/internal/repositories"
)

type fakeQRRepo struct {
	byID   map[uuid.UUID]*models.QRCode
	byCode map[string]*models.QRCode
}

func newFakeQRRepo() *fakeQRRepo {
	return &fakeQRRepo{
		byID:   make(map[uuid.UUID]*models.QRCode),
		byCode: make(map[string]*models.QRCode),
	}
}

func (f *fakeQRRepo) Create(qr *models.QRCode) error {
	if qr.ID == uuid.Nil {
		qr.ID = uuid.New()
	}
	c := *qr
	f.byID[qr.ID] = &c
	f.byCode[qr.Code] = &c
	return nil
}

func (f *fakeQRRepo) GetByID(id uuid.UUID) (*models.QRCode, error) {
	qr, ok := f.byID[id]
	if !ok {
		return nil, ErrInvalidQR
	}
	c := *qr
	return &c, nil
}

func (f *fakeQRRepo) GetByCode(code string) (*models.QRCode, error) {
	qr, ok := f.byCode[code]
	if !ok {
		return nil, ErrInvalidQR
	}
	c := *qr
	return &c, nil
}

func (f *fakeQRRepo) Update(qr *models.QRCode) error {
	c := *qr
	f.byID[qr.ID] = &c
	f.byCode[qr.Code] = &c
	return nil
}

func (f *fakeQRRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.QRCode, error) {
	var out []models.QRCode
	for _, qr := range f.byID {
		if qr.BusinessID == businessID {
			out = append(out, *qr)
		}
	}
	return out, nil
}

func (f *fakeQRRepo) CountActiveByBusiness(businessID uuid.UUID) (int64, error) {
	var n int64
	for _, qr := range f.byID {
		if qr.BusinessID == businessID && qr.IsActive {
			n++
		}
	}
	return n, nil
}

// businessStore implements just enough of BusinessRepository for the
// QR service, which only reads businesses by ID.
type businessStore struct {
	byID map[uuid.UUID]*models.Business
}

func newBusinessStore() *businessStore {
	return &businessStore{byID: make(map[uuid.UUID]*models.Business)}
}

func (f *businessStore) add(ownerID uuid.UUID, active bool) *models.Business {
	b := &models.Business{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		OwnerUserID:  ownerID,
		BusinessName: "Chandni Chowk Cafe",
		Category:     models.CategoryCafe,
		Pincode:      "110006",
		BCoinRate:    5,
		IsActive:     active,
	}
	f.byID[b.ID] = b
	return b
}

func (f *businessStore) GetByID(id uuid.UUID) (*models.Business, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, domainerrors.ErrBusinessNotFound
	}
	c := *b
	return &c, nil
}

func (f *businessStore) Create(*models.Business) error { return nil }
func (f *businessStore) GetByOwnerUserID(uuid.UUID) (*models.Business, error) {
	return nil, nil
}
func (f *businessStore) Update(*models.Business) error { return nil }
func (f *businessStore) List(context.Context, repositories.BusinessFilter) ([]models.Business, int64, error) {
	return nil, 0, nil
}
func (f *businessStore) FindActiveCategoryClash(string, string, uuid.UUID) (*models.Business, error) {
	return nil, nil
}
func (f *businessStore) GetOrCreateBundleForUpdate(string) (*models.Bundle, error) {
	return nil, nil
}
func (f *businessStore) CreateQRCode(*models.QRCode) error { return nil }
func (f *businessStore) ExecuteInTransaction(fn func(repositories.BusinessRepository) error) error {
	return fn(f)
}

func setupQRService(t *testing.T) (*fakeQRRepo, *businessStore, Service, uuid.UUID, *models.Business) {
	t.Helper()
	repo := newFakeQRRepo()
	businesses := newBusinessStore()
	ownerID := uuid.New()
	b := businesses.add(ownerID, true)
	return repo, businesses, NewService(repo, businesses), ownerID, b
}

func TestMintCreatesActiveToken(t *testing.T) {
	_, _, svc, ownerID, b := setupQRService(t)

	qr, err := svc.Mint(context.Background(), ownerID, MintRequest{
		BusinessID:  b.ID,
		Description: "counter two",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, qr.Code)
	assert.True(t, qr.IsActive)
	assert.Nil(t, qr.ExpiresAt)
	assert.Equal(t, b.ID, qr.BusinessID)
}

func TestMintChecks(t *testing.T) {
	t.Run("non-owner", func(t *testing.T) {
		_, _, svc, _, b := setupQRService(t)
		_, err := svc.Mint(context.Background(), uuid.New(), MintRequest{BusinessID: b.ID})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("inactive business", func(t *testing.T) {
		_, businesses, svc, ownerID, b := setupQRService(t)
		businesses.byID[b.ID].IsActive = false
		_, err := svc.Mint(context.Background(), ownerID, MintRequest{BusinessID: b.ID})
		assert.ErrorIs(t, err, ErrBusinessInactive)
	})

	t.Run("expiry in the past", func(t *testing.T) {
		_, _, svc, ownerID, b := setupQRService(t)
		past := time.Now().Add(-time.Hour)
		_, err := svc.Mint(context.Background(), ownerID, MintRequest{BusinessID: b.ID, ExpiresAt: &past})
		assert.Error(t, err)
	})

	t.Run("active token cap", func(t *testing.T) {
		repo, _, svc, ownerID, b := setupQRService(t)
		for i := 0; i < MaxActivePerBusiness; i++ {
			require.NoError(t, repo.Create(&models.QRCode{
				Code:       uuid.NewString(),
				BusinessID: b.ID,
				IsActive:   true,
			}))
		}
		_, err := svc.Mint(context.Background(), ownerID, MintRequest{BusinessID: b.ID})
		assert.Error(t, err)
	})
}

func TestResolveReturnsBusinessAndToken(t *testing.T) {
	_, _, svc, ownerID, b := setupQRService(t)

	qr, err := svc.Mint(context.Background(), ownerID, MintRequest{BusinessID: b.ID})
	require.NoError(t, err)

	res, err := svc.Resolve(context.Background(), qr.Code)
	require.NoError(t, err)
	assert.Equal(t, qr.ID, res.QRCode.ID)
	assert.Equal(t, b.ID, res.Business.ID)
	assert.Equal(t, b.BCoinRate, res.Business.BCoinRate)
}

func TestResolveRejections(t *testing.T) {
	t.Run("unknown code", func(t *testing.T) {
		_, _, svc, _, _ := setupQRService(t)
		_, err := svc.Resolve(context.Background(), "no-such-code")
		assert.ErrorIs(t, err, ErrInvalidQR)
	})

	t.Run("empty code", func(t *testing.T) {
		_, _, svc, _, _ := setupQRService(t)
		_, err := svc.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidQR)
	})

	t.Run("deactivated token", func(t *testing.T) {
		_, _, svc, ownerID, b := setupQRService(t)
		qr, err := svc.Mint(context.Background(), ownerID, MintRequest{BusinessID: b.ID})
		require.NoError(t, err)
		require.NoError(t, svc.Deactivate(context.Background(), ownerID, qr.ID))

		_, err = svc.Resolve(context.Background(), qr.Code)
		assert.ErrorIs(t, err, ErrQRInactive)
	})

	t.Run("expired token", func(t *testing.T) {
		repo, _, svc, _, b := setupQRService(t)
		past := time.Now().Add(-time.Minute)
		require.NoError(t, repo.Create(&models.QRCode{
			Code:       "stale",
			BusinessID: b.ID,
			IsActive:   true,
			ExpiresAt:  &past,
		}))

		_, err := svc.Resolve(context.Background(), "stale")
		assert.ErrorIs(t, err, ErrQRExpired)
	})

	t.Run("business gone inactive", func(t *testing.T) {
		_, businesses, svc, ownerID, b := setupQRService(t)
		qr, err := svc.Mint(context.Background(), ownerID, MintRequest{BusinessID: b.ID})
		require.NoError(t, err)

		businesses.byID[b.ID].IsActive = false
		_, err = svc.Resolve(context.Background(), qr.Code)
		assert.ErrorIs(t, err, ErrBusinessInactive)
	})
}

func TestDeactivateIsIdempotentAndOwnerOnly(t *testing.T) {
	_, _, svc, ownerID, b := setupQRService(t)
	ctx := context.Background()

	qr, err := svc.Mint(ctx, ownerID, MintRequest{BusinessID: b.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Deactivate(ctx, uuid.New(), qr.ID), ErrForbidden)

	require.NoError(t, svc.Deactivate(ctx, ownerID, qr.ID))
	require.NoError(t, svc.Deactivate(ctx, ownerID, qr.ID))
}

func TestListOwnerOnly(t *testing.T) {
	_, _, svc, ownerID, b := setupQRService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Mint(ctx, ownerID, MintRequest{BusinessID: b.ID})
		require.NoError(t, err)
	}

	codes, err := svc.List(ctx, ownerID, b.ID)
	require.NoError(t, err)
	assert.Len(t, codes, 3)

	_, err = svc.List(ctx, uuid.New(), b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
