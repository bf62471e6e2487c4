package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domainerrors "baartal/internal/errors"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/utils"
)

type fakeUserRepo struct {
	byID     map[uuid.UUID]*models.User
	byEmail  map[string]*models.User
	profiles map[uuid.UUID]*models.CustomerProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:     make(map[uuid.UUID]*models.User),
		byEmail:  make(map[string]*models.User),
		profiles: make(map[uuid.UUID]*models.CustomerProfile),
	}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey)
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) IncrementTokenVersion(id uuid.UUID) error {
	u, ok := f.byID[id]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	u.TokenVersion++
	return nil
}

func (f *fakeUserRepo) UpdatePassword(id uuid.UUID, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) CreateProfile(p *models.CustomerProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeUserRepo) ExecuteInTransaction(fn func(repositories.UserRepository) error) error {
	return fn(f)
}

func setupAuthService(t *testing.T) (*fakeUserRepo, Service) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := newFakeUserRepo()
	return repo, NewService(repo)
}

func customerRequest() RegisterRequest {
	return RegisterRequest{
		Name:     "Priya Nair",
		Email:    "priya@example.com",
		Password: "sturdy-pass1",
		UserType: models.UserTypeCustomer,
		Pincode:  "110001",
	}
}

func TestRegisterCustomerCreatesProfile(t *testing.T) {
	repo, svc := setupAuthService(t)

	res, err := svc.Register(context.Background(), customerRequest())
	require.NoError(t, err)
	require.NotNil(t, res.User)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.True(t, res.User.IsActive)

	assert.NotEqual(t, "sturdy-pass1", res.User.PasswordHash, "password must never be stored in plaintext")
	assert.True(t, utils.CheckPassword(res.User.PasswordHash, "sturdy-pass1"))

	profile, ok := repo.profiles[res.User.ID]
	require.True(t, ok, "customer registration must create a profile")
	assert.Equal(t, 0.00, profile.BCoinBalance)
	assert.Equal(t, "110001", profile.PreferredPincode)
}

func TestRegisterBusinessSkipsProfile(t *testing.T) {
	repo, svc := setupAuthService(t)

	req := customerRequest()
	req.Email = "owner@example.com"
	req.UserType = models.UserTypeBusiness

	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, ok := repo.profiles[res.User.ID]
	assert.False(t, ok, "business accounts have no coin balance")
}

func TestRegisterNormalizesEmail(t *testing.T) {
	_, svc := setupAuthService(t)

	req := customerRequest()
	req.Email = "  Priya@Example.COM "
	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", res.User.Email)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "PRIYA@example.com",
		Password: "sturdy-pass1",
	})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{"blank name", func(r *RegisterRequest) { r.Name = " " }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "ab1" }},
		{"password without digits", func(r *RegisterRequest) { r.Password = "letters-only" }},
		{"bad user type", func(r *RegisterRequest) { r.UserType = "superuser" }},
		{"admin not self-served", func(r *RegisterRequest) { r.UserType = models.UserTypeAdmin }},
		{"bad pincode", func(r *RegisterRequest) { r.Pincode = "12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := setupAuthService(t)

			req := customerRequest()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			require.Error(t, err)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Register(context.Background(), customerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), customerRequest())
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo, svc := setupAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, customerRequest())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := svc.Login(ctx, LoginRequest{Email: "priya@example.com", Password: "sturdy-pass1"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, res.User.ID)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "priya@example.com", Password: "wrong-pass1"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("unknown email reads the same", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "sturdy-pass1"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		repo.byID[registered.User.ID].IsActive = false
		defer func() { repo.byID[registered.User.ID].IsActive = true }()

		_, err := svc.Login(ctx, LoginRequest{Email: "priya@example.com", Password: "sturdy-pass1"})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})
}

func TestRefreshTokens(t *testing.T) {
	_, svc := setupAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, customerRequest())
	require.NoError(t, err)

	pair, err := svc.RefreshTokens(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = svc.RefreshTokens(ctx, res.RefreshToken+"tampered")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	_, svc := setupAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, customerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.User.ID))

	_, err = svc.RefreshTokens(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized,
		"a refresh token issued before logout must be rejected")
}

func TestChangePassword(t *testing.T) {
	repo, svc := setupAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, customerRequest())
	require.NoError(t, err)
	userID := res.User.ID
	versionBefore := repo.byID[userID].TokenVersion

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, userID, "nope-nope1", "fresh-pass2")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, userID, "sturdy-pass1", "weak")
		assert.Error(t, err)
	})

	t.Run("success revokes old credentials", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, userID, "sturdy-pass1", "fresh-pass2"))

		_, err := svc.Login(ctx, LoginRequest{Email: "priya@example.com", Password: "sturdy-pass1"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

		_, err = svc.Login(ctx, LoginRequest{Email: "priya@example.com", Password: "fresh-pass2"})
		assert.NoError(t, err)

		assert.Greater(t, repo.byID[userID].TokenVersion, versionBefore,
			"password change must bump the token version")
	})
}
