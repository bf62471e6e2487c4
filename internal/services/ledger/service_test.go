package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"baartal/internal/models"
	"baartal/internal/repositories"
)

// fakeLedgerRepo is an in-memory LedgerRepository. ExecuteInTransaction
// serializes on a mutex and restores a snapshot on error, mirroring
// the row-lock + rollback semantics the real implementation gets from
// Postgres.
type fakeLedgerRepo struct {
	mu sync.Mutex

	profiles      map[uuid.UUID]*models.CustomerProfile
	businesses    map[uuid.UUID]*models.Business
	transactions  []*models.BCoinTransaction
	byKey         map[string]*models.BCoinTransaction
	ratings       map[string]*models.Rating
	notifications []*models.Notification

	inTx             bool
	failSaveBusiness error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		profiles:   make(map[uuid.UUID]*models.CustomerProfile),
		businesses: make(map[uuid.UUID]*models.Business),
		byKey:      make(map[string]*models.BCoinTransaction),
		ratings:    make(map[string]*models.Rating),
	}
}

func ratingKey(customerID, businessID uuid.UUID) string {
	return customerID.String() + "|" + businessID.String()
}

func (f *fakeLedgerRepo) snapshot() *fakeLedgerRepo {
	s := newFakeLedgerRepo()
	for k, v := range f.profiles {
		c := *v
		s.profiles[k] = &c
	}
	for k, v := range f.businesses {
		c := *v
		s.businesses[k] = &c
	}
	for _, t := range f.transactions {
		c := *t
		s.transactions = append(s.transactions, &c)
		if c.IdempotencyKey != nil {
			s.byKey[*c.IdempotencyKey] = &c
		}
	}
	for k, v := range f.ratings {
		c := *v
		s.ratings[k] = &c
	}
	for _, n := range f.notifications {
		c := *n
		s.notifications = append(s.notifications, &c)
	}
	return s
}

func (f *fakeLedgerRepo) restore(s *fakeLedgerRepo) {
	f.profiles = s.profiles
	f.businesses = s.businesses
	f.transactions = s.transactions
	f.byKey = s.byKey
	f.ratings = s.ratings
	f.notifications = s.notifications
}

func (f *fakeLedgerRepo) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := f.snapshot()
	f.inTx = true
	err := fn(f)
	f.inTx = false
	if err != nil {
		f.restore(snap)
	}
	return err
}

func (f *fakeLedgerRepo) GetProfile(customerID uuid.UUID) (*models.CustomerProfile, error) {
	p, ok := f.profiles[customerID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakeLedgerRepo) GetProfileForUpdate(customerID uuid.UUID) (*models.CustomerProfile, error) {
	return f.GetProfile(customerID)
}

func (f *fakeLedgerRepo) SaveProfile(profile *models.CustomerProfile) error {
	c := *profile
	f.profiles[profile.UserID] = &c
	return nil
}

func (f *fakeLedgerRepo) GetBusiness(id uuid.UUID) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, ErrBusinessNotFound
	}
	c := *b
	return &c, nil
}

func (f *fakeLedgerRepo) GetBusinessForUpdate(id uuid.UUID) (*models.Business, error) {
	return f.GetBusiness(id)
}

func (f *fakeLedgerRepo) SaveBusiness(business *models.Business) error {
	if f.failSaveBusiness != nil {
		return f.failSaveBusiness
	}
	c := *business
	f.businesses[business.ID] = &c
	return nil
}

func (f *fakeLedgerRepo) CreateTransaction(tx *models.BCoinTransaction) error {
	if tx.IdempotencyKey != nil {
		if _, exists := f.byKey[*tx.IdempotencyKey]; exists {
			return fmt.Errorf("create transaction: %w", gorm.ErrDuplicatedKey)
		}
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	c := *tx
	f.transactions = append(f.transactions, &c)
	if c.IdempotencyKey != nil {
		f.byKey[*c.IdempotencyKey] = &c
	}
	return nil
}

func (f *fakeLedgerRepo) GetTransactionByID(id uuid.UUID) (*models.BCoinTransaction, error) {
	for _, t := range f.transactions {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, ErrTransactionNotFound
}

func (f *fakeLedgerRepo) GetTransactionByIdempotencyKey(key string) (*models.BCoinTransaction, error) {
	if !f.inTx {
		f.mu.Lock()
		defer f.mu.Unlock()
	}
	t, ok := f.byKey[key]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeLedgerRepo) ListCustomerTransactions(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	var all []models.BCoinTransaction
	for _, t := range f.transactions {
		if t.CustomerID == customerID {
			all = append(all, *t)
		}
	}
	return page(all, limit, offset), int64(len(all)), nil
}

func (f *fakeLedgerRepo) ListBusinessTransactions(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	var all []models.BCoinTransaction
	for _, t := range f.transactions {
		if t.BusinessID == businessID {
			all = append(all, *t)
		}
	}
	return page(all, limit, offset), int64(len(all)), nil
}

func page(all []models.BCoinTransaction, limit, offset int) []models.BCoinTransaction {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (f *fakeLedgerRepo) HasCustomerTransactions(customerID, businessID uuid.UUID) (bool, error) {
	for _, t := range f.transactions {
		if t.CustomerID == customerID && t.BusinessID == businessID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedgerRepo) CreateRating(rating *models.Rating) error {
	key := ratingKey(rating.CustomerID, rating.BusinessID)
	if _, exists := f.ratings[key]; exists {
		return fmt.Errorf("create rating: %w", gorm.ErrDuplicatedKey)
	}
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	c := *rating
	f.ratings[key] = &c
	return nil
}

func (f *fakeLedgerRepo) CreateNotification(n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	c := *n
	f.notifications = append(f.notifications, &c)
	return nil
}

// test scaffolding

func seedLedger(t *testing.T, rate float64) (*fakeLedgerRepo, Service, uuid.UUID, uuid.UUID) {
	t.Helper()
	repo := newFakeLedgerRepo()

	customerID := uuid.New()
	repo.profiles[customerID] = &models.CustomerProfile{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    customerID,
	}

	businessID := uuid.New()
	repo.businesses[businessID] = &models.Business{
		BaseModel:    models.BaseModel{ID: businessID},
		OwnerUserID:  uuid.New(),
		BusinessName: "Sharma Kirana Store",
		Category:     models.CategoryKirana,
		Pincode:      "110001",
		BCoinRate:    rate,
		IsActive:     true,
	}

	return repo, NewService(repo, nil), customerID, businessID
}

func assertInvariant(t *testing.T, repo *fakeLedgerRepo, customerID uuid.UUID) {
	t.Helper()
	p := repo.profiles[customerID]
	require.NotNil(t, p)
	assert.InDelta(t, p.TotalBCoinsEarned-p.TotalBCoinsSpent, p.BCoinBalance, 1e-9,
		"balance must equal earned minus spent")
}

func TestCoinsFor(t *testing.T) {
	tests := []struct {
		name string
		bill float64
		rate float64
		want float64
	}{
		{"whole bill", 1000, 8, 80.00},
		{"default rate", 500, 5, 25.00},
		{"fractional result", 999, 5, 49.95},
		{"rounds half up", 50.5, 1, 0.51},
		{"rounds down", 33.3, 1, 0.33},
		{"zero rate", 1000, 0, 0},
		{"max rate", 250, 20, 50.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoinsFor(tt.bill, tt.rate))
		})
	}
}

func TestEarnCreditsCoins(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	res, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 1000,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)

	assert.Equal(t, 80.00, res.Transaction.Amount)
	assert.Equal(t, models.TransactionTypeEarned, res.Transaction.Type)
	assert.Equal(t, 80.00, res.Balance)
	assert.False(t, res.Replayed)
	require.NotNil(t, res.Transaction.BillAmount)
	assert.Equal(t, 1000.00, *res.Transaction.BillAmount)

	profile := repo.profiles[customerID]
	assert.Equal(t, 80.00, profile.BCoinBalance)
	assert.Equal(t, 80.00, profile.TotalBCoinsEarned)
	assert.Equal(t, 0.00, profile.TotalBCoinsSpent)

	business := repo.businesses[businessID]
	assert.Equal(t, 80.00, business.TotalBCoinsIssued)
	assert.Equal(t, 1, business.TotalCustomers)

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, models.NotificationTypeEarned, repo.notifications[0].Type)

	assertInvariant(t, repo, customerID)
}

func TestEarnRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  func(customerID, businessID uuid.UUID) EarnRequest
	}{
		{"zero bill", func(c, b uuid.UUID) EarnRequest {
			return EarnRequest{CustomerID: c, BusinessID: b, BillAmount: 0}
		}},
		{"negative bill", func(c, b uuid.UUID) EarnRequest {
			return EarnRequest{CustomerID: c, BusinessID: b, BillAmount: -50}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc, customerID, businessID := seedLedger(t, 8)

			_, err := svc.Earn(context.Background(), tt.req(customerID, businessID))
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.Empty(t, repo.transactions)
			assert.Equal(t, 0.00, repo.profiles[customerID].BCoinBalance)
		})
	}
}

func TestEarnUnknownBusiness(t *testing.T) {
	repo, svc, customerID, _ := seedLedger(t, 8)

	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: uuid.New(),
		BillAmount: 100,
	})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.Empty(t, repo.transactions)
}

func TestEarnInactiveBusiness(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)
	repo.businesses[businessID].IsActive = false

	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 100,
	})
	assert.ErrorIs(t, err, ErrBusinessInactive)
	assert.Empty(t, repo.transactions)
	assertInvariant(t, repo, customerID)
}

func TestEarnCountsCustomerOnce(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 5)

	for i := 0; i < 3; i++ {
		_, err := svc.Earn(context.Background(), EarnRequest{
			CustomerID: customerID,
			BusinessID: businessID,
			BillAmount: 200,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.businesses[businessID].TotalCustomers,
		"repeat visits must not inflate the customer count")

	otherCustomer := uuid.New()
	repo.profiles[otherCustomer] = &models.CustomerProfile{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    otherCustomer,
	}
	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: otherCustomer,
		BusinessID: businessID,
		BillAmount: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.businesses[businessID].TotalCustomers)
}

func TestEarnIdempotentReplay(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	req := EarnRequest{
		CustomerID:     customerID,
		BusinessID:     businessID,
		BillAmount:     1000,
		IdempotencyKey: "scan-4d7a",
	}

	first, err := svc.Earn(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := svc.Earn(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Transaction.ID, second.Transaction.ID)

	assert.Len(t, repo.transactions, 1, "replay must not append a second entry")
	assert.Equal(t, 80.00, repo.profiles[customerID].BCoinBalance,
		"replay must not double-credit")
	assertInvariant(t, repo, customerID)
}

func TestRedeemUpdatesBalances(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 1000,
	})
	require.NoError(t, err)

	res, err := svc.Redeem(context.Background(), RedeemRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		Amount:     30,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeRedeemed, res.Transaction.Type)
	assert.Equal(t, 30.00, res.Transaction.Amount, "amounts are stored as positive magnitudes")
	assert.Equal(t, 50.00, res.Balance)

	profile := repo.profiles[customerID]
	assert.Equal(t, 50.00, profile.BCoinBalance)
	assert.Equal(t, 80.00, profile.TotalBCoinsEarned)
	assert.Equal(t, 30.00, profile.TotalBCoinsSpent)

	assert.Equal(t, 30.00, repo.businesses[businessID].TotalBCoinsRedeemed)
	assertInvariant(t, repo, customerID)
}

func TestRedeemInsufficientBalance(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 100,
	})
	require.NoError(t, err)
	require.Equal(t, 8.00, repo.profiles[customerID].BCoinBalance)

	_, err = svc.Redeem(context.Background(), RedeemRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		Amount:     50,
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	profile := repo.profiles[customerID]
	assert.Equal(t, 8.00, profile.BCoinBalance, "failed redemption must not touch the balance")
	assert.Equal(t, 0.00, profile.TotalBCoinsSpent)
	assert.Len(t, repo.transactions, 1, "no ledger entry for a rejected redemption")
	assertInvariant(t, repo, customerID)
}

func TestRedeemExactBalance(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 1000,
	})
	require.NoError(t, err)

	res, err := svc.Redeem(context.Background(), RedeemRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		Amount:     80,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, res.Balance)
	assertInvariant(t, repo, customerID)
}

func TestFailedOperationLeavesStateUnchanged(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	_, err := svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 500,
	})
	require.NoError(t, err)

	repo.failSaveBusiness = fmt.Errorf("connection reset")
	_, err = svc.Earn(context.Background(), EarnRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		BillAmount: 500,
	})
	require.Error(t, err)
	repo.failSaveBusiness = nil

	profile := repo.profiles[customerID]
	assert.Equal(t, 40.00, profile.BCoinBalance, "rollback must restore the pre-transaction balance")
	assert.Len(t, repo.transactions, 1)
	assertInvariant(t, repo, customerID)
}

func TestRatingBonusAmounts(t *testing.T) {
	tests := []struct {
		name  string
		stars int
		bonus float64
	}{
		{"five stars", 5, 10.00},
		{"four stars", 4, 10.00},
		{"three stars", 3, 5.00},
		{"one star", 1, 5.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc, customerID, businessID := seedLedger(t, 8)

			res, err := svc.RatingBonus(context.Background(), RatingBonusRequest{
				CustomerID: customerID,
				BusinessID: businessID,
				Stars:      tt.stars,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.bonus, res.Rating.BonusAmount)
			assert.Equal(t, tt.bonus, res.Transaction.Amount)
			assert.Equal(t, tt.bonus, res.Balance, "bonus must be reflected immediately")
			assert.Equal(t, tt.bonus, repo.profiles[customerID].BCoinBalance)
			assertInvariant(t, repo, customerID)
		})
	}
}

func TestRatingBonusInvalidStars(t *testing.T) {
	_, svc, customerID, businessID := seedLedger(t, 8)

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.RatingBonus(context.Background(), RatingBonusRequest{
			CustomerID: customerID,
			BusinessID: businessID,
			Stars:      stars,
		})
		assert.Error(t, err, "stars %d must be rejected", stars)
	}
}

func TestRatingBonusOncePerBusiness(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)

	_, err := svc.RatingBonus(context.Background(), RatingBonusRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		Stars:      5,
	})
	require.NoError(t, err)

	_, err = svc.RatingBonus(context.Background(), RatingBonusRequest{
		CustomerID: customerID,
		BusinessID: businessID,
		Stars:      4,
	})
	assert.ErrorIs(t, err, ErrAlreadyRated)

	assert.Equal(t, 10.00, repo.profiles[customerID].BCoinBalance,
		"a rejected re-rating must not credit a second bonus")
	assert.Len(t, repo.transactions, 1)
	assertInvariant(t, repo, customerID)
}

func TestConcurrentEarnsSerialize(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 10)

	const workers = 25
	var wg sync.WaitGroup
	wg.Add(workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Earn(context.Background(), EarnRequest{
				CustomerID: customerID,
				BusinessID: businessID,
				BillAmount: 10,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	profile := repo.profiles[customerID]
	assert.Equal(t, 25.00, profile.BCoinBalance,
		"N concurrent earns of 1.00 must land exactly N coins")
	assert.Len(t, repo.transactions, workers)
	assert.Equal(t, 1, repo.businesses[businessID].TotalCustomers)
	assertInvariant(t, repo, customerID)
}

func TestConcurrentSameIdempotencyKey(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 10)

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Earn(context.Background(), EarnRequest{
				CustomerID:     customerID,
				BusinessID:     businessID,
				BillAmount:     100,
				IdempotencyKey: "retry-burst",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assert.Len(t, repo.transactions, 1, "one key, one ledger entry")
	assert.Equal(t, 10.00, repo.profiles[customerID].BCoinBalance)
	assertInvariant(t, repo, customerID)
}

func TestInvariantAcrossMixedOperations(t *testing.T) {
	repo, svc, customerID, businessID := seedLedger(t, 8)
	ctx := context.Background()

	_, err := svc.Earn(ctx, EarnRequest{CustomerID: customerID, BusinessID: businessID, BillAmount: 1250})
	require.NoError(t, err)
	_, err = svc.Redeem(ctx, RedeemRequest{CustomerID: customerID, BusinessID: businessID, Amount: 25.50})
	require.NoError(t, err)
	_, err = svc.RatingBonus(ctx, RatingBonusRequest{CustomerID: customerID, BusinessID: businessID, Stars: 5})
	require.NoError(t, err)

	// over-redemption attempt, then a valid one
	_, err = svc.Redeem(ctx, RedeemRequest{CustomerID: customerID, BusinessID: businessID, Amount: 10000})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	_, err = svc.Redeem(ctx, RedeemRequest{CustomerID: customerID, BusinessID: businessID, Amount: 14.50})
	require.NoError(t, err)

	profile := repo.profiles[customerID]
	assert.Equal(t, 110.00, profile.TotalBCoinsEarned)
	assert.Equal(t, 40.00, profile.TotalBCoinsSpent)
	assert.Equal(t, 70.00, profile.BCoinBalance)
	assertInvariant(t, repo, customerID)
}

func TestGetBalanceAndHistory(t *testing.T) {
	_, svc, customerID, businessID := seedLedger(t, 8)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Earn(ctx, EarnRequest{CustomerID: customerID, BusinessID: businessID, BillAmount: 100})
		require.NoError(t, err)
	}

	profile, err := svc.GetBalance(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 40.00, profile.BCoinBalance)

	txs, total, err := svc.GetCustomerTransactions(ctx, customerID, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, txs, 3)

	_, err = svc.GetBalance(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
