package rating

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/services/ledger"
)

type fakeRatingRepo struct {
	ratings []models.Rating
}

func (f *fakeRatingRepo) GetByCustomerAndBusiness(customerID, businessID uuid.UUID) (*models.Rating, error) {
	for i := range f.ratings {
		if f.ratings[i].CustomerID == customerID && f.ratings[i].BusinessID == businessID {
			return &f.ratings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.Rating, int64, error) {
	var out []models.Rating
	for _, r := range f.ratings {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	total := int64(len(out))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeRatingRepo) StatsForBusiness(businessID uuid.UUID) (*repositories.RatingStats, error) {
	var sum, n int64
	for _, r := range f.ratings {
		if r.BusinessID == businessID {
			sum += int64(r.Stars)
			n++
		}
	}
	stats := &repositories.RatingStats{Count: n}
	if n > 0 {
		stats.Average = float64(sum) / float64(n)
	}
	return stats, nil
}

// bonusRecorder satisfies ledger.Service; only RatingBonus is driven
// by the rating service.
type bonusRecorder struct {
	ledger.Service
	calls []ledger.RatingBonusRequest
}

func (b *bonusRecorder) RatingBonus(ctx context.Context, req ledger.RatingBonusRequest) (*ledger.RatingResult, error) {
	b.calls = append(b.calls, req)
	rating := &models.Rating{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		CustomerID:  req.CustomerID,
		BusinessID:  req.BusinessID,
		Stars:       req.Stars,
		Comment:     req.Comment,
		BonusAmount: models.BonusFor(req.Stars),
	}
	return &ledger.RatingResult{
		Rating:  rating,
		Balance: rating.BonusAmount,
	}, nil
}

func TestCreateDelegatesToLedger(t *testing.T) {
	recorder := &bonusRecorder{}
	svc := NewService(&fakeRatingRepo{}, recorder)

	req := CreateRequest{
		CustomerID: uuid.New(),
		BusinessID: uuid.New(),
		Stars:      5,
		Comment:    "great chai",
	}
	res, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, req.CustomerID, recorder.calls[0].CustomerID)
	assert.Equal(t, 5, recorder.calls[0].Stars)
	assert.Equal(t, 10.00, res.Rating.BonusAmount)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"zero stars", CreateRequest{CustomerID: uuid.New(), BusinessID: uuid.New(), Stars: 0}},
		{"six stars", CreateRequest{CustomerID: uuid.New(), BusinessID: uuid.New(), Stars: 6}},
		{"comment too long", CreateRequest{
			CustomerID: uuid.New(),
			BusinessID: uuid.New(),
			Stars:      4,
			Comment:    strings.Repeat("x", 501),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &bonusRecorder{}
			svc := NewService(&fakeRatingRepo{}, recorder)

			_, err := svc.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.Empty(t, recorder.calls, "invalid input must never reach the ledger")
		})
	}
}

func TestListForBusinessClampsLimit(t *testing.T) {
	businessID := uuid.New()
	repo := &fakeRatingRepo{}
	for i := 0; i < 30; i++ {
		repo.ratings = append(repo.ratings, models.Rating{
			BaseModel:  models.BaseModel{ID: uuid.New()},
			CustomerID: uuid.New(),
			BusinessID: businessID,
			Stars:      4,
		})
	}
	svc := NewService(repo, &bonusRecorder{})

	got, total, err := svc.ListForBusiness(context.Background(), businessID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
	assert.Len(t, got, 20, "zero limit falls back to the default page size")
}

func TestStatsForBusiness(t *testing.T) {
	businessID := uuid.New()
	repo := &fakeRatingRepo{ratings: []models.Rating{
		{BusinessID: businessID, Stars: 5},
		{BusinessID: businessID, Stars: 4},
		{BusinessID: businessID, Stars: 3},
		{BusinessID: uuid.New(), Stars: 1},
	}}
	svc := NewService(repo, &bonusRecorder{})

	stats, err := svc.StatsForBusiness(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.InDelta(t, 4.0, stats.Average, 1e-9)
}
