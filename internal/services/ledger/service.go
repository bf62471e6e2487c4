package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainerrors "baartal/internal/errors"
	"baartal/internal/logger"
	"baartal/internal/models"
	"baartal/internal/repositories"
)

type service struct {
	repo    repositories.LedgerRepository
	metrics MetricsCollector
	log     *zap.Logger
}

// NewService creates the ledger service. metrics may be nil.
func NewService(repo repositories.LedgerRepository, metrics MetricsCollector) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		metrics: metrics,
		log:     logger.Get().Named("ledger"),
	}
}

func (s *service) Earn(ctx context.Context, req EarnRequest) (*Result, error) {
	if req.BillAmount <= 0 {
		return nil, ErrInvalidAmount.WithMessage("bill amount must be greater than zero")
	}
	req.BillAmount = Round2(req.BillAmount)

	var result Result
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		replayed, err := s.findReplay(tx, req.IdempotencyKey, req.CustomerID, &result)
		if err != nil || replayed {
			return err
		}

		// Lock order: customer profile, then business.
		profile, err := tx.GetProfileForUpdate(req.CustomerID)
		if err != nil {
			return err
		}
		business, err := tx.GetBusinessForUpdate(req.BusinessID)
		if err != nil {
			return err
		}
		if !business.IsActive {
			return ErrBusinessInactive
		}

		coins := CoinsFor(req.BillAmount, business.BCoinRate)
		if coins <= 0 {
			return ErrInvalidAmount.WithMessage("bill amount too small to earn B-Coins at this rate")
		}

		// First-visit check runs before the new row lands.
		visited, err := tx.HasCustomerTransactions(req.CustomerID, req.BusinessID)
		if err != nil {
			return err
		}

		description := req.Description
		if description == "" {
			description = fmt.Sprintf("Purchase at %s", business.BusinessName)
		}
		bill := req.BillAmount
		txn := &models.BCoinTransaction{
			CustomerID:     req.CustomerID,
			BusinessID:     req.BusinessID,
			Type:           models.TransactionTypeEarned,
			Amount:         coins,
			BillAmount:     &bill,
			Description:    description,
			QRCodeID:       req.QRCodeID,
			IdempotencyKey: optionalKey(req.IdempotencyKey),
			Metadata:       models.NewJSON(map[string]interface{}{"bCoinRate": business.BCoinRate}),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		oldBalance := profile.BCoinBalance
		profile.BCoinBalance = Round2(profile.BCoinBalance + coins)
		profile.TotalBCoinsEarned = Round2(profile.TotalBCoinsEarned + coins)
		if err := tx.SaveProfile(profile); err != nil {
			return err
		}

		business.TotalBCoinsIssued = Round2(business.TotalBCoinsIssued + coins)
		if !visited {
			business.TotalCustomers++
		}
		if err := tx.SaveBusiness(business); err != nil {
			return err
		}

		if err := tx.CreateNotification(earnNotification(profile.UserID, business.BusinessName, coins)); err != nil {
			return err
		}

		s.metrics.RecordBalanceChange(oldBalance, profile.BCoinBalance)
		result = Result{Transaction: txn, Balance: profile.BCoinBalance}
		return nil
	})
	if err != nil {
		if replay := s.replayAfterRace(err, req.IdempotencyKey, req.CustomerID); replay != nil {
			return replay, nil
		}
		s.metrics.RecordError("earn", errType(err))
		return nil, err
	}

	if !result.Replayed {
		s.metrics.RecordTransaction(models.TransactionTypeEarned, result.Transaction.Amount)
		s.log.Info("coins earned",
			zap.String("customer_id", req.CustomerID.String()),
			zap.String("business_id", req.BusinessID.String()),
			zap.Float64("amount", result.Transaction.Amount),
		)
	}
	return &result, nil
}

func (s *service) Redeem(ctx context.Context, req RedeemRequest) (*Result, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	req.Amount = Round2(req.Amount)

	var result Result
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		replayed, err := s.findReplay(tx, req.IdempotencyKey, req.CustomerID, &result)
		if err != nil || replayed {
			return err
		}

		profile, err := tx.GetProfileForUpdate(req.CustomerID)
		if err != nil {
			return err
		}
		// Authoritative check under the lock. Nothing is applied when
		// the balance does not cover the amount.
		if profile.BCoinBalance < req.Amount {
			return ErrInsufficientBalance
		}

		business, err := tx.GetBusinessForUpdate(req.BusinessID)
		if err != nil {
			return err
		}
		if !business.IsActive {
			return ErrBusinessInactive
		}

		description := req.Description
		if description == "" {
			description = fmt.Sprintf("Redemption at %s", business.BusinessName)
		}
		txn := &models.BCoinTransaction{
			CustomerID:     req.CustomerID,
			BusinessID:     req.BusinessID,
			Type:           models.TransactionTypeRedeemed,
			Amount:         req.Amount,
			Description:    description,
			IdempotencyKey: optionalKey(req.IdempotencyKey),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		oldBalance := profile.BCoinBalance
		profile.BCoinBalance = Round2(profile.BCoinBalance - req.Amount)
		profile.TotalBCoinsSpent = Round2(profile.TotalBCoinsSpent + req.Amount)
		if err := tx.SaveProfile(profile); err != nil {
			return err
		}

		business.TotalBCoinsRedeemed = Round2(business.TotalBCoinsRedeemed + req.Amount)
		if err := tx.SaveBusiness(business); err != nil {
			return err
		}

		if err := tx.CreateNotification(redeemNotification(profile.UserID, business.BusinessName, req.Amount)); err != nil {
			return err
		}

		s.metrics.RecordBalanceChange(oldBalance, profile.BCoinBalance)
		result = Result{Transaction: txn, Balance: profile.BCoinBalance}
		return nil
	})
	if err != nil {
		if replay := s.replayAfterRace(err, req.IdempotencyKey, req.CustomerID); replay != nil {
			return replay, nil
		}
		s.metrics.RecordError("redeem", errType(err))
		return nil, err
	}

	if !result.Replayed {
		s.metrics.RecordTransaction(models.TransactionTypeRedeemed, result.Transaction.Amount)
		s.log.Info("coins redeemed",
			zap.String("customer_id", req.CustomerID.String()),
			zap.String("business_id", req.BusinessID.String()),
			zap.Float64("amount", result.Transaction.Amount),
		)
	}
	return &result, nil
}

func (s *service) RatingBonus(ctx context.Context, req RatingBonusRequest) (*RatingResult, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, domainerrors.Validation("stars must be between 1 and 5")
	}
	bonus := models.BonusFor(req.Stars)

	var result RatingResult
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		rating := &models.Rating{
			CustomerID:  req.CustomerID,
			BusinessID:  req.BusinessID,
			Stars:       req.Stars,
			Comment:     req.Comment,
			BonusAmount: bonus,
		}
		if err := tx.CreateRating(rating); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRated
			}
			return err
		}

		profile, err := tx.GetProfileForUpdate(req.CustomerID)
		if err != nil {
			return err
		}
		business, err := tx.GetBusinessForUpdate(req.BusinessID)
		if err != nil {
			return err
		}

		visited, err := tx.HasCustomerTransactions(req.CustomerID, req.BusinessID)
		if err != nil {
			return err
		}

		key := "rating-bonus:" + rating.ID.String()
		txn := &models.BCoinTransaction{
			CustomerID:     req.CustomerID,
			BusinessID:     req.BusinessID,
			Type:           models.TransactionTypeEarned,
			Amount:         bonus,
			Description:    fmt.Sprintf("Rating bonus from %s", business.BusinessName),
			IdempotencyKey: &key,
			Metadata: models.NewJSON(map[string]interface{}{
				"stars":    req.Stars,
				"ratingId": rating.ID.String(),
			}),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		oldBalance := profile.BCoinBalance
		profile.BCoinBalance = Round2(profile.BCoinBalance + bonus)
		profile.TotalBCoinsEarned = Round2(profile.TotalBCoinsEarned + bonus)
		if err := tx.SaveProfile(profile); err != nil {
			return err
		}

		business.TotalBCoinsIssued = Round2(business.TotalBCoinsIssued + bonus)
		if !visited {
			business.TotalCustomers++
		}
		if err := tx.SaveBusiness(business); err != nil {
			return err
		}

		if err := tx.CreateNotification(bonusNotification(profile.UserID, business.BusinessName, bonus)); err != nil {
			return err
		}

		s.metrics.RecordBalanceChange(oldBalance, profile.BCoinBalance)
		result = RatingResult{Rating: rating, Transaction: txn, Balance: profile.BCoinBalance}
		return nil
	})
	if err != nil {
		s.metrics.RecordError("rating_bonus", errType(err))
		return nil, err
	}

	s.metrics.RecordTransaction(models.TransactionTypeEarned, result.Transaction.Amount)
	s.log.Info("rating bonus credited",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("business_id", req.BusinessID.String()),
		zap.Int("stars", req.Stars),
		zap.Float64("bonus", bonus),
	)
	return &result, nil
}

func (s *service) GetBalance(ctx context.Context, customerID uuid.UUID) (*models.CustomerProfile, error) {
	return s.repo.GetProfile(customerID)
}

func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (*models.BCoinTransaction, error) {
	return s.repo.GetTransactionByID(id)
}

func (s *service) GetCustomerTransactions(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	return s.repo.ListCustomerTransactions(ctx, customerID, limit, offset)
}

func (s *service) GetBusinessTransactions(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	return s.repo.ListBusinessTransactions(ctx, businessID, limit, offset)
}

// findReplay resolves an idempotency key inside the transaction. When
// the key is already stored the caller gets the original transaction
// and the current balance, with no mutation.
func (s *service) findReplay(tx repositories.LedgerRepository, key string, customerID uuid.UUID, result *Result) (bool, error) {
	if key == "" {
		return false, nil
	}
	existing, err := tx.GetTransactionByIdempotencyKey(key)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			return false, nil
		}
		return false, err
	}
	profile, err := tx.GetProfile(customerID)
	if err != nil {
		return false, err
	}
	*result = Result{Transaction: existing, Balance: profile.BCoinBalance, Replayed: true}
	return true, nil
}

// replayAfterRace handles two concurrent requests carrying the same
// idempotency key: the loser's insert hits the unique index, rolls
// back, and resolves to the winner's transaction.
func (s *service) replayAfterRace(err error, key string, customerID uuid.UUID) *Result {
	if key == "" || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	existing, lookupErr := s.repo.GetTransactionByIdempotencyKey(key)
	if lookupErr != nil {
		return nil
	}
	result := Result{Transaction: existing, Replayed: true}
	if profile, profileErr := s.repo.GetProfile(customerID); profileErr == nil {
		result.Balance = profile.BCoinBalance
	}
	return &result
}

func optionalKey(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}

func errType(err error) string {
	var de *domainerrors.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "internal"
}

func earnNotification(userID uuid.UUID, businessName string, coins float64) *models.Notification {
	return &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeEarned,
		Title:   "B-Coins earned",
		Message: fmt.Sprintf("You earned %.2f B-Coins at %s", coins, businessName),
	}
}

func redeemNotification(userID uuid.UUID, businessName string, coins float64) *models.Notification {
	return &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeRedeemed,
		Title:   "B-Coins redeemed",
		Message: fmt.Sprintf("You redeemed %.2f B-Coins at %s", coins, businessName),
	}
}

func bonusNotification(userID uuid.UUID, businessName string, bonus float64) *models.Notification {
	return &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeRating,
		Title:   "Rating bonus",
		Message: fmt.Sprintf("You earned %.2f bonus B-Coins for rating %s", bonus, businessName),
	}
}
