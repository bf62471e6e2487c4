/*
Package ledger is the accrual and redemption engine. Every B-Coin
balance mutation in the system flows through this service.

Operations:
  - Earn: credit coins for a purchase, coins = bill x rate / 100
    rounded to two decimals
  - Redeem: debit coins at a partner business, rejected when the
    balance does not cover the amount
  - RatingBonus: create a rating and credit its bonus atomically

Every mutation runs inside a single database transaction holding a
row lock on the customer profile, so concurrent operations against one
customer serialize and the invariant

	BCoinBalance == TotalBCoinsEarned - TotalBCoinsSpent

holds at every commit. Requests may carry an idempotency key; a replay
returns the stored transaction without touching balances.

Usage:

	svc := ledger.NewService(repo, nil)

	res, err := svc.Earn(ctx, ledger.EarnRequest{
	    CustomerID: customerID,
	    BusinessID: businessID,
	    BillAmount: 1000,
	})
*/
package ledger
