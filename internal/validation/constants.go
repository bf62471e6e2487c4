package validation

const (
	// Bill and redemption amount bounds.
	MinBillAmount   = 0.01
	MaxBillAmount   = 1000000.00
	MinRedeemAmount = 0.01

	// Password requirements. 72 is the bcrypt input ceiling.
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths.
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxCommentLength     = 500
)
