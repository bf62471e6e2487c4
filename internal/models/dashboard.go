package models

// CustomerDashboard aggregates a customer's ledger position for the
// dashboard endpoint.
type CustomerDashboard struct {
	BCoinBalance       float64            `json:"bCoinBalance"`
	TotalBCoinsEarned  float64            `json:"totalBCoinsEarned"`
	TotalBCoinsSpent   float64            `json:"totalBCoinsSpent"`
	RecentTransactions []BCoinTransaction `json:"recentTransactions"`
	FavoriteBusinesses []Business         `json:"favoriteBusinesses"`
}

// BusinessDashboard aggregates a business's loyalty activity.
type BusinessDashboard struct {
	TotalBCoinsIssued   float64            `json:"totalBCoinsIssued"`
	TotalBCoinsRedeemed float64            `json:"totalBCoinsRedeemed"`
	TotalCustomers      int                `json:"totalCustomers"`
	ActiveQRCodes       int                `json:"activeQRCodes"`
	AverageRating       float64            `json:"averageRating"`
	RatingCount         int                `json:"ratingCount"`
	RecentTransactions  []BCoinTransaction `json:"recentTransactions"`
}
