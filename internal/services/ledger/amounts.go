package ledger

import "math"

// Round2 rounds to two decimal places, half away from zero. All
// stored B-Coin amounts pass through this.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CoinsFor computes the coins earned on a bill at a percent rate.
// A 1000 bill at 8 percent earns 80.00.
func CoinsFor(billAmount, rate float64) float64 {
	return Round2(billAmount * rate / 100)
}
