package booking

import "github.com/shopspring/decimal"

// DefaultEstimatedHours is used when a request leaves the estimate empty.
const DefaultEstimatedHours = 1

// EstimateTotal returns hourlyRate x hours rounded to two decimal places.
func EstimateTotal(hourlyRate, hours float64) float64 {
	total := decimal.NewFromFloat(hourlyRate).Mul(decimal.NewFromFloat(hours)).Round(2)
	f, _ := total.Float64()
	return f
}
