// Package stats derives health and spending analytics from a customer's
// order history.  The computation is a pure fold over order-item
// snapshots that have already been fetched, so recomputing over the same
// rows always yields identical results.
package stats

import "math"

// Recommendation messages keyed off the spend split.  The junk threshold
// is checked first, then the healthy one; anything in between gets the
// neutral message.
const (
	RecommendationCutBack  = "Over 60% of your spending went to unhealthy food. Try swapping a few orders for healthier options."
	RecommendationKeepItUp = "Great job! Most of your spending went to healthy food. Keep it up."
	RecommendationNeutral  = "Your spending is balanced between healthy and other food."
)

const thresholdPercent = 60.0

// Line is one order-item snapshot as it entered the order: unit price,
// quantity, calories per unit and the health flag at order time.
type Line struct {
	PriceCents int64
	Quantity   uint32
	Calories   uint32
	IsHealthy  bool
}

// Summary aggregates a set of lines.  Percentages are expressed with one
// decimal place; both are zero when nothing was spent.
type Summary struct {
	TotalCalories     int64   `json:"total_calories"`
	TotalSpentCents   int64   `json:"total_spent_cents"`
	HealthySpentCents int64   `json:"healthy_spent_cents"`
	JunkSpentCents    int64   `json:"junk_spent_cents"`
	HealthyItems      int     `json:"healthy_items"`
	JunkItems         int     `json:"junk_items"`
	HealthyPercent    float64 `json:"healthy_percent"`
	JunkPercent       float64 `json:"junk_percent"`
	Recommendation    string  `json:"recommendation"`
}

// Compute folds the lines into a Summary.  The junk percentage is derived
// as 100 minus the rounded healthy percentage so the two always sum to
// exactly 100.0 whenever total spend is non-zero.
func Compute(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		qty := int64(l.Quantity)
		spend := l.PriceCents * qty
		s.TotalCalories += int64(l.Calories) * qty
		s.TotalSpentCents += spend
		if l.IsHealthy {
			s.HealthySpentCents += spend
			s.HealthyItems += int(l.Quantity)
		} else {
			s.JunkSpentCents += spend
			s.JunkItems += int(l.Quantity)
		}
	}
	if s.TotalSpentCents > 0 {
		s.HealthyPercent = round1(float64(s.HealthySpentCents) * 100 / float64(s.TotalSpentCents))
		s.JunkPercent = round1(100 - s.HealthyPercent)
	}
	switch {
	case s.JunkPercent > thresholdPercent:
		s.Recommendation = RecommendationCutBack
	case s.HealthyPercent > thresholdPercent:
		s.Recommendation = RecommendationKeepItUp
	default:
		s.Recommendation = RecommendationNeutral
	}
	return s
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
