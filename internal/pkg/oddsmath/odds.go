// Package oddsmath converts rating pairs into implied decimal odds.
package oddsmath

import (
	"math"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

const (
	// margin is the bookmaker overround applied on top of the fair price,
	// split evenly between the two outcomes.
	margin = 0.06

	minOdd = 1.05
	maxOdd = 8.0
)

// FromRatings prices a match from two ratings using a logistic (Elo-style)
// win probability. Both prices are rounded to 2 decimals and clamped into
// [1.05, 8.0], so an extreme rating gap still yields a bounded pair.
func FromRatings(r1, r2 int) models.Odds {
	diff := float64(r1 - r2)
	p1 := 1.0 / (1.0 + math.Pow(10, -diff/400))
	return models.Odds{
		P1Win: clamp(round2(1.0 / (p1 + margin/2))),
		P2Win: clamp(round2(1.0 / ((1 - p1) + margin/2))),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v float64) float64 {
	if v < minOdd {
		return minOdd
	}
	if v > maxOdd {
		return maxOdd
	}
	return v
}
