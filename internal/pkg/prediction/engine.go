// Package prediction scores a winner call for a normalized match.
//
// The engine accumulates signed contributions from five independent signals
// (rating gap, win-rate gap, recent form, odds skew, live score). Positive
// values favor player 1. Each triggered signal also adds its weight to a
// running sum used for confidence normalization, and may emit a
// human-readable rationale factor. Evaluation order is fixed: rating,
// win rate, form, odds, live.
package prediction

import (
	"fmt"
	"math"
	"strings"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

const (
	ratingWeight  = 3.0
	winRateWeight = 2.5
	formWeight    = 2.0
	oddsWeight    = 1.5
	liveWeight    = 2.5

	// setDominanceNudge is applied outside the weighted sum when the most
	// recent set's margin exceeds 3 points.
	setDominanceNudge = 0.5

	maxFactors    = 4
	minConfidence = 45
	maxConfidence = 95
)

// Predict computes a fresh prediction for the match. Pure function of its
// input; calling it twice on the same match yields the same result.
func Predict(m models.Match) models.Prediction {
	var score, weightSum float64
	var factors []string

	p1, p2 := m.Player1, m.Player2

	ratingDiff := p1.Rating - p2.Rating
	if abs := intAbs(ratingDiff); abs > 20 {
		score += float64(ratingDiff) / 60 * ratingWeight
		weightSum += ratingWeight
		switch {
		case abs > 80:
			factors = append(factors, fmt.Sprintf("Большое преимущество в рейтинге (%d очков)", abs))
		case abs > 40:
			factors = append(factors, fmt.Sprintf("Преимущество в рейтинге (%d очков)", abs))
		}
	}

	winRateDiff := p1.WinRate - p2.WinRate
	if math.Abs(winRateDiff) > 2 {
		score += winRateDiff / 12 * winRateWeight
		weightSum += winRateWeight
		leader := p1
		if winRateDiff < 0 {
			leader = p2
		}
		factors = append(factors, fmt.Sprintf("Высокий винрейт %s (%.1f%%)", firstName(leader.Name), leader.WinRate))
	}

	wins1, wins2 := countWins(p1.RecentForm), countWins(p2.RecentForm)
	formDiff := wins1 - wins2
	if intAbs(formDiff) >= 1 {
		score += float64(formDiff) * 0.4 * formWeight
		weightSum += formWeight
		switch {
		case wins1 == 5:
			factors = append(factors, fmt.Sprintf("%s на серии из 5 побед", firstName(p1.Name)))
		case wins2 == 5:
			factors = append(factors, fmt.Sprintf("%s на серии из 5 побед", firstName(p2.Name)))
		case intAbs(formDiff) >= 2:
			leader, lw, ow := p1, wins1, wins2
			if formDiff < 0 {
				leader, lw, ow = p2, wins2, wins1
			}
			factors = append(factors, fmt.Sprintf("%s в лучшей форме (%d/5 против %d/5)", firstName(leader.Name), lw, ow))
		}
	}

	if m.Odds.P1Win != m.Odds.P2Win {
		worse := math.Max(m.Odds.P1Win, m.Odds.P2Win)
		better := math.Min(m.Odds.P1Win, m.Odds.P2Win)
		contrib := (worse - better) / worse * 2 * oddsWeight
		favorite := p1
		if m.Odds.P2Win < m.Odds.P1Win {
			favorite = p2
			contrib = -contrib
		}
		score += contrib
		weightSum += oddsWeight
		if worse-better > 0.5 {
			factors = append(factors, fmt.Sprintf("Коэффициенты указывают на %s (%.2f)", firstName(favorite.Name), better))
		}
	}

	if m.Status == models.StatusLive && m.Score != nil {
		scoreDiff := m.Score.P1 - m.Score.P2
		if scoreDiff != 0 {
			score += float64(scoreDiff) * 0.8 * liveWeight
			weightSum += liveWeight
			leader := p1
			if scoreDiff < 0 {
				leader = p2
			}
			factors = append(factors, fmt.Sprintf("%s лидирует (%d:%d)", firstName(leader.Name), m.Score.P1, m.Score.P2))
		}
		// The current set can tip an otherwise even match; this nudge stays
		// outside the weighted sum.
		if n := len(m.Sets); n > 0 {
			last := m.Sets[n-1]
			margin := last.P1 - last.P2
			if intAbs(margin) > 3 {
				leader := p1
				nudge := setDominanceNudge
				if margin < 0 {
					leader = p2
					nudge = -setDominanceNudge
				}
				score += nudge
				factors = append(factors, fmt.Sprintf("%s доминирует в текущем сете", firstName(leader.Name)))
			}
		}
	}

	winner := "p1"
	if score < 0 {
		winner = "p2"
	}

	confidence := 50
	if weightSum > 0 {
		confidence = int(math.Round(50 + math.Abs(score)*4))
	}
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	if len(factors) == 0 {
		factors = []string{"Игроки примерно равны по силам", "Требуется наблюдение за матчем"}
	}
	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}

	return models.Prediction{
		Winner:     winner,
		Confidence: confidence,
		Factors:    factors,
		BetType:    betTypeFor(confidence),
	}
}

func betTypeFor(confidence int) models.BetType {
	switch {
	case confidence >= 75:
		return models.BetStrong
	case confidence >= 65:
		return models.BetMedium
	case confidence >= 55:
		return models.BetRisky
	}
	return models.BetSkip
}

func countWins(form []string) int {
	n := 0
	for _, f := range form {
		if f == "W" {
			n++
		}
	}
	return n
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
