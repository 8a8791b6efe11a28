// Package telegram formats and sends match digests to a Telegram chat.
package telegram

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

const (
	maxLiveLines     = 5
	maxUpcomingLines = 8
)

// ConfidenceBar renders a 10-cell progress bar for a confidence percentage.
func ConfidenceBar(confidence int) string {
	filled := int(math.Round(float64(confidence) / 10))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}

// PredictionsDigest builds the Markdown digest of live and upcoming
// predictions, strongest first.
func PredictionsDigest(matches []models.Match, now time.Time) string {
	var active []models.Match
	for _, m := range matches {
		if (m.Status == models.StatusLive || m.Status == models.StatusUpcoming) && m.Prediction != nil {
			active = append(active, m)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Prediction.Confidence > active[j].Prediction.Confidence
	})

	lines := []string{
		"🏓 *TT Predict — Прогнозы*",
		fmt.Sprintf("📅 %s UTC", now.UTC().Format("02.01.2006 15:04")),
		"",
	}

	if len(active) == 0 {
		lines = append(lines, "_Нет активных прогнозов_")
		return strings.Join(lines, "\n")
	}

	var live, soon []models.Match
	for _, m := range active {
		if m.Status == models.StatusLive {
			live = append(live, m)
		} else {
			soon = append(soon, m)
		}
	}

	if len(live) > 0 {
		lines = append(lines, "🔴 *LIVE*")
		for _, m := range capMatches(live, maxLiveLines) {
			lines = append(lines, formatPrediction(m))
		}
		lines = append(lines, "")
	}

	if len(soon) > 0 {
		lines = append(lines, "⏳ *Ожидаемые*")
		for _, m := range capMatches(soon, maxUpcomingLines) {
			lines = append(lines, formatPrediction(m))
		}
	}

	highConf := 0
	for _, m := range active {
		if m.Prediction.Confidence >= 75 {
			highConf++
		}
	}
	if highConf > 0 {
		lines = append(lines, "", fmt.Sprintf("💎 Топ-прогнозы (>75%%): *%d* матчей", highConf))
	}

	return strings.Join(lines, "\n")
}

// ResultsDigest builds the Markdown recap of finished matches with a
// correct/total footer.
func ResultsDigest(matches []models.Match, now time.Time) string {
	var finished []models.Match
	for _, m := range matches {
		if m.Status == models.StatusFinished && m.Prediction != nil && m.Score != nil {
			finished = append(finished, m)
		}
	}

	lines := []string{
		"🏆 *TT Predict — Результаты*",
		fmt.Sprintf("📅 %s UTC", now.UTC().Format("02.01.2006 15:04")),
		"",
	}

	if len(finished) == 0 {
		lines = append(lines, "_Нет завершённых матчей_")
		return strings.Join(lines, "\n")
	}

	correct := 0
	for _, m := range finished {
		predictedP1 := m.Prediction.Winner == "p1"
		p1Won := m.Score.P1 > m.Score.P2
		isCorrect := predictedP1 == p1Won
		if isCorrect {
			correct++
		}

		icon := "❌"
		if isCorrect {
			icon = "✅"
		}
		winnerName := m.Player2.Name
		if predictedP1 {
			winnerName = m.Player1.Name
		}

		lines = append(lines, fmt.Sprintf(
			"%s *%s* vs *%s* — %d:%d\n   Прогноз: %s (%d%%)",
			icon, m.Player1.Name, m.Player2.Name, m.Score.P1, m.Score.P2,
			winnerName, m.Prediction.Confidence,
		))
	}

	winrate := math.Round(float64(correct)/float64(len(finished))*1000) / 10
	lines = append(lines, "", fmt.Sprintf("📊 Итого: *%d/%d* (%.1f%%)", correct, len(finished), winrate))

	return strings.Join(lines, "\n")
}

func formatPrediction(m models.Match) string {
	p := m.Prediction
	winnerName, odds := m.Player1.Name, m.Odds.P1Win
	if p.Winner == "p2" {
		winnerName, odds = m.Player2.Name, m.Odds.P2Win
	}

	statusIcon := "⏰"
	if m.Status == models.StatusLive {
		statusIcon = "🔴"
	}

	timeStr := ""
	if t, err := time.Parse(time.RFC3339, m.StartTime); err == nil {
		timeStr = t.UTC().Format("15:04")
	}

	confEmoji := "⚪"
	switch {
	case p.Confidence >= 75:
		confEmoji = "🟢"
	case p.Confidence >= 60:
		confEmoji = "🟡"
	}

	return fmt.Sprintf(
		"%s `%s` *%s* vs *%s*\n   %s Прогноз: *%s* — %d%% | Кф. %.2f\n   `%s`",
		statusIcon, timeStr, m.Player1.Name, m.Player2.Name,
		confEmoji, winnerName, p.Confidence, odds,
		ConfidenceBar(p.Confidence),
	)
}

func capMatches(matches []models.Match, limit int) []models.Match {
	if len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
