package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

var digestNow = time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

func digestMatch(status models.MatchStatus, confidence int) models.Match {
	return models.Match{
		ID:        "m-" + string(status),
		Player1:   models.Player{Name: "Иванов Д."},
		Player2:   models.Player{Name: "Петров К."},
		StartTime: "2026-08-29T15:00:00Z",
		Status:    status,
		Odds:      models.Odds{P1Win: 1.55, P2Win: 2.35},
		Prediction: &models.Prediction{
			Winner:     "p1",
			Confidence: confidence,
			BetType:    models.BetMedium,
		},
	}
}

func TestConfidenceBar(t *testing.T) {
	tests := []struct {
		confidence int
		want       string
	}{
		{50, "▓▓▓▓▓░░░░░"},
		{80, "▓▓▓▓▓▓▓▓░░"},
		{95, "▓▓▓▓▓▓▓▓▓▓"},
		{45, "▓▓▓▓▓░░░░░"},
	}
	for _, tt := range tests {
		if got := ConfidenceBar(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceBar(%d) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}

func TestPredictionsDigest(t *testing.T) {
	matches := []models.Match{
		digestMatch(models.StatusUpcoming, 68),
		digestMatch(models.StatusLive, 80),
		digestMatch(models.StatusFinished, 90), // must be excluded
	}
	text := PredictionsDigest(matches, digestNow)

	if !strings.Contains(text, "🏓 *TT Predict — Прогнозы*") {
		t.Error("missing header")
	}
	if !strings.Contains(text, "29.08.2026 14:30 UTC") {
		t.Error("missing timestamp")
	}
	if !strings.Contains(text, "🔴 *LIVE*") || !strings.Contains(text, "⏳ *Ожидаемые*") {
		t.Error("missing status blocks")
	}
	if !strings.Contains(text, "*Иванов Д.* vs *Петров К.*") {
		t.Error("missing match line")
	}
	if !strings.Contains(text, "Кф. 1.55") {
		t.Error("missing predicted-side odds")
	}
	if !strings.Contains(text, "💎 Топ-прогнозы (>75%): *1* матчей") {
		t.Errorf("missing high-confidence footer:\n%s", text)
	}
	if strings.Count(text, "vs") != 2 {
		t.Errorf("finished match must not appear, got:\n%s", text)
	}
}

func TestPredictionsDigestEmpty(t *testing.T) {
	text := PredictionsDigest(nil, digestNow)
	if !strings.Contains(text, "_Нет активных прогнозов_") {
		t.Errorf("empty digest must carry the placeholder:\n%s", text)
	}
}

func TestPredictionsDigestLiveCap(t *testing.T) {
	var matches []models.Match
	for i := 0; i < 9; i++ {
		m := digestMatch(models.StatusLive, 70)
		m.ID = m.ID + string(rune('a'+i))
		matches = append(matches, m)
	}
	text := PredictionsDigest(matches, digestNow)
	if got := strings.Count(text, "🔴 `"); got != maxLiveLines {
		t.Errorf("live block has %d lines, want %d", got, maxLiveLines)
	}
}

func TestResultsDigest(t *testing.T) {
	hit := digestMatch(models.StatusFinished, 72)
	hit.Score = &models.Score{P1: 3, P2: 1}
	miss := digestMatch(models.StatusFinished, 61)
	miss.Score = &models.Score{P1: 0, P2: 3}

	text := ResultsDigest([]models.Match{hit, miss}, digestNow)

	if !strings.Contains(text, "🏆 *TT Predict — Результаты*") {
		t.Error("missing header")
	}
	if !strings.Contains(text, "✅") || !strings.Contains(text, "❌") {
		t.Error("missing outcome icons")
	}
	if !strings.Contains(text, "3:1") || !strings.Contains(text, "0:3") {
		t.Error("missing scores")
	}
	if !strings.Contains(text, "📊 Итого: *1/2* (50.0%)") {
		t.Errorf("missing totals footer:\n%s", text)
	}
}

func TestResultsDigestEmpty(t *testing.T) {
	pending := digestMatch(models.StatusFinished, 70) // finished but no score
	text := ResultsDigest([]models.Match{pending}, digestNow)
	if !strings.Contains(text, "_Нет завершённых матчей_") {
		t.Errorf("score-less matches must not count as results:\n%s", text)
	}
}

func TestNotifierNilSafe(t *testing.T) {
	var n *Notifier
	if n.Enabled() {
		t.Error("nil notifier must report disabled")
	}
	if err := n.Send("hello"); err == nil {
		t.Error("nil notifier must fail to send")
	}
}
