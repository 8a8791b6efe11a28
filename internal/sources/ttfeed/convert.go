package ttfeed

import (
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/oddsmath"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

// RecordToMatch normalizes one decoded feed record into the canonical match
// shape.
func RecordToMatch(rec *Record) (models.Match, sources.SkipReason) {
	if rec.Home == "" || rec.Away == "" {
		return models.Match{}, sources.SkipMissingPlayers
	}

	var status models.MatchStatus
	switch rec.Status {
	case "L":
		status = models.StatusLive
	case "F":
		status = models.StatusFinished
	default:
		status = models.StatusUpcoming
	}

	// The feed has no participant ids, so names double as ids.
	p1 := sources.BuildPlayer("", rec.Home)
	p2 := sources.BuildPlayer("", rec.Away)

	m := models.Match{
		ID:        rec.ID,
		Player1:   p1,
		Player2:   p2,
		StartTime: sources.StartTime(rec.StartUnix),
		Status:    status,
		Odds:      oddsmath.FromRatings(p1.Rating, p2.Rating),
		League:    league.Classify(ClassifierText(rec), rec.Tournament),
	}

	if status != models.StatusUpcoming {
		m.Score = &models.Score{P1: rec.HomeScore, P2: rec.AwayScore}
		for _, s := range rec.Sets {
			m.Sets = append(m.Sets, models.SetScore{P1: s[0], P2: s[1]})
		}
	}

	return m, sources.SkipNone
}

// ClassifierText returns the text the scope filter operates on.
func ClassifierText(rec *Record) string {
	return league.BuildText(rec.Tournament)
}
