package apisports

import (
	"strconv"
	"time"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/oddsmath"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources"
)

// GameToMatch normalizes one API-Sports game into the canonical match shape.
func GameToMatch(g *Game) (models.Match, sources.SkipReason) {
	p1Name, p2Name := g.Teams.Home.Name, g.Teams.Away.Name
	if p1Name == "" || p2Name == "" {
		return models.Match{}, sources.SkipMissingPlayers
	}

	var status models.MatchStatus
	switch g.Status.Short {
	case "LIVE", "inprogress":
		status = models.StatusLive
	case "FT", "finished":
		status = models.StatusFinished
	default:
		status = models.StatusUpcoming
	}

	p1 := sources.BuildPlayer(teamID(g.Teams.Home), p1Name)
	p2 := sources.BuildPlayer(teamID(g.Teams.Away), p2Name)

	m := models.Match{
		ID:        strconv.FormatInt(g.ID, 10),
		Player1:   p1,
		Player2:   p2,
		StartTime: startTime(g.Date),
		Status:    status,
		Odds:      oddsmath.FromRatings(p1.Rating, p2.Rating),
		League:    league.Classify(league.BuildText(g.League.Name), g.League.Name),
	}

	if status != models.StatusUpcoming && (g.Scores.Home > 0 || g.Scores.Away > 0) {
		m.Score = &models.Score{P1: g.Scores.Home, P2: g.Scores.Away}
	}

	return m, sources.SkipNone
}

// ClassifierText returns the text the scope filter operates on.
func ClassifierText(g *Game) string {
	return league.BuildText(g.League.Name)
}

func startTime(date string) string {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func teamID(t Team) string {
	if t.ID == 0 {
		return ""
	}
	return strconv.FormatInt(t.ID, 10)
}
