package sofascore

import "github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/league"

// EventsResponse is the envelope of both /events/live and
// /scheduled-events/{date}.
type EventsResponse struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID             int64      `json:"id"`
	HomeTeam       Team       `json:"homeTeam"`
	AwayTeam       Team       `json:"awayTeam"`
	Status         Status     `json:"status"`
	StartTimestamp int64      `json:"startTimestamp"`
	HomeScore      EventScore `json:"homeScore"`
	AwayScore      EventScore `json:"awayScore"`
	Tournament     Tournament `json:"tournament"`
}

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Status struct {
	Type string `json:"type"` // "inprogress", "finished", "notstarted", ...
}

// EventScore uses pointers so an absent period can be told apart from a 0:0
// one; a set is kept only when both sides report a value.
type EventScore struct {
	Current *int `json:"current"`
	Period1 *int `json:"period1"`
	Period2 *int `json:"period2"`
	Period3 *int `json:"period3"`
	Period4 *int `json:"period4"`
	Period5 *int `json:"period5"`
	Period6 *int `json:"period6"`
	Period7 *int `json:"period7"`
}

func (s *EventScore) period(i int) *int {
	switch i {
	case 1:
		return s.Period1
	case 2:
		return s.Period2
	case 3:
		return s.Period3
	case 4:
		return s.Period4
	case 5:
		return s.Period5
	case 6:
		return s.Period6
	case 7:
		return s.Period7
	}
	return nil
}

type Tournament struct {
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	UniqueTournament NamedEntry `json:"uniqueTournament"`
	Category         NamedEntry `json:"category"`
}

type NamedEntry struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ClassifierText returns the denormalized lowercase text the league
// classifier operates on.
func (e *Event) ClassifierText() string {
	t := e.Tournament
	return league.BuildText(t.Name, t.Slug, t.UniqueTournament.Name, t.UniqueTournament.Slug, t.Category.Name, t.Category.Slug)
}
