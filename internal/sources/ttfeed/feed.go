// Package ttfeed consumes a delimiter-encoded plain-text score feed.
//
// The feed is a single body where records are separated by '~' and fields
// inside a record by '|', with positional keys:
//
//	EV|<id>|<home>|<away>|<status>|<start_unix>|<home_sets>|<away_sets>|<tournament>[|<a>:<b>...]
//
// Status codes: L = live, F = finished, anything else = scheduled. Trailing
// fields are set scores as "points:points" pairs in period order, at most 7.
// Malformed records are skipped, never fatal.
package ttfeed

import (
	"strconv"
	"strings"
)

const (
	recordSep = "~"
	fieldSep  = "|"

	recordTag = "EV"
	minFields = 9
	maxSets   = 7
)

// Record is one decoded feed entry, still in source terms.
type Record struct {
	ID         string
	Home       string
	Away       string
	Status     string // "L", "F" or scheduled
	StartUnix  int64
	HomeScore  int
	AwayScore  int
	Tournament string
	Sets       [][2]int
}

// ParseFeed decodes every well-formed record in the body and counts the
// malformed ones.
func ParseFeed(body string) (records []Record, malformed int) {
	for _, raw := range strings.Split(body, recordSep) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		rec, ok := parseRecord(raw)
		if !ok {
			malformed++
			continue
		}
		records = append(records, rec)
	}
	return records, malformed
}

func parseRecord(raw string) (Record, bool) {
	fields := strings.Split(raw, fieldSep)
	if len(fields) < minFields || fields[0] != recordTag {
		return Record{}, false
	}

	startUnix, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Record{}, false
	}
	homeScore, err := strconv.Atoi(fields[6])
	if err != nil {
		return Record{}, false
	}
	awayScore, err := strconv.Atoi(fields[7])
	if err != nil {
		return Record{}, false
	}

	rec := Record{
		ID:         fields[1],
		Home:       fields[2],
		Away:       fields[3],
		Status:     fields[4],
		StartUnix:  startUnix,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Tournament: fields[8],
	}

	for _, token := range fields[minFields:] {
		if len(rec.Sets) == maxSets {
			break
		}
		parts := strings.Split(token, ":")
		if len(parts) != 2 {
			continue
		}
		a, errA := strconv.Atoi(parts[0])
		b, errB := strconv.Atoi(parts[1])
		if errA != nil || errB != nil {
			continue
		}
		rec.Sets = append(rec.Sets, [2]int{a, b})
	}

	return rec, true
}
