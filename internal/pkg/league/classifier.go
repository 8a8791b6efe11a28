// Package league filters and labels tournaments by keyword matching.
//
// The service only targets "liga pro" style short-format competitions; every
// other table-tennis event is out of scope. Both the scope filter and the
// label mapping operate on one denormalized lowercase string built from the
// tournament name, slug, parent tournament and category.
package league

import "strings"

// DefaultLabel is used when no keyword matches and the upstream tournament
// name is empty.
const DefaultLabel = "Table Tennis"

// scopeKeywords marks an event as in scope when any of them occurs as a
// substring of the denormalized text.
var scopeKeywords = []string{
	"liga pro", "ligapro",
	"setka",
	"tt cup", "ttcup",
	"masters", "мастерс",
	"elite",
	"win cup", "wincup",
	"challenge",
	"russia", "россия",
	"minsk", "минск",
	"belarus", "беларусь",
}

type rule struct {
	keyword string
	label   string
	// exclude suppresses the rule when any of these tokens is also present.
	// Used to keep Minsk events out of the Russia bucket.
	exclude []string
}

var belarusTokens = []string{"minsk", "минск", "belarus", "беларусь"}

// classifyRules is an ordered association list: the first matching rule wins,
// so declaration order is part of the contract.
var classifyRules = []rule{
	{keyword: "минск", label: "Мастерс Минск"},
	{keyword: "minsk", label: "Мастерс Минск"},
	{keyword: "беларусь", label: "Мастерс Минск"},
	{keyword: "belarus", label: "Мастерс Минск"},
	{keyword: "россия", label: "Лига Про Россия", exclude: belarusTokens},
	{keyword: "russia", label: "Лига Про Россия", exclude: belarusTokens},
	{keyword: "liga pro", label: "Лига Про"},
	{keyword: "setka", label: "Сетка Кап"},
	{keyword: "мастерс", label: "Мастерс"},
	{keyword: "masters", label: "Мастерс"},
	{keyword: "tt cup", label: "TT Cup"},
	{keyword: "elite", label: "Elite Series"},
	{keyword: "win cup", label: "Win Cup"},
	{keyword: "challenge", label: "Challenge"},
}

// BuildText joins the non-empty tournament metadata parts into the lowercase
// string both IsInScope and Classify operate on.
func BuildText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// IsInScope reports whether the event belongs to the targeted league-pro
// subset.
func IsInScope(text string) bool {
	for _, kw := range scopeKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Classify maps the denormalized text to a display label. The first matching
// rule wins; with no match the raw tournament name is used, and DefaultLabel
// when that too is empty.
func Classify(text, tournamentName string) string {
	for _, r := range classifyRules {
		if !strings.Contains(text, r.keyword) {
			continue
		}
		excluded := false
		for _, ex := range r.exclude {
			if strings.Contains(text, ex) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		return r.label
	}
	if tournamentName != "" {
		return tournamentName
	}
	return DefaultLabel
}
