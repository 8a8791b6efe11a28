// Package identity derives stable synthetic player attributes from names.
//
// There is no real historical data for the niche leagues this service
// targets, so ratings, win rates and recent form are fabricated
// deterministically from a digest of the player name. The same name always
// produces the same profile, across processes and restarts.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
)

const (
	ratingBase   = 1700
	ratingSpread = 300
	formLength   = 5
)

// Hash returns the hex digest of a player name. Total over any string,
// including the empty one; collision resistance is irrelevant here, only
// determinism matters.
func Hash(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])
}

// Rating maps a name to an integer rating in [1700, 2000).
func Rating(name string) int {
	h := Hash(name)
	var v int
	for _, c := range h[:6] {
		v = v*16 + hexVal(byte(c))
	}
	return ratingBase + v%ratingSpread
}

// WinRate maps a rating to a win percentage in [50.0, 80.0], one decimal.
func WinRate(rating int) float64 {
	wr := 50 + float64(rating-ratingBase)/float64(ratingSpread)*30
	return math.Round(wr*10) / 10
}

// RecentForm maps a name to 5 win/loss outcomes. Each of the first five hex
// digits of the digest yields "W" when its value exceeds 5, most significant
// digit first.
func RecentForm(name string) []string {
	h := Hash(name)
	form := make([]string, 0, formLength)
	for i := 0; i < formLength; i++ {
		if hexVal(h[i]) > 5 {
			form = append(form, "W")
		} else {
			form = append(form, "L")
		}
	}
	return form
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return 0
}
