package oddsmath

import (
	"math"
	"testing"
)

func TestFromRatingsBounds(t *testing.T) {
	pairs := [][2]int{
		{1700, 1700},
		{1700, 1999},
		{1999, 1700},
		{1700, 5000},
		{5000, 1700},
		{0, 0},
	}
	for _, p := range pairs {
		odds := FromRatings(p[0], p[1])
		for _, v := range []float64{odds.P1Win, odds.P2Win} {
			if v < 1.05 || v > 8.0 {
				t.Errorf("FromRatings(%d, %d) produced %v, want in [1.05, 8.0]", p[0], p[1], v)
			}
		}
	}
}

func TestFromRatingsEqual(t *testing.T) {
	odds := FromRatings(1850, 1850)
	if odds.P1Win != odds.P2Win {
		t.Errorf("equal ratings priced unevenly: %v vs %v", odds.P1Win, odds.P2Win)
	}
	// 1/(0.5+0.03) = 1.8867..., rounded to 1.89
	if math.Abs(odds.P1Win-1.89) > 0.001 {
		t.Errorf("equal ratings price = %v, want 1.89", odds.P1Win)
	}
}

func TestFromRatingsFavoriteIsCheaper(t *testing.T) {
	odds := FromRatings(1950, 1750)
	if odds.P1Win >= odds.P2Win {
		t.Errorf("higher-rated player should have the lower price: %v vs %v", odds.P1Win, odds.P2Win)
	}
}
