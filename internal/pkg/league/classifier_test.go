package league

import "testing"

func TestIsInScope(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"liga pro moscow", true},
		{"setka cup women", true},
		{"tt cup ukraine", true},
		{"masters minsk", true},
		{"tt elite series poland", true},
		{"win cup kyiv", true},
		{"challenge series", true},
		{"россия лига про", true},
		{"беларусь минск", true},
		{"world championship finals", false},
		{"olympic qualification", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsInScope(tt.text); got != tt.want {
			t.Errorf("IsInScope(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		// Keyword priority: setka must beat the generic fallback even with
		// extra geography words present.
		{"setka cup moscow", "Сетка Кап"},
		{"liga pro russia", "Лига Про Россия"},
		{"liga pro league", "Лига Про"},
		{"masters minsk", "Мастерс Минск"},
		{"tt cup", "TT Cup"},
		{"tt elite series", "Elite Series"},
		{"win cup", "Win Cup"},
		{"challenge", "Challenge"},
	}
	for _, tt := range tests {
		if got := Classify(tt.text, ""); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestClassifyMinskExcludedFromRussia(t *testing.T) {
	// A Minsk tournament mentioning Russia in its category must not land in
	// the Russia bucket.
	got := Classify("russia liga pro masters minsk", "")
	if got != "Мастерс Минск" {
		t.Errorf("Classify = %q, want Мастерс Минск", got)
	}
}

func TestClassifyFallback(t *testing.T) {
	if got := Classify("world tour finals", "World Tour"); got != "World Tour" {
		t.Errorf("Classify fallback = %q, want World Tour", got)
	}
	if got := Classify("world tour finals", ""); got != DefaultLabel {
		t.Errorf("Classify default = %q, want %q", got, DefaultLabel)
	}
}

func TestBuildText(t *testing.T) {
	got := BuildText("Setka Cup", "setka-cup", "", "Ukraine")
	want := "setka cup setka-cup ukraine"
	if got != want {
		t.Errorf("BuildText = %q, want %q", got, want)
	}
}
