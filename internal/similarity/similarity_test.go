package similarity

import (
	"math"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Food Deserts and Health", "food deserts and health"},
		{"strips punctuation", "Obesity: a meta-analysis (2019)", "obesity a metaanalysis 2019"},
		{"collapses whitespace", "a   b\t\tc\n d", "a b c d"},
		{"empty", "", ""},
		{"only punctuation", "?!;:", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.in); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "food deserts", "food deserts", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "abc", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"half overlap", "abcd", "abxy", 0.5},
		{"order independent", "short", "a much longer string entirely", 3.0 / 17.0},
		{"order independent reversed", "a much longer string entirely", "short", 3.0 / 17.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"food deserts and health", "food deserts and health outcomes"},
		{"abcdef", "defabc"},
		{"short", "a much longer string entirely"},
		{"", "nonempty"},
	}

	for _, p := range pairs {
		ab := Ratio(p[0], p[1])
		ba := Ratio(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v but Ratio(%q, %q) = %v", p[0], p[1], ab, p[1], p[0], ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Ratio(%q, %q) = %v out of [0,1]", p[0], p[1], ab)
		}
	}
}

func TestTitleRatio(t *testing.T) {
	// Same title modulo case and punctuation must compare as identical.
	a := "Food Deserts and Health: A Systematic Review"
	b := "food deserts and health   a systematic review!"
	if got := TitleRatio(a, b); got != 1.0 {
		t.Errorf("TitleRatio(%q, %q) = %v, want 1.0", a, b, got)
	}

	if got := TitleRatio("Urban gardening in Detroit", "Quantum chromodynamics at colliders"); got > 0.5 {
		t.Errorf("unrelated titles scored %v, want low", got)
	}
}
