package reliability

import (
	"math"
	"testing"
)

func TestCohenKappa(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{
			name: "perfect agreement",
			a:    []string{"include", "exclude", "include", "maybe"},
			b:    []string{"include", "exclude", "include", "maybe"},
			want: 1.0,
		},
		{
			name: "single label throughout",
			a:    []string{"include", "include", "include"},
			b:    []string{"include", "include", "include"},
			want: 1.0,
		},
		{
			name: "complete disagreement two labels",
			a:    []string{"include", "include", "exclude", "exclude"},
			b:    []string{"exclude", "exclude", "include", "include"},
			want: -1.0,
		},
		{
			name: "chance-level agreement",
			a:    []string{"include", "include", "exclude", "exclude"},
			b:    []string{"include", "exclude", "include", "exclude"},
			want: 0.0,
		},
		{
			name: "empty sequences",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CohenKappa(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CohenKappa() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCohenKappaPartialAgreement(t *testing.T) {
	// 3 of 4 agree: po = 0.75, pe = 0.5, kappa = 0.5.
	a := []string{"include", "include", "exclude", "exclude"}
	b := []string{"include", "include", "exclude", "include"}
	if got := CohenKappa(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("CohenKappa() = %v, want 0.5", got)
	}
}

func TestCohenKappaMismatchedLengthsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched lengths")
		}
	}()
	CohenKappa([]string{"include"}, []string{"include", "exclude"})
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		kappa float64
		want  string
	}{
		{-0.5, "Poor"},
		{0.0, "Slight"},
		{0.19, "Slight"},
		{0.20, "Fair"},
		{0.39, "Fair"},
		{0.40, "Moderate"},
		{0.59, "Moderate"},
		{0.60, "Substantial"},
		{0.79, "Substantial"},
		{0.80, "Almost Perfect"},
		{1.0, "Almost Perfect"},
	}

	for _, tt := range tests {
		if got := Interpret(tt.kappa); got != tt.want {
			t.Errorf("Interpret(%v) = %q, want %q", tt.kappa, got, tt.want)
		}
	}
}
