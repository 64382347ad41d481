package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"Round up above midpoint", 1.237, 1.24},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int
	}{
		{"Exact half goes up", 2.5, 3},
		{"Negative half goes towards positive", -2.5, -2},
		{"Below half", 11.49, 11},
		{"Just under twelve", 11.9908, 12},
		{"Small fraction", 0.0328, 0},
		{"Whole number", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundHalfUp(tt.input); got != tt.expected {
				t.Errorf("RoundHalfUp(%v) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompound(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		rate     float64
		periods  float64
		expected float64
	}{
		{"Zero periods", 1000, 0.08, 0, 1000},
		{"One period", 1000, 0.08, 1, 1080},
		{"Twelve periods", 1000, 0.08, 12, 2518.17},
		{"Zero rate", 1000, 0, 24, 1000},
		{"Fractional period", 500, 0.02, 1.0 / 30.44, 500.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compound(tt.value, tt.rate, tt.periods)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("Compound(%v, %v, %v) = %v, expected %v",
					tt.value, tt.rate, tt.periods, got, tt.expected)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(1000, 1500); got != 50 {
		t.Errorf("PercentChange(1000, 1500) = %v, expected 50", got)
	}
	if got := PercentChange(0, 1500); got != 0 {
		t.Errorf("PercentChange(0, 1500) = %v, expected 0", got)
	}
	if got := PercentChange(200, 100); got != -50 {
		t.Errorf("PercentChange(200, 100) = %v, expected -50", got)
	}
}

func TestToPercent(t *testing.T) {
	if got := ToPercent(0.025); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("ToPercent(0.025) = %v, expected 2.5", got)
	}
}
