package progression

import (
	"math"
	"testing"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4}, 4},
		{"odd length", []float64{9, 1, 5}, 5},
		{"even length averages middle two", []float64{4, 1, 3, 2}, 2.5},
		{"unsorted input", []float64{10, 2, 8, 4, 6}, 6},
		{"duplicates", []float64{3, 3, 3, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"pair", []float64{4, 6}, 5},
		{"single", []float64{7}, 7},
		{"negative", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.values); got != tt.want {
				t.Errorf("Average(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{15, 1, 10, 10},
		{1, 1, 10, 1},
		{10, 1, 10, 10},
	}

	for _, tt := range tests {
		got := Clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
		if got < tt.lo || got > tt.hi {
			t.Errorf("Clamp(%d, %d, %d) = %d outside bounds", tt.v, tt.lo, tt.hi, got)
		}
	}
}

func TestEstimateOneRepMax(t *testing.T) {
	// Epley: load * (1 + reps/30)
	got := EstimateOneRepMax(10, 60)
	want := 80.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EstimateOneRepMax(10, 60) = %v, want %v", got, want)
	}

	if got := EstimateOneRepMax(0, 100); got != 100 {
		t.Errorf("EstimateOneRepMax(0, 100) = %v, want 100", got)
	}
}
