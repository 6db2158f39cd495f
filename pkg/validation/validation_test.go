// pkg/validation/validation_test.go
package validation

import (
	"math"
	"testing"
)

func TestFinite(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		fallback float64
		expected float64
	}{
		{name: "finite_passes", value: 3.5, fallback: 1, expected: 3.5},
		{name: "nan_replaced", value: math.NaN(), fallback: 1, expected: 1},
		{name: "positive_inf_replaced", value: math.Inf(1), fallback: 2, expected: 2},
		{name: "negative_inf_replaced", value: math.Inf(-1), fallback: 2, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Finite(tt.value, tt.fallback); result != tt.expected {
				t.Errorf("Finite() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestPositive(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		fallback float64
		expected float64
	}{
		{name: "positive_passes", value: 10, fallback: 1, expected: 10},
		{name: "zero_replaced", value: 0, fallback: 5, expected: 5},
		{name: "negative_replaced", value: -3, fallback: 5, expected: 5},
		{name: "nan_replaced", value: math.NaN(), fallback: 5, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Positive(tt.value, tt.fallback); result != tt.expected {
				t.Errorf("Positive() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	if result := NonNegative(-4); result != 0 {
		t.Errorf("NonNegative(-4) = %v, expected 0", result)
	}
	if result := NonNegative(4); result != 4 {
		t.Errorf("NonNegative(4) = %v, expected 4", result)
	}
	if result := NonNegative(math.NaN()); result != 0 {
		t.Errorf("NonNegative(NaN) = %v, expected 0", result)
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "inside_range", value: 0.5, expected: 0.5},
		{name: "above_clamped", value: 3, expected: 1},
		{name: "below_clamped", value: -3, expected: -1},
		{name: "nan_zeroed", value: math.NaN(), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Axis(tt.value); result != tt.expected {
				t.Errorf("Axis() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestTickDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "normal_tick", value: 1.0 / 60, expected: 1.0 / 60},
		{name: "negative_zeroed", value: -0.1, expected: 0},
		{name: "nan_zeroed", value: math.NaN(), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := TickDuration(tt.value); result != tt.expected {
				t.Errorf("TickDuration() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
