package engine_test

import (
	"math"
	"testing"

	"github.com/kharel/fintrack-bff-go/internal/engine"
)

func TestProjectedReturn(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		roi       float64
		want      float64
	}{
		{"twelve percent on a thousand", 1000, 12, 120},
		{"zero roi", 1000, 0, 0},
		{"zero principal", 0, 12, 0},
		{"fractional roi", 2500, 7.5, 187.5},
		{"NaN coerced", math.NaN(), 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.ProjectedReturn(tt.principal, tt.roi); got != tt.want {
				t.Errorf("ProjectedReturn(%v, %v) = %v, want %v", tt.principal, tt.roi, got, tt.want)
			}
		})
	}
}

func TestActualROI(t *testing.T) {
	tests := []struct {
		name    string
		initial float64
		current float64
		want    float64
	}{
		{"gain", 1000, 1250, 25},
		{"loss", 1000, 800, -20},
		{"flat", 500, 500, 0},
		{"zero initial yields zero not Inf", 0, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.ActualROI(tt.initial, tt.current); got != tt.want {
				t.Errorf("ActualROI(%v, %v) = %v, want %v", tt.initial, tt.current, got, tt.want)
			}
		})
	}
}
