package main

import (
	"testing"

	"heatcli/internal/calc"
)

func fptr(v float64) *float64 { return &v }

func TestSampleInput(t *testing.T) {
	tests := []struct {
		name string
		p    calc.Parameter
		want float64
	}{
		{"both_bounds", calc.Parameter{Min: fptr(10), Max: fptr(30)}, 20},
		{"min_only", calc.Parameter{Min: fptr(5)}, 5},
		{"max_only", calc.Parameter{Max: fptr(8)}, 8},
		{"unbounded", calc.Parameter{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampleInput(tt.p); got != tt.want {
				t.Errorf("sampleInput(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCheckConverter(t *testing.T) {
	if err := checkConverter(); err != nil {
		t.Errorf("checkConverter: %v", err)
	}
}

func TestCheckCalculations(t *testing.T) {
	if err := checkCalculations(); err != nil {
		t.Errorf("checkCalculations: %v", err)
	}
}
