package errors

import (
	"math"
	"testing"
)

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name     string
		w, h     float64
		wantCode Code
	}{
		{"valid", 800, 600, ""},
		{"zero width", 0, 500, ErrCodeInvalidCanvas},
		{"negative height", 800, -1, ErrCodeInvalidCanvas},
		{"nan", math.NaN(), 600, ErrCodeInvalidCanvas},
		{"inf", 800, math.Inf(1), ErrCodeInvalidCanvas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas("canvas", tt.w, tt.h)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateCanvas() error = %v, want nil", err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateCanvas() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("scale", 1, 2, 3); err != nil {
		t.Errorf("finite values: %v", err)
	}
	if err := ValidateFinite("scale", 1, math.NaN()); !Is(err, ErrCodeNonFinite) {
		t.Errorf("NaN: got %v, want NON_FINITE", err)
	}
}

func TestValidateGrid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"1x1", 1, 1, false},
		{"4x6", 4, 6, false},
		{"zero rows", 0, 3, true},
		{"negative cols", 3, -1, true},
		{"too large", 200, 200, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrid(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGrid(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
		})
	}
}
