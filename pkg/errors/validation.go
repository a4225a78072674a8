package errors

import "math"

// ValidateCanvas checks that a canvas has positive, finite dimensions.
// name identifies the canvas in the error message (e.g. "target canvas").
func ValidateCanvas(name string, width, height float64) error {
	if !finite(width) || !finite(height) {
		return New(ErrCodeInvalidCanvas, "%s must be finite, got %vx%v", name, width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "%s must be positive, got %vx%v", name, width, height)
	}
	return nil
}

// ValidateFinite checks that every value is a finite number.
func ValidateFinite(name string, values ...float64) error {
	for _, v := range values {
		if !finite(v) {
			return New(ErrCodeNonFinite, "%s is not finite (%v)", name, v)
		}
	}
	return nil
}

// ValidateGrid checks the rows and cols of a cut grid.
func ValidateGrid(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return New(ErrCodeInvalidGrid, "grid must be at least 1x1, got %dx%d", rows, cols)
	}
	const maxCells = 10000
	if rows*cols > maxCells {
		return New(ErrCodeInvalidGrid, "grid too large (%d cells, max %d)", rows*cols, maxCells)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
