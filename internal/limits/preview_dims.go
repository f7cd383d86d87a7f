package limits

import "fmt"

const (
	PreviewMaxCols = 500
	PreviewMaxRows = 200
)

type DimensionError struct {
	Cols, Rows       int
	MaxCols, MaxRows int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimensions %dx%d exceed max %dx%d", e.Cols, e.Rows, e.MaxCols, e.MaxRows)
}

// Normalize raises non-positive dimensions to the 1x1 minimum.
func Normalize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Clamp bounds preview dimensions to what the dashboard will ever lay out.
func Clamp(cols, rows int) (int, int) {
	cols, rows = Normalize(cols, rows)
	if cols > PreviewMaxCols {
		cols = PreviewMaxCols
	}
	if rows > PreviewMaxRows {
		rows = PreviewMaxRows
	}
	return cols, rows
}

// ValidateMax rejects dimensions beyond the preview maxima.
func ValidateMax(cols, rows int) error {
	cols, rows = Normalize(cols, rows)
	if cols > PreviewMaxCols || rows > PreviewMaxRows {
		return &DimensionError{Cols: cols, Rows: rows, MaxCols: PreviewMaxCols, MaxRows: PreviewMaxRows}
	}
	return nil
}
