package sheets

import (
	"fmt"
	"math"
	"strings"
)

// Largest column (ZZZ) and row accepted in a cell reference.
const (
	maxColumn = 18278
	maxRow    = math.MaxInt32
)

// GridRange is a zero-based, half-open cell rectangle on one sheet.
type GridRange struct {
	// SheetName is empty when the range had no sheet prefix.
	SheetName   string
	StartRow    int64
	EndRow      int64
	StartColumn int64
	EndColumn   int64
}

// ParseA1Range parses "A1:C3" or "Sheet!A1:C3". Both corners must name a
// column and a row, and the second corner must not precede the first.
// "A1:C3" yields rows [0,3) and columns [0,3).
func ParseA1Range(s string) (GridRange, error) {
	var gr GridRange

	cells := s
	if i := strings.LastIndex(s, "!"); i >= 0 {
		gr.SheetName = unquoteSheetName(s[:i])
		cells = s[i+1:]
		if gr.SheetName == "" {
			return GridRange{}, fmt.Errorf("Invalid A1 range %q: empty sheet name", s)
		}
	}

	start, end, ok := strings.Cut(cells, ":")
	if !ok {
		return GridRange{}, fmt.Errorf("Invalid A1 range %q: expected <start>:<end>", s)
	}

	startCol, startRow, err := parseCell(start)
	if err != nil {
		return GridRange{}, fmt.Errorf("Invalid A1 range %q: %w", s, err)
	}
	endCol, endRow, err := parseCell(end)
	if err != nil {
		return GridRange{}, fmt.Errorf("Invalid A1 range %q: %w", s, err)
	}
	if endCol < startCol || endRow < startRow {
		return GridRange{}, fmt.Errorf("Invalid A1 range %q: end cell precedes start cell", s)
	}

	gr.StartRow = startRow - 1
	gr.EndRow = endRow
	gr.StartColumn = startCol
	gr.EndColumn = endCol + 1
	return gr, nil
}

// parseCell returns the zero-based column and one-based row of a cell like "AB12".
func parseCell(cell string) (col, row int64, err error) {
	cell = strings.ToUpper(strings.TrimSpace(cell))
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("cell %q has no column letters", cell)
	}
	if i == len(cell) {
		return 0, 0, fmt.Errorf("cell %q has no row number", cell)
	}

	for _, c := range cell[:i] {
		col = col*26 + int64(c-'A'+1)
		if col > maxColumn {
			return 0, 0, fmt.Errorf("cell %q has a column beyond ZZZ", cell)
		}
	}
	for _, c := range cell[i:] {
		if c < '0' || c > '9' {
			return 0, 0, fmt.Errorf("cell %q has an invalid row number", cell)
		}
		row = row*10 + int64(c-'0')
		if row > maxRow {
			return 0, 0, fmt.Errorf("cell %q has a row beyond %d", cell, maxRow)
		}
	}
	if row == 0 {
		return 0, 0, fmt.Errorf("cell %q has row 0; rows start at 1", cell)
	}
	return col - 1, row, nil
}

func unquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// QuoteSheetName returns name in the form accepted as an A1 sheet prefix.
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
