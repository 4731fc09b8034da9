// Package frame defines the tabular intermediate value shared by the file
// collectors and the transformers built on top of them.
package frame

// Frame is a rectangular table: a header row of column names plus data rows.
// Collectors produce it as the "data_frame" type; transformers consume it.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Column returns the index of the named column, or -1 when absent.
func (f *Frame) Column(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at the given row for the named column. Missing
// columns and ragged rows yield the empty string.
func (f *Frame) Cell(row int, name string) string {
	idx := f.Column(name)
	if idx < 0 || row < 0 || row >= len(f.Rows) || idx >= len(f.Rows[row]) {
		return ""
	}
	return f.Rows[row][idx]
}
