package linalg

import (
	"fmt"
	"io"
	"strings"
)

// PrintOptions controls formatted printing of matrices and vectors.
type PrintOptions struct {
	Precision int // digits after the decimal point
	Width     int // minimum field width
}

var DefaultPrintOptions = PrintOptions{Precision: 4, Width: 12}

func formatRow(sb *strings.Builder, row []float64, opts PrintOptions) {
	sb.WriteString("[")
	for j, v := range row {
		if j > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%*.*e", opts.Width, opts.Precision, v))
	}
	sb.WriteString("]")
}

// Format renders m one row per line. Out-of-band entries of sparse kinds
// print as zero.
func Format(m Matrix, opts PrintOptions) string {
	var (
		sb   strings.Builder
		rows = m.Rows()
		cols = m.Cols()
		row  = make([]float64, cols)
	)
	sb.WriteString(fmt.Sprintf("%T %dx%d\n", m, rows, cols))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				sb.WriteString(fmt.Sprintf("<%v>\n", err))
				return sb.String()
			}
			row[j] = v
		}
		formatRow(&sb, row, opts)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Fprint writes Format(m, opts) to w.
func Fprint(w io.Writer, m Matrix, opts PrintOptions) error {
	_, err := io.WriteString(w, Format(m, opts))
	return err
}
