package massbal

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// WriteStatus logs the pivot selected at step and the current matrix.
func (m *Matrix) WriteStatus(step int) {
	log := m.logger().WithFields(logrus.Fields{
		"step":      step,
		"pivot_row": m.PivotsOriginalRow,
		"pivot_col": m.PivotsOriginalCol,
		"exchanges": m.Exchanges,
	})
	log.Debug("pivot selected")

	var sb strings.Builder
	m.Print(&sb, false)
	log.Debug("\n" + sb.String())
}

func (m *Matrix) Print(w io.Writer, header bool) {
	if m == nil || m.Data == nil {
		return
	}

	if header {
		fmt.Fprintf(w, "MATRIX SUMMARY\n\n")
		fmt.Fprintf(w, "Size of matrix = %d x %d.\n", m.Rows, m.Cols)
		if m.Exchanges > 0 {
			fmt.Fprintf(w, "Rows exchanged %d times.\n", m.Exchanges)
		}
		if m.SingularCol >= 0 {
			fmt.Fprintf(w, "Matrix is singular at column %d.\n", m.SingularCol)
		}
		fmt.Fprintln(w)
	}

	columns := m.Config.PrinterWidth
	if header {
		columns -= 5
	}
	columns = (columns + 1) / 10
	if columns < 1 {
		columns = 1
	}

	for startCol := 0; startCol < m.Cols; startCol += columns {
		stopCol := min(startCol+columns, m.Cols)

		if header {
			fmt.Fprintf(w, "    ")
			for col := startCol; col < stopCol; col++ {
				fmt.Fprintf(w, " %9d", col)
			}
			fmt.Fprintf(w, "\n\n")
		}

		for i := 0; i < m.Rows; i++ {
			if header {
				fmt.Fprintf(w, "%4d", i)
			}
			for col := startCol; col < stopCol; col++ {
				if m.Data[i][col] == 0.0 {
					fmt.Fprintf(w, "       ...")
				} else {
					fmt.Fprintf(w, " %9.3g", m.Data[i][col])
				}
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}

func (m *Matrix) String() string {
	var sb strings.Builder
	m.Print(&sb, true)
	return sb.String()
}

// FormatStream renders a stream as a small table, one row per component.
func FormatStream(title string, s Stream) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", title)
	fmt.Fprintf(&sb, "  F = %.6f\n", s.Flow)
	for i, x := range s.Fractions {
		name := fmt.Sprintf("c%d", i+1)
		if i < len(s.Components) {
			name = s.Components[i]
		}
		fmt.Fprintf(&sb, "  %-10s x = %.6f   N = %.6f\n", name, x, s.Flow*x)
	}

	return sb.String()
}
