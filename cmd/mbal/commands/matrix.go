package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"massbal"
)

// SystemFile holds a matrix given as rows and an optional right-hand side.
type SystemFile struct {
	A [][]float64 `yaml:"a"`
	B []float64   `yaml:"b,omitempty"`
}

func loadSystem(path string) (*SystemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s SystemFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: failed to decode system: %w", path, err)
	}
	if len(s.A) == 0 {
		return nil, fmt.Errorf("%s: %w: no matrix rows under a", path, massbal.ErrInvalidInput)
	}
	return &s, nil
}

var rankCmd = &cobra.Command{
	Use:   "rank <matrix.yaml>",
	Short: "Reports the row rank and pivots of a stoichiometric matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSystem(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		m, err := massbal.FromRows(s.A, settings.solverConfig())
		if err != nil {
			return err
		}
		m.Print(w, true)

		rank, pivots := m.Rank()
		fmt.Fprintf(w, "Rank = %d of %d rows\n", rank, m.Rows)
		for _, p := range pivots {
			fmt.Fprintf(w, "  pivot at row %d, column %d\n", p.Row+1, p.Col+1)
		}
		if rank < m.Rows {
			printStatus(w, &massbal.RankError{Rank: rank, Rows: m.Rows, Pivots: pivots})
			return nil
		}
		printStatus(w, nil)
		return nil
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve <system.yaml>",
	Short: "Solves a x = b, in the least squares sense when a is not square",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSystem(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		m, err := massbal.FromRows(s.A, settings.solverConfig())
		if err != nil {
			return err
		}
		defer m.Destroy()

		largest := m.LargestElement()
		x, err := m.Solve(s.B)
		m.Print(w, true)
		if err != nil {
			printStatus(w, err)
			return err
		}

		parts := make([]string, len(x))
		for i, v := range x {
			parts[i] = fmt.Sprintf("x[%d] = %.6g", i+1, v)
		}
		fmt.Fprintln(w, strings.Join(parts, "\n"))
		fmt.Fprintf(w, "Largest element in matrix = %g\n", largest)
		printStatus(w, nil)
		return nil
	},
}

func init() {
	AddCommand(rankCmd)
	AddCommand(solveCmd)
}
