package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run <case.yaml...>",
	Short: "Solves one or more case files",
	Long: `The run command decodes each case file, solves its problem block and
prints the resulting streams. Cases are independent and solved in parallel;
output keeps the order of the arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcomes, err := runCases(cmd.Context(), args, settings)
		if err != nil {
			return err
		}

		failed := 0
		for _, o := range outcomes {
			printOutcome(cmd.OutOrStdout(), o)
			if o.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d cases failed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	AddCommand(runCmd)
}

// runCases solves every case file with at most s.Workers in flight. A file
// that cannot be read or decoded stops the run; solver failures are kept in
// the outcome of their case.
func runCases(ctx context.Context, paths []string, s Settings) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := LoadCase(path)
			if err != nil {
				return err
			}

			o, err := c.Solve(s.solverConfig())
			o.Path = path
			o.Err = err
			outcomes[i] = o

			logger.WithFields(logrus.Fields{
				"case":     c.Name,
				"path":     path,
				"warnings": len(o.Warnings),
			}).WithError(err).Debug("case solved")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
