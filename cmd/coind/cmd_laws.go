package main

import (
	"fmt"

	"coinduct/internal/errors"
	"coinduct/internal/lattice"
	"coinduct/internal/mon"
	"coinduct/internal/rel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var lawsCmd = &cobra.Command{
	Use:   "laws",
	Short: "Certify the built-in lattice instances",
	Long: `Checks the seven complete-lattice laws by exhaustion on every built-in
instance small enough to enumerate: Prop, finite chains, their duals, unary
relations over a small universe and the monotone maps on Prop.`,
	Args: cobra.NoArgs,
	RunE: runLaws,
}

type certification struct {
	name  string
	check func() error
}

func certifications() []certification {
	chain := lattice.NewChain(4)
	n := min(cfg.Universe.Size, 3)
	return []certification{
		{"Prop", func() error { return lattice.Certify[bool](lattice.Bool{}) }},
		{chain.String(), func() error { return lattice.Certify[int](chain) }},
		{"Dual(" + chain.String() + ")", func() error {
			return lattice.Certify(lattice.DualFinite[int](chain))
		}},
		{"Mon(Prop)", func() error {
			return lattice.Certify[mon.Mon[bool]](mon.NewLattice[bool](lattice.Bool{}))
		}},
		{fmt.Sprintf("Rel(%d, 1)", n), func() error {
			s, err := rel.NewSpace(n, 1)
			if err != nil {
				return err
			}
			return lattice.Certify[rel.Rel](s)
		}},
	}
}

func runLaws(cmd *cobra.Command, args []string) error {
	printTitle("lattice laws")
	failed := 0
	for _, c := range certifications() {
		err := c.check()
		fmt.Println(row(c.name, status(err == nil)))
		if err != nil {
			failed++
			logger.Warn("Law violated", zap.String("instance", c.name), zap.Error(err))
			fmt.Println(row("", mutedStyle.Render(err.Error())))
		}
	}
	if failed > 0 {
		return errors.Wrapf(lattice.ErrLawViolated, "%d instance(s)", failed)
	}
	return nil
}
