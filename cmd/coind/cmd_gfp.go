package main

import (
	"context"
	"fmt"

	"coinduct/internal/logging"
	"coinduct/internal/mangle"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var gfpOracle bool

var gfpCmd = &cobra.Command{
	Use:   "gfp [game]",
	Short: "Compute the greatest fixpoint of a game",
	Long: `Computes the final chain top ≥ b(top) ≥ b²(top) ≥ … of the game's
functional and prints its limit, the greatest fixpoint.

With --oracle the fixpoint is also computed by the Mangle Datalog oracle and
both results are compared.

Example:
  coind gfp eq --universe 6 --oracle`,
	Args: cobra.ExactArgs(1),
	RunE: runGFP,
}

func init() {
	gfpCmd.Flags().BoolVar(&gfpOracle, "oracle", false, "Cross-check with the Datalog oracle")
}

func runGFP(cmd *cobra.Command, args []string) error {
	g, err := lookupGame(args[0])
	if err != nil {
		return err
	}
	s, err := binarySpace()
	if err != nil {
		return err
	}
	e, err := s.Engine(g, engineOptions()...)
	if err != nil {
		return err
	}

	steps := 0
	for range e.Chain() {
		steps++
	}
	gfp := e.GFP()
	logger.Info("Computed greatest fixpoint", zap.String("game", g.Name), zap.Int("chain", steps))

	printTitle("gfp(%s) over [0, %d)²", g.Name, s.N())
	fmt.Println(row("chain", fmt.Sprintf("%d steps", steps)))
	fmt.Println(row("pairs", fmt.Sprintf("%d", len(s.Members(gfp)))))
	fmt.Println(row("gfp", members(s, gfp)))

	if !gfpOracle {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	oracle, err := s.OracleGFP(ctx, mangle.ConfigFrom(cfg), logging.Named(rootLogger, cfg.Logging, logging.CategoryOracle), g)
	if err != nil {
		return err
	}
	agree := s.Weq(gfp, oracle)
	fmt.Println(row("oracle", status(agree)))
	if !agree {
		fmt.Println(row("datalog", members(s, oracle)))
		return fmt.Errorf("oracle disagrees on gfp(%s)", g.Name)
	}
	return nil
}
