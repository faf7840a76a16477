package main

import (
	"fmt"

	"coinduct/internal/companion"
	"coinduct/internal/rel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var symmetryCmd = &cobra.Command{
	Use:   "symmetry [game] [x,y...]",
	Short: "Prove pairs of a symmetrized game by symmetry",
	Long: `Builds the symmetrized functional cap(b, converse ∘ b ∘ converse) of
the game and proves the pairs, closed under converse, by the symmetry rule.
The witness of the symmetrized functional is the game's own functional.

Example:
  coind symmetry sim 3,3`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSymmetry,
}

func runSymmetry(cmd *cobra.Command, args []string) error {
	g, err := lookupGame(args[0])
	if err != nil {
		return err
	}
	s, err := binarySpace()
	if err != nil {
		return err
	}
	b, err := s.Symmetric(g)
	if err != nil {
		return err
	}
	e, err := companion.New[rel.Rel](s, b, engineOptions()...)
	if err != nil {
		return err
	}

	var elements []rel.Rel
	for _, text := range args[1:] {
		t, err := parsePair(s, text)
		if err != nil {
			return err
		}
		elements = append(elements, s.Of(t, t.Swap()))
	}

	sym, err := e.BySymmetry(2, s.Skeleton(g.Name), elements...)
	if err != nil {
		return err
	}
	printTitle("symmetry %s", b.Key())
	if w, ok := sym.Witness(); ok {
		fmt.Println(row("witness", w.Key()))
	} else {
		fmt.Println(row("witness", failStyle.Render("unresolved")))
	}
	for _, o := range sym.Obligations() {
		fmt.Println(row(string(o.Rule), status(o.Holds(s))))
	}

	th, err := sym.Qed()
	if err != nil {
		return err
	}
	logger.Info("Proved by symmetry", zap.String("theorem", th.ID().String()))
	printTheorem(s, th)
	return nil
}
