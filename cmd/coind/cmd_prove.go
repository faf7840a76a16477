package main

import (
	"fmt"

	"coinduct/internal/companion"
	"coinduct/internal/errors"
	"coinduct/internal/rel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var proveFacts []string

var proveCmd = &cobra.Command{
	Use:   "prove [game] [x,y...]",
	Short: "Prove pairs are in a game's greatest fixpoint by coinduction",
	Long: `Opens a coinductive candidate for the given pairs and discharges
claim ≤ b(t(candidate ∪ claim)).

Each --fact pair is proved first, in order, and accumulated into the
candidate before the goal is checked.

Example:
  coind prove eq 5,5 --fact 4,4`,
	Args: cobra.MinimumNArgs(2),
	RunE: runProve,
}

func init() {
	proveCmd.Flags().StringSliceVar(&proveFacts, "fact", nil, "Pair to prove and accumulate first")
}

func runProve(cmd *cobra.Command, args []string) error {
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
	skel := s.Skeleton(g.Name)

	claim, err := pairRelations(s, args[1:])
	if err != nil {
		return err
	}
	facts, err := pairRelations(s, proveFacts)
	if err != nil {
		return err
	}

	var proved []companion.Theorem[rel.Rel]
	for _, f := range facts {
		p, err := e.Coinduction(2, skel, f)
		if err != nil {
			return err
		}
		th, err := p.Qed()
		if err != nil {
			printGoal(s, p.Goal())
			return errors.Wrapf(err, "fact %s", members(s, f))
		}
		proved = append(proved, th)
	}

	p, err := e.Accumulate(2, proved, skel, claim...)
	if err != nil {
		return err
	}
	printTitle("prove %s", g.Name)
	fmt.Println(row("claim", members(s, p.Claim())))
	fmt.Println(row("candidate", members(s, p.Candidate())))

	th, err := p.Qed()
	if err != nil {
		printGoal(s, p.Goal())
		return err
	}
	logger.Info("Proved", zap.String("theorem", th.ID().String()), zap.Bool("closed", th.Closed()))
	printTheorem(s, th)
	return nil
}

func pairRelations(s *rel.Space, pairs []string) ([]rel.Rel, error) {
	out := make([]rel.Rel, 0, len(pairs))
	for _, text := range pairs {
		t, err := parsePair(s, text)
		if err != nil {
			return nil, err
		}
		out = append(out, s.Of(t))
	}
	return out, nil
}

func printGoal(s *rel.Space, o companion.Obligation[rel.Rel]) {
	fmt.Println(row(string(o.Rule), status(o.Holds(s))))
	fmt.Println(row("  claim", members(s, o.Claim)))
	fmt.Println(row("  bound", members(s, o.Bound)))
}

func printTheorem(s *rel.Space, th companion.Theorem[rel.Rel]) {
	fmt.Println(row("theorem", mutedStyle.Render(th.ID().String())))
	if th.Closed() {
		fmt.Println(row("qed", okStyle.Render(fmt.Sprintf("%s ≤ gfp(%s)", members(s, th.Claim()), th.Relation()))))
		return
	}
	fmt.Println(row("qed", okStyle.Render(fmt.Sprintf("%s ≤ t(%s)", members(s, th.Claim()), members(s, th.Under())))))
}
