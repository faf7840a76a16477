package main

import (
	"slices"
	"strconv"
	"strings"

	"coinduct/internal/errors"
	"coinduct/internal/rel"
)

var games = map[string]func() rel.Game{
	"eq":  rel.EqualityGame,
	"sim": rel.SimulationGame,
}

func gameNames() []string {
	names := make([]string, 0, len(games))
	for name := range games {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupGame(name string) (rel.Game, error) {
	g, ok := games[name]
	if !ok {
		return rel.Game{}, errors.WithHintf(
			errors.Newf("unknown game %q", name),
			"available games: %s", strings.Join(gameNames(), ", "))
	}
	return g(), nil
}

// binarySpace is the space of binary relations over the configured universe.
func binarySpace() (*rel.Space, error) {
	return rel.NewSpace(cfg.Universe.Size, 2)
}

// parsePair reads "x,y" as a pair inside the universe of s.
func parsePair(s *rel.Space, text string) (rel.Tuple, error) {
	x, y, ok := strings.Cut(text, ",")
	if !ok {
		return rel.Tuple{}, errors.Newf("pair %q: expected x,y", text)
	}
	a, err := strconv.Atoi(strings.TrimSpace(x))
	if err != nil {
		return rel.Tuple{}, errors.Wrapf(err, "pair %q", text)
	}
	b, err := strconv.Atoi(strings.TrimSpace(y))
	if err != nil {
		return rel.Tuple{}, errors.Wrapf(err, "pair %q", text)
	}
	p := rel.Pair(a, b)
	if !s.Contains(p) {
		return rel.Tuple{}, errors.WithHintf(
			errors.Newf("pair %v outside the universe", p),
			"raise --universe above %d", max(a, b))
	}
	return p, nil
}
