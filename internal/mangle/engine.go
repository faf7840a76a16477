// Package mangle wraps the Google Mangle Datalog engine as an independent
// fixpoint oracle. Programs are positive, so Mangle's bottom-up evaluation
// computes their least model, which SolveGame turns into the greatest
// fixpoint of a finite game.
package mangle

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"coinduct/internal/config"
	"coinduct/internal/errors"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"go.uber.org/zap"
)

// ErrFactLimit is returned when inserting or deriving more facts than the
// configured limit.
var ErrFactLimit = errors.New("fact limit exceeded")

// Config holds Mangle engine configuration.
type Config struct {
	FactLimit    int           // 0 disables the limit
	QueryTimeout time.Duration // applied when the context has no deadline
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		FactLimit:    100000,
		QueryTimeout: 30 * time.Second,
	}
}

// ConfigFrom converts the mangle section of a loaded configuration.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		FactLimit:    cfg.Mangle.FactLimit,
		QueryTimeout: cfg.GetQueryTimeout(),
	}
}

// Engine holds one Mangle program and its fact store.
type Engine struct {
	config Config
	logger *zap.Logger

	mu             sync.RWMutex
	store          factstore.FactStoreWithRemove
	programInfo    *analysis.ProgramInfo
	predicateIndex map[string]ast.PredicateSym
	fragments      []parse.SourceUnit
	factCount      int

	// closed when an evaluation abandoned at its deadline returns
	abandoned chan struct{}
}

// Fact is a single ground atom. Args hold int64, int or string values;
// strings starting with "/" are names.
type Fact struct {
	Predicate string
	Args      []interface{}
}

// String returns the Datalog representation of the fact.
func (f Fact) String() string {
	var args []string
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case string:
			if strings.HasPrefix(v, "/") {
				args = append(args, v)
			} else {
				args = append(args, fmt.Sprintf("%q", v))
			}
		default:
			args = append(args, fmt.Sprintf("%v", v))
		}
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(args, ", "))
}

// Stats contains engine statistics.
type Stats struct {
	TotalFacts      int
	PredicateCounts map[string]int
}

// NewEngine creates an engine with an empty store and no program. A nil
// logger disables logging.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		config:         cfg,
		logger:         logger,
		store:          factstore.NewSimpleInMemoryStore(),
		predicateIndex: make(map[string]ast.PredicateSym),
	}
}

// LoadSchemaString parses and analyzes a program fragment. Fragments
// accumulate; the program is the union of all of them.
func (e *Engine) LoadSchemaString(schema string) error {
	unit, err := parse.Unit(bytes.NewReader([]byte(schema)))
	if err != nil {
		return errors.Wrap(err, "failed to parse schema")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.fragments = append(e.fragments, unit)
	if err := e.rebuildProgramLocked(); err != nil {
		e.fragments = e.fragments[:len(e.fragments)-1]
		return errors.Wrap(err, "failed to analyze schema")
	}
	return nil
}

func (e *Engine) rebuildProgramLocked() error {
	var unit parse.SourceUnit
	for _, fragment := range e.fragments {
		unit.Clauses = append(unit.Clauses, fragment.Clauses...)
		unit.Decls = append(unit.Decls, fragment.Decls...)
	}

	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return err
	}

	e.programInfo = programInfo
	e.predicateIndex = make(map[string]ast.PredicateSym, len(programInfo.Decls))
	for sym := range programInfo.Decls {
		e.predicateIndex[sym.Symbol] = sym
	}
	return nil
}

// AddFact inserts a single fact.
func (e *Engine) AddFact(predicate string, args ...interface{}) error {
	return e.AddFacts([]Fact{{Predicate: predicate, Args: args}})
}

// AddFacts inserts facts without evaluating rules.
func (e *Engine) AddFacts(facts []Fact) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.programInfo == nil {
		return errors.New("no schemas loaded; call LoadSchemaString first")
	}
	for _, fact := range facts {
		if e.config.FactLimit > 0 && e.factCount >= e.config.FactLimit {
			return errors.Wrapf(ErrFactLimit, "%d", e.config.FactLimit)
		}
		atom, err := e.factToAtomLocked(fact)
		if err != nil {
			return err
		}
		if e.store.Add(atom) {
			e.factCount++
		}
	}
	return nil
}

func (e *Engine) factToAtomLocked(fact Fact) (ast.Atom, error) {
	sym, ok := e.predicateIndex[fact.Predicate]
	if !ok {
		return ast.Atom{}, errors.Newf("predicate %s is not declared in schemas", fact.Predicate)
	}
	if len(fact.Args) != sym.Arity {
		return ast.Atom{}, errors.Newf("predicate %s expects %d args, got %d", fact.Predicate, sym.Arity, len(fact.Args))
	}

	args := make([]ast.BaseTerm, len(fact.Args))
	for i, raw := range fact.Args {
		term, err := toTerm(raw)
		if err != nil {
			return ast.Atom{}, errors.Wrapf(err, "predicate %s arg %d", fact.Predicate, i)
		}
		args[i] = term
	}
	return ast.Atom{Predicate: sym, Args: args}, nil
}

func toTerm(value interface{}) (ast.BaseTerm, error) {
	switch v := value.(type) {
	case int:
		return ast.Number(int64(v)), nil
	case int64:
		return ast.Number(v), nil
	case string:
		if strings.HasPrefix(v, "/") {
			return ast.Name(v)
		}
		return ast.String(v), nil
	}
	return nil, errors.Newf("unsupported fact argument type %T", value)
}

// Evaluate runs the program to its fixpoint. Evaluation runs on its own
// goroutine so a deadline can interrupt the wait; without a deadline on ctx
// the configured query timeout applies. Mangle evaluation cannot be
// cancelled, so on a deadline the goroutine keeps writing the store it was
// given: the engine swaps in an empty store and Close waits for the
// goroutine to return.
func (e *Engine) Evaluate(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.programInfo == nil {
		return errors.New("no schemas loaded; call LoadSchemaString first")
	}

	if _, ok := ctx.Deadline(); !ok && e.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.QueryTimeout)
		defer cancel()
	}

	programInfo, store, limit := e.programInfo, e.store, e.config.FactLimit
	start := time.Now()
	done := make(chan error, 1)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		var err error
		if limit > 0 {
			_, err = mengine.EvalProgramWithStats(programInfo, store, mengine.WithCreatedFactLimit(limit))
		} else {
			_, err = mengine.EvalProgramWithStats(programInfo, store)
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, "failed to evaluate program")
		}
		e.factCount = e.store.EstimateFactCount()
		e.logger.Debug("Evaluated program",
			zap.Duration("duration", time.Since(start)),
			zap.Int("facts", e.factCount))
		return nil
	case <-ctx.Done():
		e.waitAbandonedLocked()
		e.abandoned = finished
		e.store = factstore.NewSimpleInMemoryStore()
		e.factCount = 0
		e.logger.Warn("Evaluation abandoned; fact store reset",
			zap.Duration("elapsed", time.Since(start)))
		return errors.Wrapf(ctx.Err(), "evaluation timed out after %v", time.Since(start))
	}
}

// waitAbandonedLocked blocks until a previously abandoned evaluation
// returns.
func (e *Engine) waitAbandonedLocked() {
	if e.abandoned != nil {
		<-e.abandoned
		e.abandoned = nil
	}
}

// GetFacts retrieves all facts for a predicate. Numbers come back as int64.
func (e *Engine) GetFacts(predicate string) ([]Fact, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sym, ok := e.predicateIndex[predicate]
	if !ok {
		return nil, errors.Newf("predicate %s is not declared", predicate)
	}

	var results []Fact
	err := e.store.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
		args := make([]interface{}, len(atom.Args))
		for i, arg := range atom.Args {
			args[i] = fromTerm(arg)
		}
		results = append(results, Fact{Predicate: predicate, Args: args})
		return nil
	})
	return results, err
}

func fromTerm(term ast.BaseTerm) interface{} {
	c, ok := term.(ast.Constant)
	if !ok {
		return fmt.Sprintf("%v", term)
	}
	switch c.Type {
	case ast.NumberType:
		return c.NumValue
	case ast.StringType, ast.NameType:
		return c.Symbol
	}
	return c.String()
}

// GetStats returns per-predicate fact counts.
func (e *Engine) GetStats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	counts := make(map[string]int)
	for _, sym := range e.store.ListPredicates() {
		n := 0
		_ = e.store.GetFacts(ast.NewQuery(sym), func(ast.Atom) error {
			n++
			return nil
		})
		counts[sym.Symbol] = n
	}
	return Stats{
		TotalFacts:      e.store.EstimateFactCount(),
		PredicateCounts: counts,
	}
}

// Clear removes all facts and keeps the program.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = factstore.NewSimpleInMemoryStore()
	e.factCount = 0
}

// Close waits for an abandoned evaluation to return and drops all facts.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.waitAbandonedLocked()
	e.store = factstore.NewSimpleInMemoryStore()
	e.factCount = 0
	return nil
}
