package layout

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/kintree/pkg/errors"
)

// Strategy identifies a layout algorithm.
type Strategy string

// Built-in strategies.
const (
	StrategyHierarchical Strategy = "hierarchical"
	StrategyCircular     Strategy = "circular"
	StrategyGrid         Strategy = "grid"
	StrategyRadial       Strategy = "radial"
)

// Func computes a layout. Implementations must not mutate nodes or edges and
// must return every input node, in input order, and every input edge.
type Func func(nodes []Node, edges []Edge, cfg Config, opts Options) Result

// builtins is the dispatch table every Engine starts from.
var builtins = map[Strategy]Func{
	StrategyHierarchical: Hierarchical,
	StrategyCircular:     Circular,
	StrategyGrid:         Grid,
	StrategyRadial:       Radial,
}

// Engine dispatches a strategy name to its layout function with a fixed
// Config. It is safe for concurrent use.
type Engine struct {
	cfg Config

	mu    sync.RWMutex
	table map[Strategy]Func
}

// New returns an Engine with the built-in strategies.
func New(cfg Config) *Engine {
	table := make(map[Strategy]Func, len(builtins))
	for s, fn := range builtins {
		table[s] = fn
	}
	return &Engine{cfg: cfg, table: table}
}

// Config returns the configuration the Engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Register adds or replaces a strategy.
func (e *Engine) Register(s Strategy, fn Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table[s] = fn
}

// Has reports whether s is registered.
func (e *Engine) Has(s Strategy) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.table[s]
	return ok
}

// Strategies returns the registered strategy names, sorted.
func (e *Engine) Strategies() []Strategy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Strategy, 0, len(e.table))
	for s := range e.table {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Layout runs strategy s. An unknown strategy returns copies of the input
// unchanged; use ParseStrategy first when a typo should be an error.
func (e *Engine) Layout(s Strategy, nodes []Node, edges []Edge, opts Options) Result {
	e.mu.RLock()
	fn, ok := e.table[s]
	e.mu.RUnlock()
	if !ok {
		return passthrough(nodes, edges)
	}
	return fn(nodes, edges, e.cfg, opts)
}

// ParseStrategy maps a name to a built-in strategy, ignoring case.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := builtins[s]; ok {
		return s, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStrategy,
		"unknown strategy: %q (must be one of: circular, grid, hierarchical, radial)", name)
}

// Strategies returns the built-in strategy names, sorted.
func Strategies() []Strategy {
	out := make([]Strategy, 0, len(builtins))
	for s := range builtins {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
