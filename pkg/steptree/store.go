package steptree

import (
	"strings"
	"sync"
)

// Store is the in-memory expansion tree for one active session view.
// It owns the path -> ExpansionOutcome map; mutations only flow from
// the Store outward to persistence, never the reverse while the
// session is active.
//
// Store is safe for concurrent use. Each path's record is independent;
// the single-expansion-at-a-time rule is a UI policy enforced by the
// Expander, not here.
type Store struct {
	mu       sync.RWMutex
	roots    []Step
	outcomes map[string]ExpansionOutcome
	maxDepth int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxDepth overrides the expansion depth cap.
// Default: DefaultMaxDepth.
func WithMaxDepth(depth int) StoreOption {
	return func(s *Store) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// NewStore creates a Store over the given root steps (the base solution,
// a flat list at depth 0). Root steps missing a path are assigned
// "1".."n" in order.
func NewStore(roots []Step, opts ...StoreOption) *Store {
	s := &Store{
		roots:    make([]Step, len(roots)),
		outcomes: make(map[string]ExpansionOutcome),
		maxDepth: DefaultMaxDepth,
	}
	copy(s.roots, roots)
	for i := range s.roots {
		if s.roots[i].Path == "" {
			s.roots[i].Path, _ = ChildPath(RootPath, i+1)
		}
		if s.roots[i].Order == 0 {
			s.roots[i].Order = i + 1
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxDepth returns the configured expansion depth cap.
func (s *Store) MaxDepth() int {
	return s.maxDepth
}

// Roots returns a copy of the root steps.
func (s *Store) Roots() []Step {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roots := make([]Step, len(s.roots))
	copy(roots, s.roots)
	return roots
}

// Expand records the outcome for path. It is idempotent by refusal:
// a path with a recorded outcome rejects with ErrAlreadyExpanded and the
// store is left unchanged. Use Clear to redo an expansion.
//
// Returns *PathError for malformed paths, ErrStepNotFound if the path
// addresses no step, and *OutcomeError when the outcome is neither a
// non-empty child list nor a valid stop.
func (s *Store) Expand(path string, outcome ExpansionOutcome) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if err := outcome.validate(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(path); !ok {
		return ErrStepNotFound
	}
	if _, ok := s.outcomes[path]; ok {
		return ErrAlreadyExpanded
	}

	s.outcomes[path] = outcome
	return nil
}

// Get returns the recorded outcome for path. The boolean distinguishes
// the third state: false means the expansion was never attempted, which
// is distinct from both recorded children and a recorded stop.
func (s *Store) Get(path string) (ExpansionOutcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.outcomes[path]
	return o, ok
}

// Clear returns path to the not-attempted state, discarding its recorded
// outcome and the recorded outcomes of all descendants (their steps are
// discarded along with the parent's children). Clearing a path with no
// recorded outcome is a no-op.
//
// A later re-expansion assigns fresh step IDs, so references to the old
// children never alias the new ones.
func (s *Store) Clear(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.outcomes, path)
	prefix := path + "."
	for p := range s.outcomes {
		if strings.HasPrefix(p, prefix) {
			delete(s.outcomes, p)
		}
	}
	return nil
}

// Step resolves the step addressed by path, walking recorded outcomes
// from the root. The boolean is false if no such step exists.
func (s *Store) Step(path string) (Step, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookup(path)
}

// IsExpandable reports whether path may be expanded: the step exists and
// allows expansion, no outcome is recorded yet, and its depth is below
// the cap.
func (s *Store) IsExpandable(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	step, ok := s.lookup(path)
	if !ok || !step.CanExpand {
		return false
	}
	if _, recorded := s.outcomes[path]; recorded {
		return false
	}
	depth, err := PathDepth(path)
	if err != nil {
		return false
	}
	return depth < s.maxDepth
}

// Attempted reports how many paths have a recorded outcome.
func (s *Store) Attempted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.outcomes)
}

// Outcomes returns a copy of the path -> outcome map, for serialization.
func (s *Store) Outcomes() map[string]ExpansionOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]ExpansionOutcome, len(s.outcomes))
	for p, o := range s.outcomes {
		out[p] = o
	}
	return out
}

// lookup resolves path without locking. Callers hold s.mu.
func (s *Store) lookup(path string) (Step, bool) {
	ancestors, err := AncestorPaths(path)
	if err != nil {
		return Step{}, false
	}

	siblings := s.roots
	for _, ancestor := range ancestors {
		o, ok := s.outcomes[ancestor]
		if !ok || o.Terminal() {
			return Step{}, false
		}
		siblings = o.Steps
	}

	idx, err := PathIndex(path)
	if err != nil || idx > len(siblings) {
		return Step{}, false
	}
	return siblings[idx-1], true
}

// RenderedStep is one row of the flattened tree the UI renders.
type RenderedStep struct {
	Step

	// Depth is the step's depth, precomputed for indentation.
	Depth int `json:"depth"`

	// Attempted is true if an outcome is recorded for this step.
	Attempted bool `json:"attempted"`

	// Expandable mirrors IsExpandable for this step.
	Expandable bool `json:"expandable"`

	// StopReason and StopMessage annotate a terminal outcome, if any.
	StopReason  StopReason `json:"stop_reason,omitempty"`
	StopMessage string     `json:"stop_message,omitempty"`
}

// Flatten produces a depth-first, order-preserving flattening of the root
// steps plus all recorded children. It is a pure function of the current
// store state with no hidden cursor, so the UI can re-derive it on every
// mutation.
func (s *Store) Flatten() []RenderedStep {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []RenderedStep
	for _, root := range s.roots {
		out = s.flattenInto(out, root, 0)
	}
	return out
}

func (s *Store) flattenInto(out []RenderedStep, step Step, depth int) []RenderedStep {
	outcome, attempted := s.outcomes[step.Path]

	rendered := RenderedStep{
		Step:       step,
		Depth:      depth,
		Attempted:  attempted,
		Expandable: step.CanExpand && !attempted && depth < s.maxDepth,
	}
	if attempted && outcome.Terminal() {
		rendered.StopReason = outcome.StopReason
		rendered.StopMessage = outcome.Message
	}
	out = append(out, rendered)

	if attempted && !outcome.Terminal() {
		for _, child := range outcome.Steps {
			out = s.flattenInto(out, child, depth+1)
		}
	}
	return out
}
