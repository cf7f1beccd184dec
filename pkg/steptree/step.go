package steptree

// DefaultMaxDepth is the deepest expansion level the builder will request.
// A step at this depth is closed with StopMaxDepth locally, without
// contacting the decomposition service.
const DefaultMaxDepth = 3

// Step is one node of a solution explanation tree, addressable by path.
//
// Children are not stored on the step itself. The tree Store keeps a
// path -> ExpansionOutcome map, which keeps "never attempted" and
// "attempted" distinct by construction.
type Step struct {
	// ID is an opaque stable identifier, assigned once and never reused.
	ID string `json:"id"`

	// Path is the dot-delimited sequence of 1-based indices from the root,
	// e.g. "2.1". Unique within a tree; also the sort key.
	Path string `json:"path"`

	// Order is the step's 1-based position among its siblings.
	Order int `json:"order"`

	// Title and Explanation are opaque content owned by the rendering layer.
	Title       string `json:"title"`
	Explanation string `json:"explanation"`

	// MathExpression is an optional LaTeX payload.
	MathExpression string `json:"math_expression,omitempty"`

	// CanExpand is false once the step is proven atomic or depth-capped.
	CanExpand bool `json:"can_expand"`
}

// Depth returns the step's depth in the tree (top-level steps are 0).
// Returns 0 for a malformed path.
func (s Step) Depth() int {
	d, err := PathDepth(s.Path)
	if err != nil {
		return 0
	}
	return d
}

// StopReason is a terminal classification explaining why a step was not
// further decomposed. Stop reasons are data, not errors.
type StopReason string

// Defined stop reasons.
const (
	// StopAtomic means the step cannot be meaningfully subdivided.
	StopAtomic StopReason = "atomic"

	// StopMaxDepth means the expansion depth cap was reached.
	StopMaxDepth StopReason = "max_depth"

	// StopLoopRisk means further breakdown would restate the step.
	StopLoopRisk StopReason = "loop_risk"

	// StopInsufficientContext means the service could not produce a useful
	// breakdown, including the malformed empty-reply case.
	StopInsufficientContext StopReason = "insufficient_context"
)

// Valid reports whether r is one of the defined stop reasons.
func (r StopReason) Valid() bool {
	switch r {
	case StopAtomic, StopMaxDepth, StopLoopRisk, StopInsufficientContext:
		return true
	}
	return false
}

// DefaultMessage returns the human-readable fallback for a reason,
// used when the service declares a reason with an empty message.
func (r StopReason) DefaultMessage() string {
	switch r {
	case StopAtomic:
		return "This step is already as simple as it gets."
	case StopMaxDepth:
		return "Maximum breakdown depth reached."
	case StopLoopRisk:
		return "Breaking this down further would just repeat the step."
	case StopInsufficientContext:
		return "Not enough context to break this step down."
	default:
		return "This step was not broken down further."
	}
}

// ExpansionOutcome is the result of one expansion attempt for a path:
// either a non-empty ordered list of child steps, or a stop reason with a
// message. Exactly one of the two shapes, never both, never neither.
type ExpansionOutcome struct {
	// Steps are the child steps, in order. Empty for terminal outcomes.
	Steps []Step `json:"steps,omitempty"`

	// StopReason is set for terminal outcomes.
	StopReason StopReason `json:"stop_reason,omitempty"`

	// Message is the human-readable explanation for a stop.
	Message string `json:"message,omitempty"`
}

// ChildrenOutcome builds a successful expansion outcome.
func ChildrenOutcome(steps []Step) ExpansionOutcome {
	return ExpansionOutcome{Steps: steps}
}

// StopOutcome builds a terminal outcome. An empty message is replaced by
// the reason's default.
func StopOutcome(reason StopReason, message string) ExpansionOutcome {
	if message == "" {
		message = reason.DefaultMessage()
	}
	return ExpansionOutcome{StopReason: reason, Message: message}
}

// Terminal reports whether the outcome is a stop rather than children.
func (o ExpansionOutcome) Terminal() bool {
	return o.StopReason != ""
}

// validate enforces the exactly-one-shape invariant.
func (o ExpansionOutcome) validate(path string) error {
	switch {
	case len(o.Steps) > 0 && o.StopReason != "":
		return &OutcomeError{Path: path, Reason: "has both sub-steps and a stop reason"}
	case len(o.Steps) == 0 && o.StopReason == "":
		return &OutcomeError{Path: path, Reason: "has neither sub-steps nor a stop reason"}
	case o.StopReason != "" && !o.StopReason.Valid():
		return &OutcomeError{Path: path, Reason: "unknown stop reason " + string(o.StopReason)}
	}
	return nil
}
