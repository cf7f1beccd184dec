// Package decompose defines the client interface for the external
// decomposition service that breaks a solution step into sub-steps.
package decompose

// Request is one decomposition call for a single step.
type Request struct {
	// Step identity and content.
	StepID         string `json:"step_id"`
	Path           string `json:"path"`
	Title          string `json:"title"`
	Explanation    string `json:"explanation"`
	MathExpression string `json:"math_expression,omitempty"`

	// Problem context.
	ProblemStatement string `json:"problem_statement"`
	Topic            string `json:"topic"`
	CurrentDepth     int    `json:"current_depth"`

	// AncestorSummaries give the service the path from root to this step
	// without unbounded payload growth: label + title + one-line summary,
	// not full explanation text.
	AncestorSummaries []AncestorSummary `json:"ancestor_summaries,omitempty"`
}

// AncestorSummary is a compact description of one ancestor step.
type AncestorSummary struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Response is the service's reply: either sub-steps or a stop reason.
// The interpreter in the steptree package normalizes it; an empty reply
// (no sub-steps, no stop reason) is a malformed response.
type Response struct {
	SubSteps   []SubStep `json:"sub_steps,omitempty"`
	StopReason string    `json:"stop_reason,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// SubStep is one returned child step, before the interpreter assigns it
// an ID, order, and path.
type SubStep struct {
	Title          string `json:"title"`
	Explanation    string `json:"explanation"`
	MathExpression string `json:"math_expression,omitempty"`

	// CanExpand defaults to true when the service omits it.
	CanExpand *bool `json:"can_expand,omitempty"`
}

// Expandable resolves the CanExpand default.
func (s SubStep) Expandable() bool {
	if s.CanExpand == nil {
		return true
	}
	return *s.CanExpand
}
