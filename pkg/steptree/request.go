package steptree

import (
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/steptree/pkg/steptree/decompose"
)

// summaryMaxLen caps the one-line ancestor summary sent to the service.
const summaryMaxLen = 140

// BuildRequest assembles the decomposition request for path: step identity
// and content, the problem statement and topic, the current depth, and a
// compact summary of every ancestor on the path from root to the step.
//
// If the step already sits at the store's depth cap, the request is
// short-circuited locally: BuildRequest returns a nil request and a
// max_depth outcome, and the external service must not be contacted.
// This is a cost-control and recursion guard, not a service property.
func BuildRequest(store *Store, sess *Session, path string) (*decompose.Request, *ExpansionOutcome, error) {
	if err := ValidatePath(path); err != nil {
		return nil, nil, err
	}

	step, ok := store.Step(path)
	if !ok {
		return nil, nil, ErrStepNotFound
	}
	if !step.CanExpand {
		return nil, nil, ErrNotExpandable
	}

	depth, err := PathDepth(path)
	if err != nil {
		return nil, nil, err
	}
	if depth >= store.MaxDepth() {
		outcome := StopOutcome(StopMaxDepth, "")
		return nil, &outcome, nil
	}

	ancestors, err := AncestorPaths(path)
	if err != nil {
		return nil, nil, err
	}
	summaries := make([]decompose.AncestorSummary, 0, len(ancestors))
	for _, ancestorPath := range ancestors {
		ancestor, ok := store.Step(ancestorPath)
		if !ok {
			return nil, nil, ErrStepNotFound
		}
		summaries = append(summaries, decompose.AncestorSummary{
			Path:    ancestor.Path,
			Title:   ancestor.Title,
			Summary: summarize(ancestor.Explanation),
		})
	}

	return &decompose.Request{
		StepID:            step.ID,
		Path:              step.Path,
		Title:             step.Title,
		Explanation:       step.Explanation,
		MathExpression:    step.MathExpression,
		ProblemStatement:  sess.Problem,
		Topic:             sess.Topic,
		CurrentDepth:      depth,
		AncestorSummaries: summaries,
	}, nil, nil
}

// summarize reduces an explanation to its first line, truncated on a
// rune boundary.
func summarize(explanation string) string {
	line := explanation
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) > summaryMaxLen {
		cut := summaryMaxLen
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = strings.TrimSpace(line[:cut]) + "..."
	}
	return line
}
