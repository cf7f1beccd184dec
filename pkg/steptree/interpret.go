package steptree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/randalmurphal/steptree/pkg/steptree/decompose"
)

// Interpret normalizes a raw decomposition reply into exactly one
// ExpansionOutcome for the step at parentPath.
//
// A declared stop reason passes through verbatim (empty message replaced
// by the reason's default; an unknown reason string is downgraded to
// insufficient_context, carrying the raw reason in the message). A reply
// with neither sub-steps nor a stop reason is a malformed response and
// becomes insufficient_context: an empty child list is never stored as
// "expanded with zero children".
//
// Sub-steps are given a fresh ID per attempt, an order equal to their
// position (1-based), and a path extending parentPath by that order.
// A sub-step with an empty title or explanation rejects the whole reply
// with a *ServiceError, leaving the path retryable.
func Interpret(parentPath string, resp *decompose.Response) (ExpansionOutcome, error) {
	if err := ValidatePath(parentPath); err != nil {
		return ExpansionOutcome{}, err
	}
	if resp == nil {
		return ExpansionOutcome{}, &ServiceError{Path: parentPath, Op: "interpret", Err: fmt.Errorf("nil response")}
	}

	if reason := strings.TrimSpace(resp.StopReason); reason != "" {
		stop := StopReason(reason)
		if !stop.Valid() {
			message := fmt.Sprintf("service declared unrecognized stop reason %q", reason)
			if resp.Message != "" {
				message += ": " + resp.Message
			}
			return StopOutcome(StopInsufficientContext, message), nil
		}
		return StopOutcome(stop, resp.Message), nil
	}

	if len(resp.SubSteps) == 0 {
		return StopOutcome(StopInsufficientContext, ""), nil
	}

	steps := make([]Step, len(resp.SubSteps))
	for i, sub := range resp.SubSteps {
		if strings.TrimSpace(sub.Title) == "" || strings.TrimSpace(sub.Explanation) == "" {
			return ExpansionOutcome{}, &ServiceError{
				Path: parentPath,
				Op:   "interpret",
				Err:  fmt.Errorf("sub-step %d has an empty title or explanation", i+1),
			}
		}
		path, err := ChildPath(parentPath, i+1)
		if err != nil {
			return ExpansionOutcome{}, err
		}
		steps[i] = Step{
			ID:             uuid.New().String(),
			Path:           path,
			Order:          i + 1,
			Title:          sub.Title,
			Explanation:    sub.Explanation,
			MathExpression: sub.MathExpression,
			CanExpand:      sub.Expandable(),
		}
	}
	return ChildrenOutcome(steps), nil
}
