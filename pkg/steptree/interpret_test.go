package steptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/steptree/pkg/steptree/decompose"
)

func TestInterpret_SubSteps(t *testing.T) {
	no := false
	resp := &decompose.Response{
		SubSteps: []decompose.SubStep{
			{Title: "Subtract 3", Explanation: "Subtract 3 from both sides."},
			{Title: "Simplify", Explanation: "Combine the constants.", MathExpression: "2x = 8"},
			{Title: "State result", Explanation: "Read off x.", CanExpand: &no},
		},
	}

	outcome, err := Interpret("2.1", resp)
	require.NoError(t, err)
	require.False(t, outcome.Terminal())
	require.Len(t, outcome.Steps, 3)

	for i, step := range outcome.Steps {
		assert.NotEmpty(t, step.ID)
		assert.Equal(t, i+1, step.Order)
	}
	assert.Equal(t, "2.1.1", outcome.Steps[0].Path)
	assert.Equal(t, "2.1.2", outcome.Steps[1].Path)
	assert.Equal(t, "2.1.3", outcome.Steps[2].Path)
	assert.Equal(t, "2x = 8", outcome.Steps[1].MathExpression)

	// canExpand defaults true, honors explicit false
	assert.True(t, outcome.Steps[0].CanExpand)
	assert.False(t, outcome.Steps[2].CanExpand)
}

// TestInterpret_FreshIDs checks each attempt assigns new IDs, so a
// clear-and-retry cycle never aliases stale references.
func TestInterpret_FreshIDs(t *testing.T) {
	resp := &decompose.Response{
		SubSteps: []decompose.SubStep{{Title: "a", Explanation: "b"}},
	}

	first, err := Interpret("1", resp)
	require.NoError(t, err)
	second, err := Interpret("1", resp)
	require.NoError(t, err)

	assert.NotEqual(t, first.Steps[0].ID, second.Steps[0].ID)
}

func TestInterpret_StopReasonPassthrough(t *testing.T) {
	resp := &decompose.Response{StopReason: "atomic", Message: "already minimal"}

	outcome, err := Interpret("1", resp)
	require.NoError(t, err)
	assert.True(t, outcome.Terminal())
	assert.Equal(t, StopAtomic, outcome.StopReason)
	assert.Equal(t, "already minimal", outcome.Message)
}

func TestInterpret_StopReasonDefaultMessage(t *testing.T) {
	resp := &decompose.Response{StopReason: "loop_risk"}

	outcome, err := Interpret("1", resp)
	require.NoError(t, err)
	assert.Equal(t, StopLoopRisk, outcome.StopReason)
	assert.Equal(t, StopLoopRisk.DefaultMessage(), outcome.Message)
}

func TestInterpret_UnknownStopReason(t *testing.T) {
	resp := &decompose.Response{StopReason: "too_hard", Message: "huh"}

	outcome, err := Interpret("1", resp)
	require.NoError(t, err)
	assert.Equal(t, StopInsufficientContext, outcome.StopReason)
	assert.Contains(t, outcome.Message, "too_hard")
}

// TestInterpret_EmptyReply checks the malformed no-steps-no-reason reply
// becomes insufficient_context, never an empty children outcome.
func TestInterpret_EmptyReply(t *testing.T) {
	outcome, err := Interpret("1", &decompose.Response{})
	require.NoError(t, err)
	assert.True(t, outcome.Terminal())
	assert.Equal(t, StopInsufficientContext, outcome.StopReason)
	assert.Empty(t, outcome.Steps)
}

func TestInterpret_RejectsBlankSubSteps(t *testing.T) {
	tests := []struct {
		name string
		sub  decompose.SubStep
	}{
		{"empty title", decompose.SubStep{Title: "", Explanation: "x"}},
		{"empty explanation", decompose.SubStep{Title: "x", Explanation: ""}},
		{"whitespace title", decompose.SubStep{Title: "   ", Explanation: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpret("1", &decompose.Response{SubSteps: []decompose.SubStep{tt.sub}})
			var svcErr *ServiceError
			assert.ErrorAs(t, err, &svcErr)
		})
	}
}

func TestInterpret_NilResponse(t *testing.T) {
	_, err := Interpret("1", nil)
	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestInterpret_MalformedParentPath(t *testing.T) {
	_, err := Interpret("not-a-path", &decompose.Response{StopReason: "atomic"})
	var pathErr *PathError
	assert.ErrorAs(t, err, &pathErr)
}
