package steptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	sess := NewSession("Solve 2x + 3 = 11", "algebra", testRoots())
	tree := NewStoreFromSession(sess)
	require.NoError(t, tree.Expand("1", ChildrenOutcome(childSteps("1", "Subtract 3"))))

	display := Render(sess, tree)
	assert.Equal(t, sess.ID, display.SessionID)
	assert.Equal(t, sess.CreatedAt, display.CreatedAt)
	assert.Equal(t, "Solve 2x + 3 = 11", display.Problem)
	assert.Equal(t, "algebra", display.Topic)

	require.Len(t, display.Steps, 3)
	assert.Equal(t, "1", display.Steps[0].Path)
	assert.Equal(t, "1.1", display.Steps[1].Path)
	assert.Equal(t, "2", display.Steps[2].Path)
}

func TestRender_Deterministic(t *testing.T) {
	sess := NewSession("p", "t", testRoots())
	tree := NewStoreFromSession(sess)
	require.NoError(t, tree.Expand("2", StopOutcome(StopAtomic, "")))

	assert.Equal(t, Render(sess, tree), Render(sess, tree))
}
