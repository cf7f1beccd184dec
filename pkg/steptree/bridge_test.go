package steptree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/steptree/pkg/steptree/sessionstore"
)

func TestBridge_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	bridge := NewBridge(sessionstore.NewMemoryStore())

	sess := NewSession("Solve 2x + 3 = 11", "algebra", testRoots())
	tree := NewStoreFromSession(sess)
	require.NoError(t, tree.Expand("1", ChildrenOutcome(childSteps("1", "Subtract 3", "Simplify"))))

	require.NoError(t, bridge.Save(ctx, sess, tree))

	loadedSess, loadedTree, err := bridge.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loadedSess.ID)
	assert.Equal(t, sess.Problem, loadedSess.Problem)
	assert.Equal(t, 1, loadedTree.Attempted())

	step, ok := loadedTree.Step("1.2")
	require.True(t, ok)
	assert.Equal(t, "Simplify", step.Title)
}

// TestBridge_SaveMirrorsTree checks Save snapshots the tree state, not the
// session's stale copies.
func TestBridge_SaveMirrorsTree(t *testing.T) {
	ctx := context.Background()
	bridge := NewBridge(sessionstore.NewMemoryStore())

	sess := NewSession("p", "t", testRoots())
	tree := NewStoreFromSession(sess)
	require.NoError(t, bridge.Save(ctx, sess, tree))

	require.NoError(t, tree.Expand("2", StopOutcome(StopAtomic, "")))
	require.NoError(t, bridge.Save(ctx, sess, tree))

	_, loadedTree, err := bridge.Load(ctx, sess.ID)
	require.NoError(t, err)
	outcome, ok := loadedTree.Get("2")
	require.True(t, ok)
	assert.Equal(t, StopAtomic, outcome.StopReason)
}

func TestBridge_SaveFailure(t *testing.T) {
	ctx := context.Background()
	failing := &failingStore{err: errors.New("disk full")}
	bridge := NewBridge(failing)

	sess := NewSession("p", "t", testRoots())
	tree := NewStoreFromSession(sess)

	err := bridge.Save(ctx, sess, tree)
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
	assert.Equal(t, sess.ID, perr.SessionID)
}

func TestBridge_LoadErrors(t *testing.T) {
	ctx := context.Background()
	mem := sessionstore.NewMemoryStore()
	bridge := NewBridge(mem)

	_, _, err := bridge.Load(ctx, "missing")
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
	assert.ErrorIs(t, err, sessionstore.ErrNotFound)

	require.NoError(t, mem.Save(ctx, "corrupt", []byte("{not json"), sessionstore.Meta{}))
	_, _, err = bridge.Load(ctx, "corrupt")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "deserialize", perr.Op)
}

func TestBridge_DeleteAndHistory(t *testing.T) {
	ctx := context.Background()
	bridge := NewBridge(sessionstore.NewMemoryStore())

	sess := NewSession("p", "algebra", testRoots())
	tree := NewStoreFromSession(sess)
	require.NoError(t, bridge.Save(ctx, sess, tree))

	infos, err := bridge.History(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, sess.ID, infos[0].SessionID)
	assert.Equal(t, "algebra", infos[0].Topic)

	require.NoError(t, bridge.Delete(ctx, sess.ID))
	infos, err = bridge.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

// failingStore fails every write, for persistence-failure paths.
type failingStore struct {
	err error
}

var _ sessionstore.Store = (*failingStore)(nil)

func (f *failingStore) Save(context.Context, string, []byte, sessionstore.Meta) error {
	return f.err
}

func (f *failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, sessionstore.ErrNotFound
}

func (f *failingStore) Delete(context.Context, string) error { return f.err }

func (f *failingStore) List(context.Context) ([]sessionstore.Info, error) { return nil, f.err }

func (f *failingStore) Close() error { return nil }
