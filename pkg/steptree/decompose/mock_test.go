package decompose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_CannedResponse(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient(&Response{StopReason: "atomic"})

	resp, err := mock.Decompose(ctx, Request{Path: "1"})
	require.NoError(t, err)
	assert.Equal(t, "atomic", resp.StopReason)

	// same response on every call
	resp, err = mock.Decompose(ctx, Request{Path: "2"})
	require.NoError(t, err)
	assert.Equal(t, "atomic", resp.StopReason)
	assert.Equal(t, 2, mock.CallCount())
}

func TestMockClient_ResponseSequence(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient(nil).WithResponses(
		&Response{StopReason: "atomic"},
		&Response{StopReason: "loop_risk"},
	)

	resp, _ := mock.Decompose(ctx, Request{})
	assert.Equal(t, "atomic", resp.StopReason)
	resp, _ = mock.Decompose(ctx, Request{})
	assert.Equal(t, "loop_risk", resp.StopReason)

	// cycles when exhausted
	resp, _ = mock.Decompose(ctx, Request{})
	assert.Equal(t, "atomic", resp.StopReason)
}

func TestMockClient_Error(t *testing.T) {
	mock := NewMockClient(nil).WithError(errors.New("boom"))

	_, err := mock.Decompose(context.Background(), Request{})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, mock.CallCount())
}

func TestMockClient_DecomposeFunc(t *testing.T) {
	mock := NewMockClient(nil).WithDecomposeFunc(
		func(ctx context.Context, req Request) (*Response, error) {
			return &Response{Message: "saw " + req.Path}, nil
		})

	resp, err := mock.Decompose(context.Background(), Request{Path: "1.3"})
	require.NoError(t, err)
	assert.Equal(t, "saw 1.3", resp.Message)
}

func TestMockClient_RecordsCalls(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient(&Response{})

	assert.Nil(t, mock.LastCall())

	mock.Decompose(ctx, Request{Path: "1"})
	mock.Decompose(ctx, Request{Path: "1.1"})

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "1", calls[0].Path)
	assert.Equal(t, "1.1", mock.LastCall().Path)

	mock.Reset()
	assert.Equal(t, 0, mock.CallCount())
	assert.Nil(t, mock.LastCall())
}

func TestSubStep_Expandable(t *testing.T) {
	yes, no := true, false

	assert.True(t, SubStep{}.Expandable())
	assert.True(t, SubStep{CanExpand: &yes}.Expandable())
	assert.False(t, SubStep{CanExpand: &no}.Expandable())
}
