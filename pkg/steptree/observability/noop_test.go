package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordExpansion(ctx, "algebra", 10*time.Millisecond, nil)
		m.RecordExpansion(ctx, "algebra", 10*time.Millisecond, errors.New("x"))
		m.RecordStop(ctx, "atomic")
		m.RecordSessionSave(ctx, 1024, nil)
		m.RecordSessionSave(ctx, 0, errors.New("x"))
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	t.Run("spans return the context unchanged", func(t *testing.T) {
		gotCtx, span := sm.StartExpandSpan(ctx, "sess-1", "1")
		assert.Equal(t, ctx, gotCtx)
		assert.NotNil(t, span)

		gotCtx, span = sm.StartDecomposeSpan(ctx, "1")
		assert.Equal(t, ctx, gotCtx)
		assert.NotNil(t, span)

		gotCtx, span = sm.StartSaveSpan(ctx, "sess-1")
		assert.Equal(t, ctx, gotCtx)
		assert.NotNil(t, span)
	})

	t.Run("EndSpanWithError does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_, span := sm.StartExpandSpan(ctx, "s", "1")
			sm.EndSpanWithError(span, nil)
			sm.EndSpanWithError(span, errors.New("x"))
			sm.EndSpanWithError(nil, nil)
		})
	})
}
