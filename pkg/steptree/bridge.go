package steptree

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/steptree/pkg/steptree/observability"
	"github.com/randalmurphal/steptree/pkg/steptree/sessionstore"
)

// Bridge mirrors the in-memory tree store to durable session storage.
// Mutations only flow tree -> storage while a session is active; the
// serialized copy never aliases the live store.
type Bridge struct {
	store   sessionstore.Store
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithBridgeLogger sets the logger used for persistence events.
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) { b.logger = logger }
}

// WithBridgeMetrics sets the metrics recorder for persistence events.
func WithBridgeMetrics(m observability.MetricsRecorder) BridgeOption {
	return func(b *Bridge) { b.metrics = m }
}

// WithBridgeTracing sets the span manager for persistence events.
func WithBridgeTracing(s observability.SpanManager) BridgeOption {
	return func(b *Bridge) { b.spans = s }
}

// NewBridge creates a persistence bridge over the given session store.
func NewBridge(store sessionstore.Store, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		store:   store,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Save serializes the session with the tree's current root steps and
// outcome map and writes it through to durable storage. Failures wrap as
// *PersistError; the caller's in-memory state is never rolled back.
func (b *Bridge) Save(ctx context.Context, sess *Session, tree *Store) (err error) {
	_, span := b.spans.StartSaveSpan(ctx, sess.ID)
	defer func() { b.spans.EndSpanWithError(span, err) }()

	sess.Steps = tree.Roots()
	sess.Outcomes = tree.Outcomes()

	data, err := sess.Marshal()
	if err != nil {
		b.metrics.RecordSessionSave(ctx, 0, err)
		return &PersistError{SessionID: sess.ID, Op: "serialize", Err: err}
	}

	meta := sessionstore.Meta{Topic: sess.Topic, CreatedAt: sess.CreatedAt}
	if err := b.store.Save(ctx, sess.ID, data, meta); err != nil {
		b.metrics.RecordSessionSave(ctx, 0, err)
		observability.LogSessionSaveError(b.logger, sess.ID, err)
		return &PersistError{SessionID: sess.ID, Op: "save", Err: err}
	}

	b.metrics.RecordSessionSave(ctx, int64(len(data)), nil)
	observability.LogSessionSaved(b.logger, sess.ID, len(data))
	return nil
}

// Load reads a session and rebuilds an equivalent tree store.
func (b *Bridge) Load(ctx context.Context, sessionID string, opts ...StoreOption) (*Session, *Store, error) {
	data, err := b.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, &PersistError{SessionID: sessionID, Op: "load", Err: err}
	}

	sess, err := UnmarshalSession(data)
	if err != nil {
		return nil, nil, &PersistError{SessionID: sessionID, Op: "deserialize", Err: err}
	}

	return sess, NewStoreFromSession(sess, opts...), nil
}

// Delete removes a session from durable storage.
func (b *Bridge) Delete(ctx context.Context, sessionID string) error {
	if err := b.store.Delete(ctx, sessionID); err != nil {
		return &PersistError{SessionID: sessionID, Op: "delete", Err: err}
	}
	return nil
}

// History lists persisted sessions, newest first.
func (b *Bridge) History(ctx context.Context) ([]sessionstore.Info, error) {
	return b.store.List(ctx)
}
