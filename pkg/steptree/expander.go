package steptree

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/steptree/pkg/steptree/decompose"
	"github.com/randalmurphal/steptree/pkg/steptree/observability"
	"github.com/randalmurphal/steptree/pkg/steptree/ratelimit"
)

// Expander drives the expansion flow for the UI boundary: build the
// request, call the decomposition service, interpret the reply, record
// the outcome, then mirror the session to durable storage.
//
// One expansion per session view runs at a time: a single in-flight slot,
// not per-path locks. This is a UX throttle above the Store, which is
// itself safe for concurrent calls on different paths.
type Expander struct {
	client  decompose.Client
	bridge  *Bridge
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	onPersistFailure func(error)

	mu       sync.Mutex
	inflight bool
	active   string // active session ID for the stale-response guard
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) ExpanderOption {
	return func(e *Expander) { e.logger = logger }
}

// WithBridge enables write-through persistence after each expansion.
func WithBridge(bridge *Bridge) ExpanderOption {
	return func(e *Expander) { e.bridge = bridge }
}

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(m observability.MetricsRecorder) ExpanderOption {
	return func(e *Expander) { e.metrics = m }
}

// WithTracing sets the span manager. Default: no-op.
func WithTracing(s observability.SpanManager) ExpanderOption {
	return func(e *Expander) { e.spans = s }
}

// WithRateLimiter throttles expansion requests per user.
func WithRateLimiter(l *ratelimit.Limiter) ExpanderOption {
	return func(e *Expander) { e.limiter = l }
}

// WithPersistFailureHandler receives durable-write failures. Persistence
// failures never fail the expansion itself; without a handler they are
// only logged and counted.
func WithPersistFailureHandler(fn func(error)) ExpanderOption {
	return func(e *Expander) { e.onPersistFailure = fn }
}

// NewExpander creates an expander over a decomposition client.
func NewExpander(client decompose.Client, opts ...ExpanderOption) *Expander {
	e := &Expander{
		client:  client,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Activate marks sessionID as the active session view. Decomposition
// results that arrive for any other session are discarded; navigating
// away therefore invalidates in-flight work.
func (e *Expander) Activate(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = sessionID
}

// Expand runs one expansion attempt for path and records the outcome in
// tree. The returned outcome is also recorded in the store unless an
// error is returned.
//
// Failure modes:
//   - ErrExpansionInFlight: another expansion is running; nothing happens.
//   - ErrRateLimited: the user's budget is exhausted; nothing happens.
//   - *PathError, ErrStepNotFound, ErrNotExpandable, ErrAlreadyExpanded:
//     structural misuse, rejected synchronously.
//   - *ServiceError / context cancellation: the service call failed; the
//     path stays NotAttempted so the user can retry manually.
//   - ErrStaleResponse: the session stopped being active mid-call; the
//     result is discarded and the store is untouched.
//
// A durable-write failure after a successful in-memory expand is NOT an
// error here: the outcome is returned, the store keeps the children, and
// the failure goes to the persist failure handler.
func (e *Expander) Expand(ctx context.Context, sess *Session, tree *Store, path string, opts ...ExpandCallOption) (outcome ExpansionOutcome, err error) {
	if sess == nil {
		return ExpansionOutcome{}, ErrNilSession
	}

	callCfg := expandCallConfig{}
	for _, opt := range opts {
		opt(&callCfg)
	}

	if e.limiter != nil && callCfg.userID != "" {
		if d := e.limiter.Allow(callCfg.userID, callCfg.tier); !d.Allowed {
			return ExpansionOutcome{}, ErrRateLimited
		}
	}

	if err := e.acquire(); err != nil {
		return ExpansionOutcome{}, err
	}
	defer e.release()

	ctxSpan, span := e.spans.StartExpandSpan(ctx, sess.ID, path)
	defer func() { e.spans.EndSpanWithError(span, err) }()

	depth, derr := PathDepth(path)
	if derr != nil {
		return ExpansionOutcome{}, derr
	}
	observability.LogExpandStart(e.logger, sess.ID, path, depth)

	start := time.Now()
	outcome, err = e.expand(ctxSpan, sess, tree, path)
	duration := time.Since(start)
	e.metrics.RecordExpansion(ctx, sess.Topic, duration, err)

	if err != nil {
		observability.LogExpandError(e.logger, sess.ID, path, err)
		return ExpansionOutcome{}, err
	}

	durationMs := float64(duration.Milliseconds())
	if outcome.Terminal() {
		e.metrics.RecordStop(ctx, string(outcome.StopReason))
		observability.LogExpandStop(e.logger, sess.ID, path, string(outcome.StopReason), durationMs)
	} else {
		observability.LogExpandChildren(e.logger, sess.ID, path, len(outcome.Steps), durationMs)
	}

	// Write-through after the in-memory update. The UI renders from the
	// store immediately; a failed durable write is surfaced separately
	// and never rolls the expansion back.
	if e.bridge != nil {
		if perr := e.bridge.Save(ctx, sess, tree); perr != nil {
			if e.onPersistFailure != nil {
				e.onPersistFailure(perr)
			}
		}
	}

	return outcome, nil
}

// expand is the un-instrumented core of one attempt.
func (e *Expander) expand(ctx context.Context, sess *Session, tree *Store, path string) (ExpansionOutcome, error) {
	if _, recorded := tree.Get(path); recorded {
		return ExpansionOutcome{}, ErrAlreadyExpanded
	}

	req, local, err := BuildRequest(tree, sess, path)
	if err != nil {
		return ExpansionOutcome{}, err
	}

	// Depth cap reached: record the local outcome, no network call.
	if local != nil {
		if err := tree.Expand(path, *local); err != nil {
			return ExpansionOutcome{}, err
		}
		return *local, nil
	}

	decomposeCtx, span := e.spans.StartDecomposeSpan(ctx, path)
	resp, err := e.client.Decompose(decomposeCtx, *req)
	e.spans.EndSpanWithError(span, err)
	if err != nil {
		return ExpansionOutcome{}, &ServiceError{Path: path, Op: "decompose", Err: err}
	}

	// Stale-response guard: discard results for sessions that stopped
	// being active while the call was in flight.
	if !e.isActive(sess.ID) {
		observability.LogStaleResponse(e.logger, sess.ID, path)
		return ExpansionOutcome{}, ErrStaleResponse
	}

	outcome, err := Interpret(path, resp)
	if err != nil {
		return ExpansionOutcome{}, err
	}

	if err := tree.Expand(path, outcome); err != nil {
		return ExpansionOutcome{}, err
	}
	return outcome, nil
}

// isActive reports whether sessionID is still the active session view.
// An expander that never saw Activate accepts everything.
func (e *Expander) isActive(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active == "" || e.active == sessionID
}

// acquire takes the single in-flight slot.
func (e *Expander) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inflight {
		return ErrExpansionInFlight
	}
	e.inflight = true
	return nil
}

// release frees the in-flight slot.
func (e *Expander) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inflight = false
}

// expandCallConfig holds per-call options.
type expandCallConfig struct {
	userID string
	tier   ratelimit.Tier
}

// ExpandCallOption configures a single Expand call.
type ExpandCallOption func(*expandCallConfig)

// AsUser attributes the call to a user for rate limiting.
func AsUser(userID string, tier ratelimit.Tier) ExpandCallOption {
	return func(c *expandCallConfig) {
		c.userID = userID
		c.tier = tier
	}
}
