/*
Package steptree implements the step-expansion tree at the core of an AI
STEM tutor. A worked solution arrives as a flat list of steps; the user can
ask for any step to be broken down into sub-steps, recursively, up to a
depth cap. Breakdowns come from an external decomposition service; this
package owns everything around that call: path addressing, the request
context, response normalization, the expansion tree, and session
persistence.

# Paths

Every step is addressed by a dot-delimited path of 1-based indices:
"2" is the second root step, "2.1" its first sub-step. Paths sort
numerically segment by segment, so "2.10" comes after "2.9".

	path, _ := steptree.ChildPath("2", 1) // "2.1"
	depth, _ := steptree.PathDepth("2.1") // 1

# The tree store

Store maps each path to at most one ExpansionOutcome: either a non-empty
list of child steps or a stop reason (atomic, max_depth, loop_risk,
insufficient_context). A path with no recorded outcome is "not attempted",
which is distinct from both. Recording is idempotent by refusal: a second
Expand on the same path is rejected, and Clear is the only way back.

	tree := steptree.NewStore(rootSteps)
	err := tree.Expand("1", steptree.ChildrenOutcome(children))
	rows := tree.Flatten() // depth-first rows for the UI

# Expansion flow

Expander wires the flow end to end: depth guard, ancestor-summary request
building, the service call, interpretation, recording, and write-through
persistence. One expansion runs at a time per session view.

	expander := steptree.NewExpander(client,
	    steptree.WithBridge(bridge),
	    steptree.WithLogger(logger))
	expander.Activate(sess.ID)
	outcome, err := expander.Expand(ctx, sess, tree, "1")

A failed service call leaves the path retryable. A failed durable write
never rolls back the in-memory tree; it is reported separately.

# Subpackages

  - decompose: decomposition service client (HTTP + mock)
  - sessionstore: durable session storage (memory, SQLite) with retention
  - observability: slog helpers, OTel metrics and tracing
  - config: yaml/json configuration and typed settings
  - ratelimit: per-user token bucket with free/pro tiers
*/
package steptree
