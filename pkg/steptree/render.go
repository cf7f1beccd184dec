package steptree

import "time"

// DisplayTree is the snapshot the UI renders: session header plus the
// flattened expansion tree. Presentation, styling, and input capture
// live entirely outside this core.
type DisplayTree struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Problem   string    `json:"problem"`
	Topic     string    `json:"topic"`

	// Steps is the depth-first flattening of the tree, in render order.
	Steps []RenderedStep `json:"steps"`
}

// Render produces a display snapshot of the session and its tree.
// It is a pure function of the store state: the same state always
// renders the same tree.
func Render(sess *Session, tree *Store) DisplayTree {
	return DisplayTree{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
		Problem:   sess.Problem,
		Topic:     sess.Topic,
		Steps:     tree.Flatten(),
	}
}
