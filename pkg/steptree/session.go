package steptree

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionVersion is the current session record format version.
// Increment when making breaking changes to the session structure.
const SessionVersion = 1

// Session is one persisted problem-solving interaction: the root solution
// plus its expansion tree. It is created when the base solution is first
// produced and mutated in place as expansions occur.
type Session struct {
	// Metadata
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Root problem.
	Problem string `json:"problem"`
	Topic   string `json:"topic"`

	// Steps are the base solution: a flat list at depth 0.
	Steps []Step `json:"steps"`

	// Outcomes is the path -> outcome map mirrored from the tree store.
	Outcomes map[string]ExpansionOutcome `json:"outcomes,omitempty"`

	// Quiz holds attached quiz/score data, external to this core.
	Quiz json.RawMessage `json:"quiz,omitempty"`
}

// NewSession creates a session for a freshly produced base solution.
// Root steps are assigned IDs, orders, and paths "1".."n".
func NewSession(problem, topic string, roots []Step) *Session {
	steps := make([]Step, len(roots))
	copy(steps, roots)
	for i := range steps {
		if steps[i].ID == "" {
			steps[i].ID = uuid.New().String()
		}
		steps[i].Order = i + 1
		steps[i].Path, _ = ChildPath(RootPath, i+1)
	}
	return &Session{
		Version:   SessionVersion,
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Problem:   problem,
		Topic:     topic,
		Steps:     steps,
	}
}

// Marshal serializes the session to JSON.
func (s *Session) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSession deserializes a session from JSON, checking the format
// version.
func UnmarshalSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Version != SessionVersion {
		return nil, fmt.Errorf("session version mismatch: got %d, expected %d", s.Version, SessionVersion)
	}
	return &s, nil
}

// NewStoreFromSession builds a tree Store equivalent to the session's
// persisted state: root steps plus the recorded outcome map.
func NewStoreFromSession(s *Session, opts ...StoreOption) *Store {
	store := NewStore(s.Steps, opts...)

	// Parents must be recorded before their descendants resolve, and a
	// prefix sorts before its extensions, so inserting in path order works.
	paths := make([]string, 0, len(s.Outcomes))
	for path := range s.Outcomes {
		paths = append(paths, path)
	}
	SortPaths(paths)

	for _, path := range paths {
		// Recorded outcomes were validated on the way in; skip any that
		// no longer resolve rather than failing the whole load.
		_ = store.Expand(path, s.Outcomes[path])
	}
	return store
}
