package decompose

import "context"

// Client is the interface to a decomposition service.
// Implementations must be safe for concurrent use.
type Client interface {
	// Decompose asks the service to break one step into sub-steps.
	// The call is cancellable through ctx; no retries are performed here.
	Decompose(ctx context.Context, req Request) (*Response, error)
}
