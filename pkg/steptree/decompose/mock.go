package decompose

import (
	"context"
	"sync"
)

// MockClient is a scriptable Client for tests and examples.
// It records every request it receives.
type MockClient struct {
	mu        sync.Mutex
	responses []*Response
	err       error
	fn        func(ctx context.Context, req Request) (*Response, error)
	calls     []Request
	next      int
}

// Compile-time interface check.
var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock that returns resp on every call.
// A nil resp without further configuration yields an empty Response.
func NewMockClient(resp *Response) *MockClient {
	m := &MockClient{}
	if resp != nil {
		m.responses = []*Response{resp}
	}
	return m
}

// WithResponses scripts a sequence of responses, cycling when exhausted.
func (m *MockClient) WithResponses(responses ...*Response) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = responses
	m.next = 0
	return m
}

// WithError makes every call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithDecomposeFunc replaces the canned behavior with fn.
func (m *MockClient) WithDecomposeFunc(fn func(ctx context.Context, req Request) (*Response, error)) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return m
}

// Decompose implements Client.
func (m *MockClient) Decompose(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	fn, err := m.fn, m.err
	var resp *Response
	if len(m.responses) > 0 {
		resp = m.responses[m.next%len(m.responses)]
		m.next++
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &Response{}, nil
	}
	return resp, nil
}

// CallCount returns how many calls were made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded requests.
func (m *MockClient) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Request, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// LastCall returns the most recent request, or nil before any call.
func (m *MockClient) LastCall() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears recorded calls and restarts the scripted sequence.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.next = 0
}
