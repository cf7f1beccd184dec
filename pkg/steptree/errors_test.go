package steptree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathError_Message(t *testing.T) {
	err := &PathError{Path: "1.x", Reason: "segment is not a number"}
	assert.Contains(t, err.Error(), `"1.x"`)
	assert.Contains(t, err.Error(), "segment is not a number")
}

func TestOutcomeError_Message(t *testing.T) {
	withPath := &OutcomeError{Path: "1.2", Reason: "no steps and no stop reason"}
	assert.Contains(t, withPath.Error(), `"1.2"`)

	bare := &OutcomeError{Reason: "no steps and no stop reason"}
	assert.NotContains(t, bare.Error(), `""`)
}

func TestServiceError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ServiceError{Path: "1", Op: "decompose", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "decompose")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPersistError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &PersistError{SessionID: "sess-1", Op: "save", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "sess-1")
}
