package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineError_Error(t *testing.T) {
	err := NewError(ErrCodeValidation, "content must not be empty")
	assert.Equal(t, "[VALIDATION_ERROR] content must not be empty", err.Error())

	withNode := NewError(ErrCodeHierarchy, "a solution cannot contain a solution").WithNode("n42")
	assert.Equal(t, "[HIERARCHY_VIOLATION] node n42: a solution cannot contain a solution", withNode.Error())
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrCodeInternal, "wrapper").WithCause(cause)
	assert.ErrorIs(t, err, cause)
}

func TestEngineError_Builders(t *testing.T) {
	err := NewErrorf(ErrCodeQuery, "unknown language %q", "sql").
		WithDetails(map[string]any{"language": "sql"})

	assert.Equal(t, ErrCodeQuery, err.Code)
	assert.Contains(t, err.Message, `"sql"`)
	assert.Equal(t, "sql", err.Details["language"])
}

func TestEngineError_ErrorsAs(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", NewError(ErrCodeNotFound, "node missing"))

	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ErrCodeNotFound, engErr.Code)
}
