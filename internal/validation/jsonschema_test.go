package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostkit/ostkit/pkg/schema"
)

func encodeTree(t *testing.T, tree *schema.Tree) []byte {
	t.Helper()
	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	return raw
}

func TestDecodeTree_Valid(t *testing.T) {
	v, err := NewDocumentValidator()
	require.NoError(t, err)

	tree := validTree(t)
	decoded, err := v.DecodeTree(encodeTree(t, tree))
	require.NoError(t, err)
	assert.Equal(t, tree.RootID, decoded.RootID)
	assert.Equal(t, len(tree.Nodes), len(decoded.Nodes))
}

func TestDecodeTree_Empty(t *testing.T) {
	v, err := NewDocumentValidator()
	require.NoError(t, err)

	_, err = v.DecodeTree(nil)
	require.Error(t, err)
	var engErr *schema.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, schema.ErrCodeValidation, engErr.Code)
}

func TestDecodeTree_NotJSON(t *testing.T) {
	v, err := NewDocumentValidator()
	require.NoError(t, err)

	_, err = v.DecodeTree([]byte("O: this is outline text, not JSON"))
	assert.Error(t, err)
}

func TestDecodeTree_SchemaViolations(t *testing.T) {
	v, err := NewDocumentValidator()
	require.NoError(t, err)

	cases := []string{
		`{}`,
		`{"root_id": "", "nodes": {}}`,
		`{"root_id": "r", "nodes": {"r": {"id": "r", "kind": "goal", "content": "x"}}}`,
		`{"root_id": "r", "nodes": {"r": {"id": "r", "kind": "outcome", "content": ""}}}`,
		`{"root_id": "r", "nodes": {"r": {"id": "r", "kind": "outcome", "content": "x", "extra": true}}}`,
	}
	for _, raw := range cases {
		_, err := v.DecodeTree([]byte(raw))
		assert.Error(t, err, "document %s", raw)
	}
}

func TestDecodeTree_InvariantViolationAfterSchemaPass(t *testing.T) {
	v, err := NewDocumentValidator()
	require.NoError(t, err)

	// Schema-valid JSON, but the solution sits directly under the outcome.
	raw := []byte(`{
	  "root_id": "r",
	  "nodes": {
	    "r": {"id": "r", "kind": "outcome", "content": "x", "children": ["s"]},
	    "s": {"id": "s", "kind": "solution", "content": "y", "parent_id": "r"}
	  }
	}`)
	_, err = v.DecodeTree(raw)
	require.Error(t, err)
	var engErr *schema.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, schema.ErrCodeValidation, engErr.Code)
}
