package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ostkit/ostkit/pkg/schema"
)

// treeSchemaJSON is the JSON Schema for the tree interchange document
// accepted by the MCP tools and the CLI. Embedded as a constant to avoid
// filesystem dependencies.
const treeSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://ostkit.dev/schemas/tree.json",
  "type": "object",
  "required": ["root_id", "nodes"],
  "properties": {
    "root_id": {
      "type": "string",
      "minLength": 1
    },
    "nodes": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": { "$ref": "#/$defs/node" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "node": {
      "type": "object",
      "required": ["id", "kind", "content"],
      "properties": {
        "id": {
          "type": "string",
          "minLength": 1
        },
        "kind": {
          "type": "string",
          "enum": ["outcome", "opportunity", "solution", "sub-opportunity"]
        },
        "content": {
          "type": "string",
          "minLength": 1
        },
        "description": { "type": "string" },
        "metadata": {
          "type": "array",
          "items": { "$ref": "#/$defs/metadata_field" }
        },
        "parent_id": { "type": "string" },
        "children": {
          "type": "array",
          "items": { "type": "string" }
        },
        "position": { "$ref": "#/$defs/position" }
      },
      "additionalProperties": false
    },
    "metadata_field": {
      "type": "object",
      "required": ["name", "values"],
      "properties": {
        "name": {
          "type": "string",
          "minLength": 1
        },
        "values": {
          "type": "array",
          "items": { "type": "string" }
        }
      },
      "additionalProperties": false
    },
    "position": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": { "type": "number" },
        "y": { "type": "number" }
      },
      "additionalProperties": false
    }
  }
}`

// DocumentValidator decodes and validates tree JSON documents using JSON
// Schema Draft 2020-12 plus the structural invariant checks JSON Schema
// cannot express. Safe for concurrent use.
type DocumentValidator struct {
	treeSchema *jsonschema.Schema
}

// NewDocumentValidator compiles the embedded tree schema.
func NewDocumentValidator() (*DocumentValidator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(treeSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal tree schema: %w", err)
	}
	if err := c.AddResource("https://ostkit.dev/schemas/tree.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add tree schema resource: %w", err)
	}

	compiled, err := c.Compile("https://ostkit.dev/schemas/tree.json")
	if err != nil {
		return nil, fmt.Errorf("compile tree schema: %w", err)
	}

	return &DocumentValidator{treeSchema: compiled}, nil
}

// DecodeTree validates raw JSON against the tree schema, decodes it, and
// runs the invariant checks. Returns the decoded tree only when both
// stages pass.
func (v *DocumentValidator) DecodeTree(raw []byte) (*schema.Tree, error) {
	if len(raw) == 0 {
		return nil, schema.NewError(schema.ErrCodeValidation, "tree document is empty")
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation, "tree document is not valid JSON").WithCause(err)
	}
	if err := v.treeSchema.Validate(doc); err != nil {
		return nil, toEngineError(err)
	}

	var tree schema.Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation, "failed to decode tree document").WithCause(err)
	}

	if err := ValidateTree(&tree).ToError(); err != nil {
		return nil, err
	}
	return &tree, nil
}

// toEngineError converts a jsonschema.ValidationError into an EngineError
// with one message per leaf violation.
func toEngineError(err error) *schema.EngineError {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return schema.NewError(schema.ErrCodeValidation, err.Error())
	}

	violations := collectViolations(verr)
	if len(violations) == 0 {
		return schema.NewError(schema.ErrCodeValidation, verr.Error())
	}

	if len(violations) == 1 {
		return schema.NewError(schema.ErrCodeValidation, violations[0]).
			WithDetails(map[string]any{"violations": violations})
	}

	msg := fmt.Sprintf("validation failed with %d errors", len(violations))
	return schema.NewError(schema.ErrCodeValidation, msg).
		WithDetails(map[string]any{"violations": violations})
}

// collectViolations walks a ValidationError tree and collects leaf error
// messages with their instance locations.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
