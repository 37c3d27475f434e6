package task

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title"],
  "properties": {
    "id": {"type": "integer", "minimum": 0},
    "title": {"type": "string"},
    "date": {"type": ["string", "null"]},
    "priority": {
      "anyOf": [
        {"type": "integer", "minimum": 0, "maximum": 2},
        {"type": "string", "pattern": "^[0-2]$"}
      ]
    },
    "description": {"type": ["string", "null"]},
    "done": {"type": "boolean"}
  }
}`

var compiledSchema = jsonschema.MustCompileString("task-record.json", recordSchema)

// validateRecord checks one stored record before it is decoded.
func validateRecord(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return nil
}
