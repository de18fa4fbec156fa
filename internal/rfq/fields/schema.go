package fields

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// fieldsSchema is the shape contract for model output and resubmitted payloads.
// Unknown top-level keys are allowed here and dropped by the decoder.
const fieldsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "vendor_info":  {"$ref": "#/$defs/value"},
    "products":     {"$ref": "#/$defs/value"},
    "quantities":   {"$ref": "#/$defs/value"},
    "timeline":     {"$ref": "#/$defs/value"},
    "requirements": {"$ref": "#/$defs/value"}
  },
  "$defs": {
    "value": {
      "type": ["string", "number", "array", "object", "null"],
      "items": {"$ref": "#/$defs/value"},
      "additionalProperties": {"$ref": "#/$defs/value"}
    }
  }
}`

var rfqFieldsSchema = jsonschema.MustCompileString("rfq_fields.json", fieldsSchema)
