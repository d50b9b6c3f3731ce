package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

const createDealSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "ad_id": {"type": "integer", "minimum": 1},
    "seller_id": {"type": "integer", "minimum": 1},
    "price": {"type": "number", "exclusiveMinimum": 0},
    "notes": {"type": "string", "maxLength": 1000},
    "documents": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "maxItems": 20
    }
  },
  "required": ["ad_id", "seller_id", "price"],
  "additionalProperties": false
}`

var createDealSchema = santhosh.MustCompileString("create_deal.json", createDealSchemaJSON)

// validateCreateDealBody checks the raw request body against the embedded
// schema before it is decoded into the command.
func validateCreateDealBody(body []byte) error {
	var value any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := createDealSchema.Validate(value); err != nil {
		return err
	}
	return nil
}
