package polls

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// datasetSchema is derived from Dataset. Unknown keys are tolerated so that
// upstream exports carrying extra metadata still load.
var datasetSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	schema, err := jsonschema.For[Dataset](nil)
	if err != nil {
		return nil, err
	}
	schema.AdditionalProperties = nil
	if data := schema.Properties["data"]; data != nil && data.Items != nil {
		data.Items.AdditionalProperties = nil
	}
	return schema.Resolve(nil)
})

func validateDocument(raw []byte) error {
	resolved, err := datasetSchema()
	if err != nil {
		return fmt.Errorf("failed to build dataset schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("poll dataset does not match schema: %w", err)
	}
	return nil
}
