package filestore

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// outputConfigSchema validates <output>/config.json.
var outputConfigSchema = mustResolve(&jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"source": {Types: []string{"string", "null"}},
	},
	Required: []string{"source"},
})

// contentTypeConfigSchema validates entries/<contentType>/config.json.
var contentTypeConfigSchema = mustResolve(&jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"contentType": {Type: "string", MinLength: jsonschema.Ptr(1)},
		"tools": {
			Type:     "array",
			MinItems: jsonschema.Ptr(1),
			Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name":        {Type: "string", MinLength: jsonschema.Ptr(1)},
					"description": {Type: "string"},
					"fields": {
						Type:     "array",
						MinItems: jsonschema.Ptr(1),
						Items:    &jsonschema.Schema{Type: "string", MinLength: jsonschema.Ptr(1)},
					},
				},
				Required: []string{"name", "fields"},
			},
		},
	},
	Required: []string{"contentType", "tools"},
})

func mustResolve(s *jsonschema.Schema) *jsonschema.Resolved {
	rs, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("filestore: invalid schema: %v", err))
	}
	return rs
}

// decodeValidated checks raw against schema and decodes it into dst.
func decodeValidated(path string, raw []byte, schema *jsonschema.Resolved, dst any) error {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &domain.ConfigInvalidError{Path: path, Reason: err.Error()}
	}
	if err := schema.Validate(instance); err != nil {
		return &domain.ConfigInvalidError{Path: path, Reason: err.Error()}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &domain.ConfigInvalidError{Path: path, Reason: err.Error()}
	}
	return nil
}

// validateContentTypeConfig checks a config before it is written.
func validateContentTypeConfig(cfg domain.ContentTypeConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var decoded domain.ContentTypeConfig
	return decodeValidated("", raw, contentTypeConfigSchema, &decoded)
}
