// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/jsoncv.schema.json
var schemaJSON []byte

// Schema returns the embedded CV JSON schema.
func Schema() []byte { return schemaJSON }

// Validate checks CV JSON against the embedded schema. It returns an
// error listing every violation, or nil when the document is valid.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validating CV JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("CV schema validation failed: %s", strings.Join(msgs, "; "))
}
