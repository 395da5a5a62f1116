package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"

	schemapkg "github.com/pkgforge/pkgresolve/internal/ingest/schema"
)

const manifestSchemaName = "manifest.schema.json"

// ValidateManifestYAML validates raw manifest YAML against the package
// manifest schema, bridging through sigs.k8s.io/yaml so the jsonschema
// validator can walk the document as JSON.
func ValidateManifestYAML(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("converting manifest to JSON for validation: %w", err)
	}
	return validateManifestJSON(jsonData)
}

func validateManifestJSON(data []byte) error {
	comp := jsonschema.NewCompiler()
	if err := comp.AddResource(manifestSchemaName, bytes.NewReader(schemapkg.ManifestSchema)); err != nil {
		return fmt.Errorf("loading manifest schema: %w", err)
	}
	sch, err := comp.Compile(manifestSchemaName)
	if err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON manifest: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("manifest schema validation failed: %w", err)
	}
	return nil
}
