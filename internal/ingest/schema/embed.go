package schema

import _ "embed"

//go:embed manifest.schema.json
var ManifestSchema []byte
