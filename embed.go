// Package cocktails provides embedded runtime resources.
package cocktails

import _ "embed"

// ExampleConfig is the annotated sample configuration file.
//
//go:embed templates/config.yaml
var ExampleConfig []byte
