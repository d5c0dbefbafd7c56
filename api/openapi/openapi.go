// Package openapi holds the OpenAPI document served in development.
package openapi

import (
	_ "embed"
)

// V1 is the OpenAPI 3 description of the HTTP API.
//
//go:embed v1.json
var V1 []byte
