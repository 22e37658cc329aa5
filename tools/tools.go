//go:build tools

// Package tools pins the versions of the code generator behind internal/api
// and the goose CLI used for ad-hoc migrations outside `server migrate`.
package tools

import (
    _ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
    _ "github.com/pressly/goose/v3/cmd/goose"
)
