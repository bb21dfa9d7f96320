// Package profiles embeds the default taint-config YAML profiles shipped
// with goflow, for callers that don't pass --taint-config explicitly.
package profiles

import "embed"

// FS is an embed.FS containing every *.yaml file in this directory.
//
//go:embed *.yaml
var FS embed.FS
