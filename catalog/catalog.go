// Package catalog embeds the static category tree, verb catalog, preset
// questions and subject descriptors.
package catalog

import "embed"

//go:embed *.yaml
var FS embed.FS
