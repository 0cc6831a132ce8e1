// Package ui holds the web calculator's page templates and static assets.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
