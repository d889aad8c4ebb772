// Package web holds the HTML templates served by the API.
package web

import "embed"

//go:embed templates
var FS embed.FS
