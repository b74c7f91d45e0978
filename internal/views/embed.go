// Package views holds the embedded page templates.
package views

import (
	"embed"
)

//go:embed *.html
var Files embed.FS
