// Package static embeds the browser frontend served at /.
package static

import "embed"

// FS holds index.html and its assets at the root of the file system.
//
//go:embed index.html script.js telemetry.js style.css
var FS embed.FS
