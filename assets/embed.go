package assets

import "embed"

// FS holds the demo assets so the binary runs without an assets directory.
//
//go:embed *.custom *.wav
var FS embed.FS
