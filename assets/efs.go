package assets

import (
	"embed"
)

//go:embed "config" "emails" "migrations"
var EmbeddedFiles embed.FS
