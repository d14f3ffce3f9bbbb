package embedded

import (
	"embed"
)

// FS embeds the default model catalog and the bundled locale files at build time.
//
//go:embed catalog/*.yaml locales/*.yaml
var FS embed.FS
