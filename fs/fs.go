// Package appfs exposes the repo's embedded assets (migrations, seed
// fixtures) so binaries stay self-contained.
package appfs

import "embed"

//go:embed migrations fixtures
var FS embed.FS
