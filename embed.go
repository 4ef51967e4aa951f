// Package backend exposes embedded assets shared by the binaries.
package backend

import "embed"

//go:embed migrations/*.sql
var MigrationsFS embed.FS
