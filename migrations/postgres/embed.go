// Package migrations embeds SQL migration files.
package migrations

import "embed"

// FS contiene las migraciones de PostgreSQL.
//
//go:embed *.sql
var FS embed.FS

// Dir es el directorio dentro de FS donde viven las migraciones.
const Dir = "."
