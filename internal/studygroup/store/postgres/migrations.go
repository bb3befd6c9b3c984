package postgres

import "embed"

// Migrations holds the schema for this backend in golang-migrate file naming.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
