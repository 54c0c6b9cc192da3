package postgrestore

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrations embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "migrations",
	}
}

// Migrate applies every pending migration and returns how many ran.
func Migrate(db *sqlx.DB) (int, error) {
	n, err := migrate.Exec(db.DB, "postgres", migrationSource(), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("cannot apply migrations: %w", err)
	}

	return n, nil
}

func Rollback(db *sqlx.DB) (int, error) {
	n, err := migrate.Exec(db.DB, "postgres", migrationSource(), migrate.Down)
	if err != nil {
		return n, fmt.Errorf("cannot roll back migrations: %w", err)
	}

	return n, nil
}
