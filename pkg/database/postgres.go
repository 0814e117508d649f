package database

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/uptrace/bun/driver/pgdriver"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewPostgres opens the directory database and applies pending migrations.
// pgURL wins when set; pgHost is the local-dev fallback.
func NewPostgres(pgURL, pgHost string) (*sql.DB, error) {
	dsn := pgURL
	if dsn == "" {
		dsn = fmt.Sprintf("postgres://postgres:postgres@%s/conference?sslmode=disable", pgHost)
	}

	db := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
	if _, err := migrate.Exec(db, "postgres", migrations, migrate.Up); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return db, nil
}
