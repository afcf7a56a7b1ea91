package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// Migrations holds the ledger schema shipped with the binary
//
//go:embed migrations/*.sql
var Migrations embed.FS

// migrationsDir is the directory of Migrations holding the schema files
const migrationsDir = "migrations"

var (
	ErrInvalidMigrationName = errors.New("invalid migration filename")
	ErrDuplicateMigration   = errors.New("duplicate migration version")
)

// "001_batch_jobs.sql" -> 1, "batch_jobs"
var migrationName = regexp.MustCompile(`^(\d+)_([A-Za-z0-9_]+)\.sql$`)

// Migration is one numbered schema file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationStatus reports whether a migration has been applied
type MigrationStatus struct {
	Version int
	Name    string
	Applied bool
}

// Migrator applies numbered schema files in version order, once each
type Migrator struct {
	db     *DB
	logger *zap.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *DB, logger *zap.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// Migrate applies the embedded ledger schema
func Migrate(db *DB, logger *zap.Logger) error {
	return NewMigrator(db, logger).RunMigrations(Migrations, migrationsDir)
}

// RunMigrations applies every migration under dir of fsys that is not yet
// recorded in schema_migrations
func (m *Migrator) RunMigrations(fsys fs.FS, dir string) error {
	pending, err := m.Pending(fsys, dir)
	if err != nil {
		return err
	}

	for _, mig := range pending {
		m.logger.Info("Applying migration",
			zap.Int("version", mig.Version),
			zap.String("name", mig.Name))

		if err := m.apply(mig); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", mig.Version, err)
		}
	}

	m.logger.Info("Database schema up to date",
		zap.String("dir", dir),
		zap.Int("applied", len(pending)))
	return nil
}

// Pending returns the migrations under dir that have not been applied
func (m *Migrator) Pending(fsys fs.FS, dir string) ([]Migration, error) {
	status, all, err := m.status(fsys, dir)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for i, s := range status {
		if !s.Applied {
			pending = append(pending, all[i])
		}
	}
	return pending, nil
}

// Status lists every migration under dir with its applied flag
func (m *Migrator) Status(fsys fs.FS, dir string) ([]MigrationStatus, error) {
	status, _, err := m.status(fsys, dir)
	return status, err
}

func (m *Migrator) status(fsys fs.FS, dir string) ([]MigrationStatus, []Migration, error) {
	if err := m.ensureTable(); err != nil {
		return nil, nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	all, err := LoadMigrations(fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	status := make([]MigrationStatus, len(all))
	for i, mig := range all {
		status[i] = MigrationStatus{Version: mig.Version, Name: mig.Name, Applied: applied[mig.Version]}
	}
	return status, all, nil
}

func (m *Migrator) ensureTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func (m *Migrator) appliedVersions() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) apply(mig Migration) error {
	return m.db.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(mig.SQL); err != nil {
			return fmt.Errorf("failed to execute migration SQL: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			mig.Version, mig.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
}

// LoadMigrations reads the .sql files directly under dir, sorted by version.
// Other files are ignored.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]string)
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}

		match := migrationName.FindStringSubmatch(e.Name())
		if match == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMigrationName, e.Name())
		}
		version, _ := strconv.Atoi(match[1])
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicateMigration, version, prev, e.Name())
		}
		seen[version] = e.Name()

		content, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", e.Name(), err)
		}

		out = append(out, Migration{Version: version, Name: match[2], SQL: string(content)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}
