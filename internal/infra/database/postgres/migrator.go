package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/moura95/account-auth/internal/infra/database/postgres/migrations"
)

var (
	ErrNoChange   = errors.New("no change")
	ErrDirtyState = errors.New("database is in dirty state")
)

// Migrator applies the embedded SQL migrations. It owns its connection;
// Close releases it.
type Migrator struct {
	m *migrate.Migrate
}

func NewMigrator(dsn string) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("migrator: open failed: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrator: driver failed: %w", err)
	}

	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrator: source failed: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrator: init failed: %w", err)
	}

	return &Migrator{m: m}, nil
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migrator: close source failed: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migrator: close database failed: %w", dbErr)
	}
	return nil
}

func (m *Migrator) Up() error {
	return m.wrap("up", m.m.Up())
}

func (m *Migrator) Down() error {
	return m.wrap("down", m.m.Down())
}

// Steps migrates n steps forward, or backward when n is negative.
func (m *Migrator) Steps(n int) error {
	return m.wrap(fmt.Sprintf("steps %d", n), m.m.Steps(n))
}

func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("migrator: force %d failed: %w", version, err)
	}
	return nil
}

// Version reports 0 when no migration was ever applied.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("migrator: version failed: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		return ErrNoChange
	default:
		var dirty migrate.ErrDirty
		if errors.As(err, &dirty) {
			return fmt.Errorf("migrator: %s failed at version %d: %w", op, dirty.Version, ErrDirtyState)
		}
		return fmt.Errorf("migrator: %s failed: %w", op, err)
	}
}

// MigrateUp applies every pending migration and treats "nothing to do" as success.
func MigrateUp(dsn string) error {
	m, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, ErrNoChange) {
		return err
	}
	return nil
}
