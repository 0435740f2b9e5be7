package datastore

import (
	"fmt"
	"sort"
	"time"

	"github.com/marianatek/adddefault/metrics"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	migrationDialect = "postgres"
	// DefaultMigrationTable is the table sql-migrate records applied plans in.
	DefaultMigrationTable = "adddefault_migrations"
)

// Migrator applies and reverts migrations on a database through sql-migrate.
type Migrator struct {
	db    *DB
	table string
}

// MigratorOption is used to pass options to NewMigrator.
type MigratorOption func(*Migrator)

// WithMigrationTable sets the bookkeeping table name.
func WithMigrationTable(name string) MigratorOption {
	return func(m *Migrator) {
		m.table = name
	}
}

// NewMigrator builds a Migrator for db.
func NewMigrator(db *DB, opts ...MigratorOption) *Migrator {
	m := &Migrator{db: db, table: DefaultMigrationTable}
	for _, o := range opts {
		o(m)
	}

	migrate.SetTable(m.table)
	return m
}

// Up applies up to limit pending migrations from src (all when limit is 0) and returns how many
// were applied.
func (m *Migrator) Up(src migrate.MigrationSource, limit int) (int, error) {
	defer metrics.InstrumentMigration(metrics.DirectionForwards)()

	n, err := migrate.ExecMax(m.db.DB, migrationDialect, src, migrate.Up, limit)
	metrics.MigrationsExecuted(metrics.DirectionForwards, n)
	if err != nil {
		return n, fmt.Errorf("applying migrations: %w", err)
	}
	return n, nil
}

// Down reverts up to limit applied migrations from src (all when limit is 0) and returns how many
// were reverted.
func (m *Migrator) Down(src migrate.MigrationSource, limit int) (int, error) {
	defer metrics.InstrumentMigration(metrics.DirectionBackwards)()

	n, err := migrate.ExecMax(m.db.DB, migrationDialect, src, migrate.Down, limit)
	metrics.MigrationsExecuted(metrics.DirectionBackwards, n)
	if err != nil {
		return n, fmt.Errorf("reverting migrations: %w", err)
	}
	return n, nil
}

// Plan returns the migrations that Up (or Down) would run, with their statements, without running
// them.
func (m *Migrator) Plan(src migrate.MigrationSource, dir migrate.MigrationDirection, limit int) ([]*migrate.PlannedMigration, error) {
	planned, _, err := migrate.PlanMigration(m.db.DB, migrationDialect, src, dir, limit)
	if err != nil {
		return nil, fmt.Errorf("planning migrations: %w", err)
	}
	return planned, nil
}

// MigrationStatus is the applied state of a migration.
type MigrationStatus struct {
	ID string
	// AppliedAt is nil when the migration is pending
	AppliedAt *time.Time
	// Unknown is true for applied migrations that src does not contain
	Unknown bool
}

// Status reports the applied state of every migration in src, plus any applied migration that src
// does not know about.
func (m *Migrator) Status(src migrate.MigrationSource) ([]*MigrationStatus, error) {
	records, err := migrate.GetMigrationRecords(m.db.DB, migrationDialect)
	if err != nil {
		return nil, fmt.Errorf("reading migration records: %w", err)
	}
	known, err := src.FindMigrations()
	if err != nil {
		return nil, fmt.Errorf("reading migration source: %w", err)
	}

	return buildStatus(known, records), nil
}

func buildStatus(known []*migrate.Migration, records []*migrate.MigrationRecord) []*MigrationStatus {
	byID := make(map[string]*MigrationStatus, len(known))
	out := make([]*MigrationStatus, 0, len(known))
	for _, k := range known {
		s := &MigrationStatus{ID: k.Id}
		byID[k.Id] = s
		out = append(out, s)
	}

	for _, r := range records {
		appliedAt := r.AppliedAt
		if s, ok := byID[r.Id]; ok {
			s.AppliedAt = &appliedAt
			continue
		}
		out = append(out, &MigrationStatus{ID: r.Id, AppliedAt: &appliedAt, Unknown: true})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
