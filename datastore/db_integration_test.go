// +build integration

package datastore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marianatek/adddefault/datastore"
	"github.com/marianatek/adddefault/datastore/testutil"
	"github.com/marianatek/adddefault/defaultvalue"
	"github.com/marianatek/adddefault/migrations"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *datastore.DB {
	t.Helper()

	dsn, err := testutil.NewDSNFromEnv()
	require.NoError(t, err)

	db, err := datastore.Open(dsn,
		datastore.WithLogger(logrus.NewEntry(logrus.New())),
		datastore.WithPoolConfig(&datastore.PoolConfig{
			MaxIdle:     1,
			MaxOpen:     1,
			MaxLifetime: 1 * time.Minute,
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func createMachines(t *testing.T, db *datastore.DB) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, db.Execute(ctx, `DROP TABLE IF EXISTS machines_machine`))
	require.NoError(t, db.Execute(ctx, `CREATE TABLE machines_machine (
		id serial PRIMARY KEY,
		is_functional boolean NOT NULL,
		description text NOT NULL,
		installed_on date NOT NULL,
		created_at timestamp with time zone NOT NULL
	)`))
	t.Cleanup(func() { db.Execute(context.Background(), `DROP TABLE IF EXISTS machines_machine`) })
}

func columnDefault(t *testing.T, db *datastore.DB, column string) *string {
	t.Helper()

	var def *string
	q := `SELECT column_default FROM information_schema.columns WHERE table_name = 'machines_machine' AND column_name = $1`
	require.NoError(t, db.QueryRowContext(context.Background(), q, column).Scan(&def))

	return def
}

func TestOpen_Error(t *testing.T) {
	dsn, err := testutil.NewDSNFromEnv()
	require.NoError(t, err)
	dsn.DBName = "nonexistent"

	_, err = datastore.Open(dsn, datastore.WithPingRetries(0))
	require.Error(t, err)
}

func TestAddDefaultValue_ApplyRevert(t *testing.T) {
	db := openDB(t)
	createMachines(t, db)

	ctx := context.Background()
	state := migrations.StaticState{Tables: map[string]string{"Machine": "machines_machine"}}
	ops := []migrations.Operation{
		migrations.NewAddDefaultValue("Machine", "description", "No description provided"),
		migrations.NewAddDefaultValue("Machine", "installed_on", defaultvalue.Date{Year: 1970, Month: time.January, Day: 1}),
		migrations.NewAddDefaultValue("Machine", "created_at", defaultvalue.Now),
	}
	for _, op := range ops {
		require.NoError(t, op.Apply(ctx, db, state))
	}

	require.Equal(t, "'No description provided'::text", *columnDefault(t, db, "description"))
	require.Equal(t, "'1970-01-01'::date", *columnDefault(t, db, "installed_on"))
	require.Equal(t, "now()", *columnDefault(t, db, "created_at"))

	for _, op := range ops {
		require.NoError(t, op.Revert(ctx, db, state))
	}
	require.Nil(t, columnDefault(t, db, "description"))
	require.Nil(t, columnDefault(t, db, "installed_on"))
	require.Nil(t, columnDefault(t, db, "created_at"))
}

func TestExecute_UndefinedColumn(t *testing.T) {
	db := openDB(t)
	createMachines(t, db)

	state := migrations.StaticState{Tables: map[string]string{"Machine": "machines_machine"}}
	op := migrations.NewAddDefaultValue("Machine", "colour", "blue")

	err := op.Apply(context.Background(), db, state)
	require.True(t, errors.Is(err, datastore.ErrColumnNotFound))
}

func TestMigrator_UpStatusDown(t *testing.T) {
	db := openDB(t)
	createMachines(t, db)

	ctx := context.Background()
	state := migrations.StaticState{Tables: map[string]string{"Machine": "machines_machine"}}
	plans := []*migrations.Plan{
		{
			ID:         "0001_machine_defaults",
			Operations: []migrations.Operation{migrations.NewAddDefaultValue("Machine", "description", "n/a")},
		},
	}
	src, err := migrations.Source(ctx, plans, db.Vendor(), db.Alias(), state)
	require.NoError(t, err)

	m := datastore.NewMigrator(db, datastore.WithMigrationTable("adddefault_migrations_test"))
	defer db.Execute(ctx, `DROP TABLE IF EXISTS adddefault_migrations_test`)

	n, err := m.Up(src, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "'n/a'::text", *columnDefault(t, db, "description"))

	status, err := m.Status(src)
	require.NoError(t, err)
	require.Len(t, status, 1)
	require.NotNil(t, status[0].AppliedAt)

	n, err = m.Down(src, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Nil(t, columnDefault(t, db, "description"))
}
