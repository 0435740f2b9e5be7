package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/marianatek/adddefault/configuration"
	"github.com/marianatek/adddefault/datastore"
	"github.com/marianatek/adddefault/log"
	"github.com/marianatek/adddefault/metrics"
	"github.com/marianatek/adddefault/migrations"
	"github.com/olekukonko/tablewriter"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	limit              int
	dryRun             bool
	skipPostDeployment bool
)

func init() {
	for _, c := range []*cobra.Command{MigrateUpCmd, MigrateDownCmd} {
		c.Flags().IntVarP(&limit, "limit", "n", 0, "limit the number of migrations (0 = unlimited)")
		c.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "print the statements without running them")
	}
	MigrateUpCmd.Flags().BoolVarP(&skipPostDeployment, "skip-post-deployment", "s", false, "do not apply post deployment migrations")

	MigrateCmd.AddCommand(MigrateUpCmd)
	MigrateCmd.AddCommand(MigrateDownCmd)
	MigrateCmd.AddCommand(MigrateStatusCmd)
}

// MigrateCmd is the parent of the migration commands.
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage column default migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Usage()
	},
}

// MigrateUpCmd applies pending migrations.
var MigrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.db.Close()

		plans := env.plans
		if skipPostDeployment {
			plans = migrations.NonPostDeployment(plans)
		}
		src, err := env.source(plans)
		if err != nil {
			return err
		}

		if dryRun {
			return printPlan(cmd.OutOrStdout(), env.migrator, src, migrate.Up)
		}

		n, err := env.migrator.Up(src, limit)
		env.pushMetrics()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: applied %d migrations\n", n)
		return nil
	},
}

// MigrateDownCmd reverts applied migrations.
var MigrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert applied migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.db.Close()

		src, err := env.source(env.plans)
		if err != nil {
			return err
		}

		if dryRun {
			return printPlan(cmd.OutOrStdout(), env.migrator, src, migrate.Down)
		}

		n, err := env.migrator.Down(src, limit)
		env.pushMetrics()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: reverted %d migrations\n", n)
		return nil
	},
}

// MigrateStatusCmd shows the status of all migrations.
var MigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.db.Close()

		src, err := env.source(env.plans)
		if err != nil {
			return err
		}

		statuses, err := env.migrator.Status(src)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), statuses)
		return nil
	},
}

type environment struct {
	ctx      context.Context
	config   *configuration.Configuration
	db       *datastore.DB
	migrator *datastore.Migrator
	plans    []*migrations.Plan
}

func loadEnv(ctx context.Context) (*environment, error) {
	config, err := configuration.ParseFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := log.Configure(config.Log.Level, config.Log.Formatter); err != nil {
		return nil, err
	}

	plans, err := config.BuildPlans()
	if err != nil {
		return nil, err
	}
	plans = append(plans, migrations.Plans()...)
	migrations.SortPlans(plans)

	l := log.FromContext(ctx).WithFields(log.Fields{
		"config":   configPath,
		"db.alias": config.Database.Alias,
	})
	ctx = log.NewContext(ctx, l)

	entry, ok := log.Entry(l)
	if !ok {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	db, err := datastore.Open(dsnFromConfig(config),
		datastore.WithLogger(entry),
		datastore.WithAlias(config.Database.Alias),
		datastore.WithPoolConfig(&datastore.PoolConfig{
			MaxIdle:     config.Database.Pool.MaxIdle,
			MaxOpen:     config.Database.Pool.MaxOpen,
			MaxLifetime: config.Database.Pool.MaxLifetime,
		}),
	)
	if err != nil {
		return nil, err
	}

	l.WithFields(log.Fields{"plans": len(plans)}).Info("loaded migration plans")

	return &environment{
		ctx:      ctx,
		config:   config,
		db:       db,
		migrator: datastore.NewMigrator(db, datastore.WithMigrationTable(config.Migrations.Table)),
		plans:    plans,
	}, nil
}

// source renders plans for the configured vendor. The connection always reports PostgreSQL, so the
// configured vendor decides whether statements are generated at all.
func (e *environment) source(plans []*migrations.Plan) (*migrate.MemoryMigrationSource, error) {
	return migrations.Source(e.ctx, plans, e.config.Vendor, e.db.Alias(), e.config.State())
}

// pushMetrics sends the run's metrics to the configured pushgateway. A failed push is logged and
// does not fail the command, as the migrations it reports on have already run.
func (e *environment) pushMetrics() {
	url := e.config.Metrics.PushGateway
	if url == "" {
		return
	}
	l := log.FromContext(e.ctx).WithFields(log.Fields{"pushgateway": url})
	if err := metrics.Push(url); err != nil {
		l.WithError(err).Warn("failed to push metrics")
		return
	}
	l.Debug("pushed metrics")
}

func dsnFromConfig(config *configuration.Configuration) *datastore.DSN {
	return &datastore.DSN{
		Host:           config.Database.Host,
		Port:           config.Database.Port,
		User:           config.Database.User,
		Password:       config.Database.Password,
		DBName:         config.Database.DBName,
		SSLMode:        config.Database.SSLMode,
		ConnectTimeout: config.Database.ConnectTimeout,
	}
}

func printPlan(w io.Writer, m *datastore.Migrator, src migrate.MigrationSource, dir migrate.MigrationDirection) error {
	planned, err := m.Plan(src, dir, limit)
	if err != nil {
		return err
	}
	for _, p := range planned {
		fmt.Fprintf(w, "-- %s\n", p.Id)
		for _, q := range p.Queries {
			fmt.Fprintln(w, q)
		}
	}
	return nil
}

func printStatus(w io.Writer, statuses []*datastore.MigrationStatus) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Migration", "Applied"})
	table.SetColWidth(80)

	for _, s := range statuses {
		name := s.ID
		if s.Unknown {
			name += " (unknown)"
		}
		applied := ""
		if s.AppliedAt != nil {
			applied = s.AppliedAt.Format(time.RFC3339)
		}
		table.Append([]string{name, applied})
	}

	table.Render()
}
