// Package datastore connects to the PostgreSQL database that default value migrations run against.
package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/sirupsen/logrus"
)

const (
	driverName = "pgx"

	// Vendor is the connection vendor reported to operations.
	Vendor = "postgresql"
	// DefaultAlias is the connection alias used when none is configured.
	DefaultAlias = "default"

	defaultPingRetries = 3
)

// DSN represents the Data Source Name parameters for a PostgreSQL connection.
type DSN struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ConnectTimeout time.Duration
}

// String builds the libpq compatible connection string for dsn.
func (dsn *DSN) String() string {
	var params []string

	add := func(k, v string) {
		if v == "" {
			return
		}
		if strings.ContainsAny(v, ` '\`) {
			v = strings.ReplaceAll(v, `\`, `\\`)
			v = "'" + strings.ReplaceAll(v, `'`, `\'`) + "'"
		}
		params = append(params, k+"="+v)
	}

	add("host", dsn.Host)
	if dsn.Port > 0 {
		add("port", strconv.Itoa(dsn.Port))
	}
	add("user", dsn.User)
	add("password", dsn.Password)
	add("dbname", dsn.DBName)
	add("sslmode", dsn.SSLMode)
	if dsn.ConnectTimeout > 0 {
		add("connect_timeout", strconv.Itoa(int(dsn.ConnectTimeout.Seconds())))
	}

	return strings.Join(params, " ")
}

// PoolConfig represents the settings of the database connection pool.
type PoolConfig struct {
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
}

type openOpts struct {
	logger      *logrus.Entry
	pool        *PoolConfig
	alias       string
	pingRetries uint64
}

// OpenOption is used to pass options to Open.
type OpenOption func(*openOpts)

// WithLogger configures the logger used by the database handle.
func WithLogger(l *logrus.Entry) OpenOption {
	return func(opts *openOpts) {
		opts.logger = l
	}
}

// WithPoolConfig configures the connection pool.
func WithPoolConfig(c *PoolConfig) OpenOption {
	return func(opts *openOpts) {
		opts.pool = c
	}
}

// WithAlias sets the connection alias reported to operations.
func WithAlias(alias string) OpenOption {
	return func(opts *openOpts) {
		opts.alias = alias
	}
}

// WithPingRetries sets how many times the initial ping is retried, with exponential backoff.
func WithPingRetries(n uint64) OpenOption {
	return func(opts *openOpts) {
		opts.pingRetries = n
	}
}

// DB is a database handle that implements migrations.SchemaEditor.
type DB struct {
	*sql.DB

	dsn    *DSN
	alias  string
	logger *logrus.Entry
}

// Open opens a database handle and verifies the connection.
func Open(dsn *DSN, opts ...OpenOption) (*DB, error) {
	config := &openOpts{
		logger:      logrus.NewEntry(logrus.StandardLogger()),
		alias:       DefaultAlias,
		pingRetries: defaultPingRetries,
	}
	for _, o := range opts {
		o(config)
	}

	db, err := sql.Open(driverName, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	if config.pool != nil {
		db.SetMaxIdleConns(config.pool.MaxIdle)
		db.SetMaxOpenConns(config.pool.MaxOpen)
		db.SetConnMaxLifetime(config.pool.MaxLifetime)
	}

	l := config.logger.WithFields(logrus.Fields{"host": dsn.Host, "database": dsn.DBName})
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), config.pingRetries)
	notify := func(err error, next time.Duration) {
		l.WithError(err).WithField("retry_in", next.String()).Warn("database ping failed")
	}
	if err := backoff.RetryNotify(db.Ping, b, notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	return &DB{DB: db, dsn: dsn, alias: config.alias, logger: l}, nil
}

// Vendor implements migrations.SchemaEditor.
func (db *DB) Vendor() string {
	return Vendor
}

// Alias implements migrations.SchemaEditor.
func (db *DB) Alias() string {
	return db.alias
}

// Execute implements migrations.SchemaEditor.
func (db *DB) Execute(ctx context.Context, query string) error {
	db.logger.WithField("statement", query).Debug("executing statement")

	_, err := db.ExecContext(ctx, query)
	return translateError(query, err)
}

// DSN returns the connection parameters db was opened with.
func (db *DB) DSN() *DSN {
	return db.dsn
}
