// Package testutil provides helpers for tests that need a live PostgreSQL database.
package testutil

import (
	"fmt"
	"os"
	"strconv"

	"github.com/marianatek/adddefault/datastore"
)

// NewDSNFromEnv builds a DSN from the ADDDEFAULT_DATABASE_* environment variables.
func NewDSNFromEnv() (*datastore.DSN, error) {
	port, err := strconv.Atoi(envOr("ADDDEFAULT_DATABASE_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("parsing DSN port: %w", err)
	}

	return &datastore.DSN{
		Host:     envOr("ADDDEFAULT_DATABASE_HOST", "localhost"),
		Port:     port,
		User:     envOr("ADDDEFAULT_DATABASE_USER", "postgres"),
		Password: os.Getenv("ADDDEFAULT_DATABASE_PASSWORD"),
		DBName:   envOr("ADDDEFAULT_DATABASE_DBNAME", "adddefault_test"),
		SSLMode:  envOr("ADDDEFAULT_DATABASE_SSLMODE", "disable"),
	}, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
