// Package metrics holds the prometheus collectors reported by adddefault.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// NamespacePrefix is the namespace of all adddefault metrics.
const NamespacePrefix = "adddefault"

var (
	operationsCounter  *prometheus.CounterVec
	statementsCounter  *prometheus.CounterVec
	migrationsCounter  *prometheus.CounterVec
	migrationDurations *prometheus.HistogramVec

	timeSince = time.Since // for test purposes only

	gatherer prometheus.Gatherer = prometheus.DefaultGatherer
)

const (
	directionLabel = "direction"
	outcomeLabel   = "outcome"
	kindLabel      = "kind"

	operationsTotalName = "operations_total"
	operationsTotalDesc = "A counter of default value operations by direction and outcome."

	statementsTotalName = "statements_rendered_total"
	statementsTotalDesc = "A counter of rendered default value statements by kind."

	migrationsTotalName = "migrations_total"
	migrationsTotalDesc = "A counter of migrations executed against a database by direction."

	migrationDurationName = "migration_duration_seconds"
	migrationDurationDesc = "A histogram of latencies for migration runs."
)

// Operation directions.
const (
	DirectionForwards  = "forwards"
	DirectionBackwards = "backwards"
)

// Operation outcomes.
const (
	OutcomeApplied = "applied"
	// OutcomeRendered is used when the statement was recorded instead of executed.
	OutcomeRendered = "rendered"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Statement kinds.
const (
	KindSetDefault  = "set_default"
	KindDropDefault = "drop_default"
)

func init() {
	operationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NamespacePrefix,
			Name:      operationsTotalName,
			Help:      operationsTotalDesc,
		},
		[]string{directionLabel, outcomeLabel},
	)
	statementsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NamespacePrefix,
			Name:      statementsTotalName,
			Help:      statementsTotalDesc,
		},
		[]string{kindLabel},
	)
	migrationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NamespacePrefix,
			Name:      migrationsTotalName,
			Help:      migrationsTotalDesc,
		},
		[]string{directionLabel},
	)
	migrationDurations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: NamespacePrefix,
			Name:      migrationDurationName,
			Help:      migrationDurationDesc,
			Buckets:   prometheus.DefBuckets,
		},
		[]string{directionLabel},
	)

	prometheus.MustRegister(operationsCounter, statementsCounter, migrationsCounter, migrationDurations)
}

// Operation counts one operation outcome.
func Operation(direction, outcome string) {
	operationsCounter.WithLabelValues(direction, outcome).Inc()
}

// StatementRendered counts one rendered statement.
func StatementRendered(kind string) {
	statementsCounter.WithLabelValues(kind).Inc()
}

// MigrationsExecuted counts n migrations run against a database.
func MigrationsExecuted(direction string, n int) {
	migrationsCounter.WithLabelValues(direction).Add(float64(n))
}

// InstrumentMigration starts timing a migration run. Call the returned func when the run ends.
func InstrumentMigration(direction string) func() {
	start := time.Now()
	return func() {
		migrationDurations.WithLabelValues(direction).Observe(timeSince(start).Seconds())
	}
}

// JobName is the pushgateway job metrics are grouped under.
const JobName = "adddefault"

// Push sends every registered metric to the pushgateway at url, replacing the previous push of the
// job.
func Push(url string) error {
	if err := push.New(url, JobName).Gatherer(gatherer).Push(); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
