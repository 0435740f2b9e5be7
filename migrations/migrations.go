// Package migrations binds default value operations to sql-migrate. Operations are grouped in plans;
// each plan is rendered into a sql-migrate migration whose Up statements apply every operation in
// order and whose Down statements revert them in reverse order.
package migrations

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/marianatek/adddefault/log"
	migrate "github.com/rubenv/sql-migrate"
)

var (
	plansMu  sync.Mutex
	allPlans []*Plan
)

// Plan is an ordered group of operations applied as one migration.
type Plan struct {
	ID             string
	Operations     []Operation
	PostDeployment bool
}

// Migration is a rendered plan.
type Migration struct {
	*migrate.Migration

	PostDeployment bool
}

// Register adds p to the set returned by Plans. It panics if a plan with the same ID is already
// registered, as it is meant to be called from init functions.
func Register(p *Plan) {
	plansMu.Lock()
	defer plansMu.Unlock()

	for _, existing := range allPlans {
		if existing.ID == p.ID {
			panic(fmt.Sprintf("migrations: plan %q registered twice", p.ID))
		}
	}
	allPlans = append(allPlans, p)
}

// Plans returns the registered plans sorted by ID.
func Plans() []*Plan {
	plansMu.Lock()
	defer plansMu.Unlock()

	out := make([]*Plan, len(allPlans))
	copy(out, allPlans)
	SortPlans(out)

	return out
}

// SortPlans sorts plans by ID in place.
func SortPlans(plans []*Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].ID < plans[j].ID
	})
}

// NonPostDeployment returns the plans that are not flagged as post deployment.
func NonPostDeployment(plans []*Plan) []*Plan {
	out := make([]*Plan, 0, len(plans))
	for _, p := range plans {
		if !p.PostDeployment {
			out = append(out, p)
		}
	}
	return out
}

// NewMigration renders p for a database with the given vendor and alias.
func NewMigration(ctx context.Context, p *Plan, vendor, alias string, state ProjectState) (*Migration, error) {
	l := log.FromContext(ctx).WithFields(log.Fields{"plan.id": p.ID})
	ctx = log.NewContext(ctx, l)

	up := NewRecorder(vendor, alias)
	for _, op := range p.Operations {
		if err := op.Apply(ctx, up, state); err != nil {
			return nil, fmt.Errorf("rendering %s up: %w", p.ID, err)
		}
	}

	down := NewRecorder(vendor, alias)
	for i := len(p.Operations) - 1; i >= 0; i-- {
		if err := p.Operations[i].Revert(ctx, down, state); err != nil {
			return nil, fmt.Errorf("rendering %s down: %w", p.ID, err)
		}
	}

	l.WithFields(log.Fields{"up": len(up.Statements), "down": len(down.Statements)}).Debug("rendered plan")

	return &Migration{
		Migration: &migrate.Migration{
			Id:   p.ID,
			Up:   nonNil(up.Statements),
			Down: nonNil(down.Statements),
		},
		PostDeployment: p.PostDeployment,
	}, nil
}

// Source renders plans into a sql-migrate migration source.
func Source(ctx context.Context, plans []*Plan, vendor, alias string, state ProjectState) (*migrate.MemoryMigrationSource, error) {
	src := &migrate.MemoryMigrationSource{
		Migrations: make([]*migrate.Migration, 0, len(plans)),
	}
	for _, p := range plans {
		m, err := NewMigration(ctx, p, vendor, alias, state)
		if err != nil {
			return nil, err
		}
		src.Migrations = append(src.Migrations, m.Migration)
	}

	return src, nil
}

func nonNil(stmts []string) []string {
	if stmts == nil {
		return []string{}
	}
	return stmts
}
