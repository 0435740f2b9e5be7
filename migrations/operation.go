//go:generate mockgen -package mocks -destination mocks/operation.go . SchemaEditor,ProjectState

package migrations

import (
	"context"
	"fmt"

	"github.com/marianatek/adddefault/defaultvalue"
	"github.com/marianatek/adddefault/log"
	"github.com/marianatek/adddefault/metrics"
)

// AddDefaultValueName is the serialized name of AddDefaultValue.
const AddDefaultValueName = "AddDefaultValue"

// SchemaEditor executes schema statements on a database connection.
type SchemaEditor interface {
	// Vendor returns the connection vendor, e.g. "postgresql".
	Vendor() string
	// Alias returns the name of the database connection.
	Alias() string
	// Execute runs query.
	Execute(ctx context.Context, query string) error
}

// Operation is a reversible schema change.
type Operation interface {
	// Apply performs the change in the forwards direction.
	Apply(ctx context.Context, editor SchemaEditor, state ProjectState) error
	// Revert undoes the change.
	Revert(ctx context.Context, editor SchemaEditor, state ProjectState) error
	// Describe returns a brief summary of the change.
	Describe() string
	// Serialize returns the operation name and the arguments needed to rebuild it with Deserialize.
	Serialize() (string, map[string]interface{})
}

// AddDefaultValue sets a database-level default on an existing column. Forwards sets the default,
// backwards drops it. Databases that are not PostgreSQL-compatible are left untouched.
type AddDefaultValue struct {
	ModelName string      `mapstructure:"model_name"`
	Name      string      `mapstructure:"name"`
	Value     interface{} `mapstructure:"value"`

	// Renderer controls value rendering. The zero value keeps booleans as 'True'/'False'.
	Renderer defaultvalue.Renderer `mapstructure:"-"`
}

// NewAddDefaultValue returns an operation setting value as the default of the name column of model.
func NewAddDefaultValue(model, name string, value interface{}) *AddDefaultValue {
	return &AddDefaultValue{ModelName: model, Name: name, Value: value}
}

// Reversible reports that the operation can be reverted.
func (o *AddDefaultValue) Reversible() bool {
	return true
}

// Describe implements Operation.
func (o *AddDefaultValue) Describe() string {
	return defaultvalue.Describe(o.ModelName, o.Name, o.Value)
}

// Serialize implements Operation.
func (o *AddDefaultValue) Serialize() (string, map[string]interface{}) {
	return AddDefaultValueName, map[string]interface{}{
		"model_name": o.ModelName,
		"name":       o.Name,
		"value":      o.Value,
	}
}

// Apply implements Operation.
func (o *AddDefaultValue) Apply(ctx context.Context, editor SchemaEditor, state ProjectState) error {
	return o.run(ctx, editor, state, metrics.DirectionForwards, metrics.KindSetDefault,
		func(table string, vendor defaultvalue.Vendor) (string, bool) {
			return o.Renderer.SetDefault(table, o.Name, vendor, o.Value)
		})
}

// Revert implements Operation.
func (o *AddDefaultValue) Revert(ctx context.Context, editor SchemaEditor, state ProjectState) error {
	return o.run(ctx, editor, state, metrics.DirectionBackwards, metrics.KindDropDefault,
		func(table string, vendor defaultvalue.Vendor) (string, bool) {
			return o.Renderer.DropDefault(table, o.Name, vendor)
		})
}

type renderFunc func(table string, vendor defaultvalue.Vendor) (string, bool)

func (o *AddDefaultValue) run(ctx context.Context, editor SchemaEditor, state ProjectState, direction, kind string, render renderFunc) error {
	l := log.FromContext(ctx).WithFields(log.Fields{
		"model":     o.ModelName,
		"column":    o.Name,
		"direction": direction,
		"db.alias":  editor.Alias(),
	})

	vendor := defaultvalue.ParseVendor(editor.Vendor())
	if !vendor.Supported() {
		l.WithFields(log.Fields{"vendor": editor.Vendor(), "reason": "unsupported vendor"}).Debug("skipping default value")
		metrics.Operation(direction, metrics.OutcomeSkipped)
		return nil
	}
	if !state.AllowMigrate(editor.Alias(), o.ModelName) {
		l.WithFields(log.Fields{"reason": "model not routed to database"}).Debug("skipping default value")
		metrics.Operation(direction, metrics.OutcomeSkipped)
		return nil
	}

	table, err := state.DBTable(o.ModelName)
	if err != nil {
		metrics.Operation(direction, metrics.OutcomeFailed)
		return fmt.Errorf("resolving table: %w", err)
	}

	q, ok := render(table, vendor)
	if !ok {
		metrics.Operation(direction, metrics.OutcomeSkipped)
		return nil
	}
	metrics.StatementRendered(kind)

	l.WithFields(log.Fields{"table": table, "statement": q}).Debug("executing default value statement")
	if err := editor.Execute(ctx, q); err != nil {
		metrics.Operation(direction, metrics.OutcomeFailed)
		return fmt.Errorf("executing %q: %w", q, err)
	}

	metrics.Operation(direction, outcome(editor))
	return nil
}

// outcome distinguishes statements that reached a database from statements only recorded for a
// later run.
func outcome(editor SchemaEditor) string {
	if _, ok := editor.(*Recorder); ok {
		return metrics.OutcomeRendered
	}
	return metrics.OutcomeApplied
}
