package migrations

import "context"

// Recorder is a SchemaEditor that collects statements instead of executing them. It is used to
// render operations into the Up/Down statements of a sql-migrate migration and for dry runs.
type Recorder struct {
	vendor string
	alias  string

	// Statements holds every statement passed to Execute, in order.
	Statements []string
}

// NewRecorder builds a Recorder that reports the given vendor and alias.
func NewRecorder(vendor, alias string) *Recorder {
	return &Recorder{vendor: vendor, alias: alias}
}

// Vendor implements SchemaEditor.
func (r *Recorder) Vendor() string {
	return r.vendor
}

// Alias implements SchemaEditor.
func (r *Recorder) Alias() string {
	return r.alias
}

// Execute implements SchemaEditor.
func (r *Recorder) Execute(_ context.Context, query string) error {
	r.Statements = append(r.Statements, query)
	return nil
}
