// Package defaultvalue renders database-level column defaults into SQL.
//
// Rendering is a pure function of the target identifiers, the database vendor and the value. Only
// PostgreSQL-compatible vendors produce SQL; every other vendor is a silent no-op so that the same
// migration can be shipped to databases where column defaults are managed elsewhere.
package defaultvalue

import (
	"fmt"
	"strings"
)

const (
	setDefaultFormat  = `ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s;`
	dropDefaultFormat = `ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT;`

	postgresPrefix = "postgre"
)

// Vendor is the database capability tag decided once from a connection vendor string.
type Vendor int

const (
	// VendorOther is any database that does not get database-level defaults.
	VendorOther Vendor = iota
	// VendorPostgres is any PostgreSQL-compatible database.
	VendorPostgres
)

// ParseVendor maps a connection vendor string (e.g. "postgresql") to a Vendor. The match is a
// case-sensitive prefix match on "postgre".
func ParseVendor(s string) Vendor {
	if strings.HasPrefix(s, postgresPrefix) {
		return VendorPostgres
	}
	return VendorOther
}

// String implements fmt.Stringer.
func (v Vendor) String() string {
	switch v {
	case VendorPostgres:
		return "postgres"
	default:
		return "other"
	}
}

// Supported reports whether SQL is generated for v.
func (v Vendor) Supported() bool {
	return v == VendorPostgres
}

// Renderer renders SET/DROP DEFAULT statements. The zero value is ready to use.
type Renderer struct {
	// LowercaseBooleans renders booleans as 'true'/'false'. When unset booleans render as
	// 'True'/'False', which is what existing migrations and their assertions expect.
	LowercaseBooleans bool
}

var defaultRenderer Renderer

// SetDefault returns the statement setting the default of table.column to value. The second return
// value is false, and the statement empty, when vendor is not supported.
func (r Renderer) SetDefault(table, column string, vendor Vendor, value interface{}) (string, bool) {
	if !vendor.Supported() {
		return "", false
	}

	v := r.clean(value)
	return fmt.Sprintf(setDefaultFormat, quoteIdent(table), quoteIdent(column), v), true
}

// DropDefault returns the statement dropping the default of table.column. The second return value is
// false, and the statement empty, when vendor is not supported.
func (r Renderer) DropDefault(table, column string, vendor Vendor) (string, bool) {
	if !vendor.Supported() {
		return "", false
	}

	return fmt.Sprintf(dropDefaultFormat, quoteIdent(table), quoteIdent(column)), true
}

// Text returns the unquoted textual form of value, as used in descriptions.
func (r Renderer) Text(value interface{}) string {
	return r.clean(value).text
}

// RenderSetDefault renders a SET DEFAULT statement with the default Renderer.
func RenderSetDefault(table, column string, vendor Vendor, value interface{}) (string, bool) {
	return defaultRenderer.SetDefault(table, column, vendor, value)
}

// RenderDropDefault renders a DROP DEFAULT statement with the default Renderer.
func RenderDropDefault(table, column string, vendor Vendor) (string, bool) {
	return defaultRenderer.DropDefault(table, column, vendor)
}

// Describe returns a human readable summary of adding value as the default of model.field.
func Describe(model, field string, value interface{}) string {
	return fmt.Sprintf("Add to field %s.%s the default value %s", model, field, describeValue(value))
}

func describeValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case Sentinel:
		return string(v)
	case string:
		return v
	}
	return defaultRenderer.Text(value)
}

// DefaultSpec describes one column default for a single rendering call.
type DefaultSpec struct {
	Table  string
	Column string
	Vendor Vendor
	Value  interface{}
}

// SetDefaultSQL renders the SET DEFAULT statement for s.
func (s DefaultSpec) SetDefaultSQL() (string, bool) {
	return RenderSetDefault(s.Table, s.Column, s.Vendor, s.Value)
}

// DropDefaultSQL renders the DROP DEFAULT statement for s.
func (s DefaultSpec) DropDefaultSQL() (string, bool) {
	return RenderDropDefault(s.Table, s.Column, s.Vendor)
}

// quoteIdent double quotes a table or column name, doubling embedded double quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
