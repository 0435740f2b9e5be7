package cli

import (
	"fmt"
	"io"

	"github.com/marianatek/adddefault/defaultvalue"
	"github.com/marianatek/adddefault/parse"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	table             string
	column            string
	value             string
	kind              string
	vendor            string
	down              bool
	lowercaseBooleans bool
}

var renderOpts renderOptions

func init() {
	f := RenderCmd.Flags()
	f.StringVarP(&renderOpts.table, "table", "t", "", "table name")
	f.StringVarP(&renderOpts.column, "column", "C", "", "column name")
	f.StringVar(&renderOpts.value, "value", "", "default value")
	f.StringVar(&renderOpts.kind, "type", parse.KindString, fmt.Sprintf("value type, one of %v", parse.Kinds))
	f.StringVar(&renderOpts.vendor, "vendor", "postgresql", "database vendor")
	f.BoolVar(&renderOpts.down, "down", false, "render the statement dropping the default")
	f.BoolVar(&renderOpts.lowercaseBooleans, "lowercase-booleans", false, "render booleans as 'true'/'false'")

	RenderCmd.MarkFlagRequired("table")
	RenderCmd.MarkFlagRequired("column")
}

// RenderCmd prints the statement setting or dropping a column default.
var RenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the SQL setting (or dropping) a column default",
	Long: "Print the SQL setting (or dropping) a column default. Nothing is printed for vendors " +
		"that are not PostgreSQL-compatible.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderStatement(cmd.OutOrStdout(), renderOpts)
	},
}

func renderStatement(w io.Writer, opts renderOptions) error {
	r := defaultvalue.Renderer{LowercaseBooleans: opts.lowercaseBooleans}
	vendor := defaultvalue.ParseVendor(opts.vendor)

	var (
		q  string
		ok bool
	)
	if opts.down {
		q, ok = r.DropDefault(opts.table, opts.column, vendor)
	} else {
		v, err := parse.Value("value", opts.value, opts.kind)
		if err != nil {
			return err
		}
		q, ok = r.SetDefault(opts.table, opts.column, vendor, v)
	}
	if !ok {
		return nil
	}

	_, err := fmt.Fprintln(w, q)
	return err
}
