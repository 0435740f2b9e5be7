package cli

import (
	"fmt"

	"github.com/marianatek/adddefault/migrations"
	"github.com/spf13/cobra"
)

var (
	newDir     string
	newPackage string
)

func init() {
	NewCmd.Flags().StringVarP(&newDir, "dir", "d", "migrations", "directory to create the plan file in")
	NewCmd.Flags().StringVarP(&newPackage, "package", "p", "migrations", "package name of the plan file")
}

// NewCmd creates a new plan file.
var NewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new migration plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := migrations.NewFromTemplate(newDir, newPackage, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
		return nil
	},
}
