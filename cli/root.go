// Package cli implements the adddefault command line interface.
package cli

import (
	"github.com/marianatek/adddefault/version"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	showVersion bool
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "adddefault.yml", "path to the configuration file")
	RootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")

	RootCmd.AddCommand(RenderCmd)
	RootCmd.AddCommand(MigrateCmd)
	RootCmd.AddCommand(NewCmd)
	RootCmd.AddCommand(VersionCmd)
}

// RootCmd is the main command for the 'adddefault' binary.
var RootCmd = &cobra.Command{
	Use:           "adddefault",
	Short:         "`adddefault`",
	Long:          "`adddefault` manages database-level column defaults through reversible migrations.",
	SilenceUsage:  true,
	SilenceErrors: false,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			version.FprintVersion(cmd.OutOrStdout())
			return
		}
		cmd.Usage()
	},
}

// VersionCmd prints the version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version and exit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.FprintVersion(cmd.OutOrStdout())
	},
}
