package cli

import (
	"github.com/spf13/cobra"

	"github.com/lieblius/docmirror/internal/logger"
)

var (
	version = "dev"

	cfgPath     string
	verboseMode bool
)

var rootCmd = &cobra.Command{
	Use:   "docmirror",
	Short: "Mirror a remote documentation set onto local storage",
	Long: `docmirror keeps a local mirror of a remote, index-enumerated
documentation set fresh without re-downloading unchanged content and
without overwhelming the remote server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseMode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
