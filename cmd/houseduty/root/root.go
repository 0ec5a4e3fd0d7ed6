// Package root defines the houseduty command tree.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "1.0.0"

var (
	configPath string
	quiet      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "houseduty",
	Short:         "Fair recurring duty scheduler for a shared house",
	Long:          "houseduty expands the weekly duty catalog into dated occurrences and assigns them with a fairness-scored rotation that remembers past runs.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/duty_config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress log output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newWatchCmd(),
		newHistoryCmd(),
		newStateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
