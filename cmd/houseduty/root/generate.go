package root

import (
	"github.com/spf13/cobra"

	"houseduty/internal/app"
)

func newGenerateCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and assign the duty schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = configPath
			opts.Quiet = quiet
			opts.Verbose = verbose
			opts.SeedSet = cmd.Flags().Changed("seed")

			a, err := app.New(opts, nil, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Generate(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.StartSunday, "start", "", "Week start Sunday (YYYY-MM-DD, default: most recent Sunday)")
	cmd.Flags().IntVarP(&opts.Weeks, "weeks", "w", 0, "Number of weeks to generate")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed for tie-breaking jitter")
	cmd.Flags().IntVar(&opts.MinBonusRoster, "min-bonus-roster", 0, "Minimum house size before bonus cleanings activate")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the schedule without saving state, exports, or history")

	cmd.Flags().StringVar(&opts.RosterPath, "roster", "", "Override roster file path")
	cmd.Flags().StringVar(&opts.ConstraintsPath, "constraints", "", "Override constraints file path")
	cmd.Flags().StringVar(&opts.CategoriesPath, "categories", "", "Override categories file path")
	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Override state file path")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "Override CSV export path")
	cmd.Flags().StringVar(&opts.JSONPath, "json", "", "Override JSON export path")
	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "Override history database path")

	return cmd
}
