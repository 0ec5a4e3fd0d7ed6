package root

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"houseduty/internal/app"
	"houseduty/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var opts app.Options
	var debounce time.Duration
	var commit bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch config files and regenerate on change",
		Long:  "watch regenerates the schedule whenever the roster, constraints, categories, or config file changes. Regenerations are previews unless --commit is set; committed runs persist state, exports, and history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = configPath
			opts.Quiet = quiet
			opts.Verbose = verbose
			opts.DryRun = !commit

			a, err := app.New(opts, nil, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()
			logger := a.Logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Initial pass so a fresh daemon starts with a schedule.
			if err := a.Generate(ctx); err != nil {
				logger.Printf("ERROR initial generation failed err=%v", err)
			}

			w := watch.New(a.WatchedPaths(), debounce, func(ctx context.Context) error {
				// Reload so config edits take effect on the next pass.
				fresh, err := app.New(opts, logger, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return fresh.Generate(ctx)
			}, logger)

			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period before regenerating after a change")
	cmd.Flags().BoolVar(&commit, "commit", false, "Persist state, exports, and history on each regeneration")
	cmd.Flags().StringVar(&opts.RosterPath, "roster", "", "Override roster file path")
	cmd.Flags().StringVar(&opts.ConstraintsPath, "constraints", "", "Override constraints file path")
	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Override state file path")

	return cmd
}
