package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"houseduty/internal/app"
	"houseduty/internal/archive"
	"houseduty/internal/output"
)

func newHistoryCmd() *cobra.Command {
	var opts app.Options
	var limit int
	var person string

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List archived runs or show one run's schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = configPath
			opts.Quiet = quiet
			opts.Verbose = verbose
			a, err := app.New(opts, nil, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()
			if a.Config.Files.Archive == "" {
				return fmt.Errorf("no archive database configured")
			}

			ctx := cmd.Context()
			db, err := archive.Open(ctx, a.Config.Files.Archive)
			if err != nil {
				return err
			}
			defer db.Close()
			repo := archive.NewRepo(db)

			out := cmd.OutOrStdout()

			if person != "" {
				totals, err := repo.PersonTaskTotals(ctx, person)
				if err != nil {
					return err
				}
				if len(totals) == 0 {
					fmt.Fprintf(out, "no archived assignments for %s\n", person)
					return nil
				}
				for key, n := range totals {
					fmt.Fprintf(out, "%-24s %d\n", key, n)
				}
				return nil
			}

			if len(args) == 1 {
				items, err := repo.RunItems(ctx, args[0])
				if err != nil {
					return err
				}
				if len(items) == 0 {
					return fmt.Errorf("run %s not found", args[0])
				}
				return output.RenderByDeck(out, items, a.Config.Display.DeckOrder)
			}

			runs, err := repo.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no archived runs")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  weeks=%d roster=%d items=%d\n",
					run.ID, run.StartSunday, run.Weeks, run.RosterSize, run.ItemCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum runs to list (0 = all)")
	cmd.Flags().StringVar(&person, "person", "", "Show archived per-task totals for one person")
	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "Override history database path")

	return cmd
}
