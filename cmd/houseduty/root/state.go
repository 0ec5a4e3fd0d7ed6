package root

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"houseduty/internal/app"
	"houseduty/internal/statefile"
)

func newStateCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the persisted fairness state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = configPath
			opts.Quiet = quiet
			opts.Verbose = verbose
			a, err := app.New(opts, nil, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := statefile.LoadReadOnly(a.Config.Files.State, a.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "anchor_sunday:   %s\n", orDash(st.AnchorSunday))
			fmt.Fprintf(out, "last_run_sunday: %s\n", orDash(st.LastRunSunday))

			names := make([]string, 0, len(st.TaskCounts))
			for name := range st.TaskCounts {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintf(out, "\nlifetime task totals (%d people):\n", len(names))
			for _, name := range names {
				total := 0
				for _, n := range st.TaskCounts[name] {
					total += n
				}
				fmt.Fprintf(out, "  %-20s %d\n", name, total)
			}

			if len(st.BonusCounts) > 0 {
				keys := make([]string, 0, len(st.BonusCounts))
				for key := range st.BonusCounts {
					keys = append(keys, key)
				}
				sort.Strings(keys)

				fmt.Fprintln(out, "\nbonus cleanings per task:")
				for _, key := range keys {
					fmt.Fprintf(out, "  %-24s %d\n", key, st.BonusCounts[key])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Override state file path")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
