package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/quest-resolver/internal/outcome"
)

var runsFlags struct {
	limit int
	id    string
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled simulation runs",
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.IntVar(&runsFlags.limit, "limit", 20, "Maximum runs to list")
	f.StringVar(&runsFlags.id, "id", "", "Show a single run")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	out := cmd.OutOrStdout()

	if runsFlags.id != "" {
		r, err := db.LoadRun(runsFlags.id)
		if err != nil {
			return err
		}
		tally := r.Tally()
		freq := tally.Frequencies()
		fmt.Fprintf(out, "Run:       %s\n", r.ID)
		fmt.Fprintf(out, "When:      %s (%s)\n", r.Time().Format("2006-01-02 15:04:05"), humanize.Time(r.Time()))
		fmt.Fprintf(out, "Tier:      %s\n", r.Tier)
		fmt.Fprintf(out, "Effective: %s\n", r.EffectiveTier)
		fmt.Fprintf(out, "Trials:    %s (%d workers, seed %d)\n", humanize.Comma(int64(r.Trials)), r.Workers, r.Seed)
		fmt.Fprintf(out, "Money:     %s\n", humanize.Comma(int64(r.Money)))
		for _, k := range outcome.Kinds {
			fmt.Fprintf(out, "  %-9s expected %.4f observed %.4f\n", k, tally.Expected[k], freq[k])
		}
		fmt.Fprintf(out, "Max deviation: %.4f\n", tally.MaxDeviation())
		return nil
	}

	runs, err := db.ListRuns(runsFlags.limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded. Use 'questsim simulate --save' to add one.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tTIER\tEFFECTIVE\tTRIALS\tMAX DEV")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.4f\n",
			r.ID, humanize.Time(r.Time()), r.Tier, r.EffectiveTier,
			humanize.Comma(int64(r.Trials)), r.Tally().MaxDeviation())
	}
	return tw.Flush()
}
