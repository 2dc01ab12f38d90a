package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/quest-resolver/internal/outcome"
	"github.com/talgya/quest-resolver/internal/party"
	"github.com/talgya/quest-resolver/internal/persistence"
	"github.com/talgya/quest-resolver/internal/quest"
)

var simulateFlags struct {
	party     string
	trials    int
	workers   int
	seed      int64
	escalated bool
	save      bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Roll a quest many times and compare frequencies with the computed chances",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.party, "party", "", "Party YAML file (required)")
	f.IntVar(&simulateFlags.trials, "trials", 100000, "Number of rolls")
	f.IntVar(&simulateFlags.workers, "workers", 0, "Parallel workers (0 = $QUESTSIM_WORKERS)")
	f.Int64Var(&simulateFlags.seed, "seed", 0, "RNG seed (0 = $QUESTSIM_SEED or fresh)")
	f.BoolVar(&simulateFlags.escalated, "escalated", false, "Quest owner has the escalation bonus")
	f.BoolVar(&simulateFlags.save, "save", false, "Record the run in the journal")

	_ = simulateCmd.MarkFlagRequired("party")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	req, err := loadRequest(simulateFlags.party, simulateFlags.escalated)
	if err != nil {
		return err
	}
	opts := quest.SimOptions{
		Trials:  simulateFlags.trials,
		Workers: simulateFlags.workers,
		Seed:    pickSeed(simulateFlags.seed),
	}
	if opts.Workers == 0 {
		opts.Workers = app.cfg.Workers
	}

	eng := quest.NewEngine[*party.Unit](app.reg)
	a, tally, err := eng.Simulate(cmd.Context(), req, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printAssessment(out, a)
	fmt.Fprintf(out, "Trials:    %s (%d workers, seed %d)\n",
		humanize.Comma(int64(tally.Trials)), opts.Workers, opts.Seed)

	freq := tally.Frequencies()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "OUTCOME\tCOUNT\tEXPECTED\tOBSERVED\t")
	for _, k := range outcome.Kinds {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t\n",
			k, humanize.Comma(int64(tally.Counts[k])), tally.Expected[k], freq[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Max deviation: %.4f\n", tally.MaxDeviation())
	fmt.Fprintf(out, "Mean exp:      %.1f\n", float64(tally.ExpTotal)/float64(tally.Trials))

	if !simulateFlags.save {
		return nil
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	run := persistence.NewRun(a, tally, opts, req.Escalated, time.Now())
	if err := db.SaveRun(run); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved run %s\n", run.ID)
	return nil
}
