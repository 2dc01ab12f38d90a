package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/outcome"
	"github.com/talgya/quest-resolver/internal/reward"
)

var tiersFlags struct {
	archetype string
	level     int
	save      bool
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List difficulty tiers with base chances and rewards",
	RunE:  runTiers,
}

func init() {
	f := tiersCmd.Flags()
	f.StringVar(&tiersFlags.archetype, "archetype", "", "Only this archetype (e.g. normal, hell)")
	f.IntVar(&tiersFlags.level, "level", 0, "Only this level (0 = all)")
	f.BoolVar(&tiersFlags.save, "save", false, "Snapshot the full catalog into the journal")
}

func runTiers(cmd *cobra.Command, _ []string) error {
	if a := tiersFlags.archetype; a != "" && !difficulty.IsArchetype(a) {
		return fmt.Errorf("unknown archetype %q", a)
	}
	tiers := app.reg.Filter(tiersFlags.archetype, tiersFlags.level)
	if len(tiers) == 0 {
		return fmt.Errorf("no tiers match archetype=%q level=%d", tiersFlags.archetype, tiersFlags.level)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TIER\tCRIT\tSUCCESS\tFAILURE\tDISASTER\tMONEY\tEXP\tBLESSINGS\t")
	for _, t := range tiers {
		money, err := reward.Money(t)
		if err != nil {
			return err
		}
		p := t.Base().Percentages()
		fmt.Fprintf(tw, "%s\t%d%%\t%d%%\t%d%%\t%d%%\t%s\t%s\t%d\t\n",
			t.Key(),
			p[outcome.Crit], p[outcome.Success], p[outcome.Failure], p[outcome.Disaster],
			humanize.Comma(int64(money)),
			strconv.FormatFloat(reward.BaseExp(t.Level()), 'f', 1, 64),
			t.BlessingOfLuckStacks(),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !tiersFlags.save {
		return nil
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.SaveTiers(app.reg.All()); err != nil {
		return fmt.Errorf("save tiers: %w", err)
	}
	if err := db.SaveMeta("catalog_max_level", strconv.Itoa(app.cfg.MaxLevel)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s tiers to %s\n", humanize.Comma(int64(app.reg.Len())), app.cfg.DBPath)
	return nil
}
