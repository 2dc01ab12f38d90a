package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/quest-resolver/internal/entropy"
	"github.com/talgya/quest-resolver/internal/outcome"
	"github.com/talgya/quest-resolver/internal/party"
	"github.com/talgya/quest-resolver/internal/quest"
)

var resolveFlags struct {
	party     string
	seed      int64
	escalated bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Compute a party's chances on a quest and roll the outcome",
	RunE:  runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveFlags.party, "party", "", "Party YAML file (required)")
	f.Int64Var(&resolveFlags.seed, "seed", 0, "RNG seed (0 = $QUESTSIM_SEED or fresh)")
	f.BoolVar(&resolveFlags.escalated, "escalated", false, "Quest owner has the escalation bonus")

	_ = resolveCmd.MarkFlagRequired("party")
}

// loadRequest reads a party file and applies the escalation overrides.
func loadRequest(path string, escalated bool) (quest.Request[*party.Unit], error) {
	f, err := party.Load(path)
	if err != nil {
		return quest.Request[*party.Unit]{}, err
	}
	req := f.Request()
	req.Escalated = req.Escalated || escalated || app.cfg.Escalated
	return req, nil
}

func runResolve(cmd *cobra.Command, _ []string) error {
	req, err := loadRequest(resolveFlags.party, resolveFlags.escalated)
	if err != nil {
		return err
	}
	seed := pickSeed(resolveFlags.seed)

	eng := quest.NewEngine[*party.Unit](app.reg)
	res, err := eng.Resolve(req, entropy.NewSeeded(seed))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printAssessment(out, res.Assessment)
	fmt.Fprintf(out, "Outcome:   %s\n", res.Outcome)
	fmt.Fprintf(out, "Exp:       %d\n", res.Exp)
	fmt.Fprintf(out, "Seed:      %d\n", seed)
	return nil
}

func printAssessment(out io.Writer, a quest.Assessment) {
	fmt.Fprintf(out, "Tier:      %s\n", a.Nominal.Name())
	if a.Effective != a.Nominal {
		fmt.Fprintf(out, "Effective: %s (escalated)\n", a.Effective.Name())
	}

	b := a.Breakdown
	names := make([]string, 0, len(b.PerSlot))
	for name := range b.PerSlot {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(out, "Slots:\n")
	for _, name := range names {
		fmt.Fprintf(out, "  %-12s %s\n", name, b.PerSlot[name])
	}
	fmt.Fprintf(out, "Offsets:   %s\n", b.Offsets)
	if b.Mitigation > 0 {
		fmt.Fprintf(out, "Mitigated: %.4f disaster\n", b.Mitigation)
	}

	p := a.Chances().Percentages()
	fmt.Fprintf(out, "Chances:   crit %d%%  success %d%%  failure %d%%  disaster %d%%\n",
		p[outcome.Crit], p[outcome.Success], p[outcome.Failure], p[outcome.Disaster])
	fmt.Fprintf(out, "Money:     %s\n", humanize.Comma(int64(a.Money)))
}
