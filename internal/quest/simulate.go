package quest

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/quest-resolver/internal/entropy"
	"github.com/talgya/quest-resolver/internal/outcome"
)

// SimOptions controls a Monte Carlo run.
type SimOptions struct {
	Trials  int
	Workers int   // <= 1 runs inline
	Seed    int64 // worker w draws from Seed+w
}

// Tally aggregates the results of a Monte Carlo run.
type Tally struct {
	Trials   int
	Counts   [outcome.NumKinds]int
	ExpTotal int
	Expected outcome.Vector
}

// Frequencies returns the observed share of each outcome.
func (t Tally) Frequencies() outcome.Vector {
	var f outcome.Vector
	if t.Trials == 0 {
		return f
	}
	for i, c := range t.Counts {
		f[i] = float64(c) / float64(t.Trials)
	}
	return f
}

// MaxDeviation returns the largest gap between observed frequency and
// computed chance across the four outcomes.
func (t Tally) MaxDeviation() float64 {
	freq := t.Frequencies()
	worst := 0.0
	for _, k := range outcome.Kinds {
		worst = math.Max(worst, math.Abs(freq[k]-t.Expected[k]))
	}
	return worst
}

func (t *Tally) merge(o Tally) {
	t.Trials += o.Trials
	t.ExpTotal += o.ExpTotal
	for i := range t.Counts {
		t.Counts[i] += o.Counts[i]
	}
}

// Simulate assesses the quest once and rolls it opts.Trials times, fanning
// the rolls out over opts.Workers goroutines. The tally is deterministic for
// a given (Seed, Workers, Trials).
func (e *Engine[A]) Simulate(ctx context.Context, req Request[A], opts SimOptions) (Assessment, Tally, error) {
	if opts.Trials <= 0 {
		return Assessment{}, Tally{}, fmt.Errorf("trials must be > 0, got %d", opts.Trials)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Trials {
		workers = opts.Trials
	}

	a, err := e.Assess(req)
	if err != nil {
		return Assessment{}, Tally{}, err
	}

	parts := make([]Tally, workers)
	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		share := opts.Trials / workers
		if w < opts.Trials%workers {
			share++
		}
		src := entropy.NewSeeded(opts.Seed + int64(w))
		g.Go(func() error {
			for i := 0; i < share; i++ {
				if i%1024 == 0 {
					if err := gCtx.Err(); err != nil {
						return err
					}
				}
				res, err := e.Roll(a, src)
				if err != nil {
					return err
				}
				parts[w].Trials++
				parts[w].Counts[res.Outcome]++
				parts[w].ExpTotal += res.Exp
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Assessment{}, Tally{}, fmt.Errorf("simulate %s: %w", req.Tier, err)
	}

	total := Tally{Expected: a.Chances()}
	for _, p := range parts {
		total.merge(p)
	}
	e.log.Info("simulation complete",
		"tier", a.Effective.Key(),
		"trials", total.Trials,
		"workers", workers,
		"max_deviation", total.MaxDeviation(),
	)
	return a, total, nil
}
