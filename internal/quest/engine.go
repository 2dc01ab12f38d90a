// Package quest resolves complete quests: it picks the tier a quest actually
// plays at, computes its outcome distribution, rolls the outcome and pays
// out rewards, all against that single tier.
package quest

import (
	"fmt"
	"log/slog"

	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/entropy"
	"github.com/talgya/quest-resolver/internal/logging"
	"github.com/talgya/quest-resolver/internal/outcome"
	"github.com/talgya/quest-resolver/internal/resolve"
	"github.com/talgya/quest-resolver/internal/reward"
)

// Request describes one quest attempt.
type Request[A any] struct {
	Tier       difficulty.Key
	Escalated  bool // escalation bonus active for the quest owner
	Slots      resolve.Slots[A]
	Assignment resolve.Assignment[A]
}

// Assessment is everything about a quest that does not depend on randomness.
type Assessment struct {
	Nominal   *difficulty.Tier
	Effective *difficulty.Tier
	Breakdown resolve.Breakdown
	Money     int
}

// Chances returns the final outcome distribution.
func (a Assessment) Chances() outcome.Vector {
	return a.Breakdown.Chances
}

// Result is a resolved quest.
type Result struct {
	Assessment
	Outcome outcome.Kind
	Exp     int
}

// Engine resolves quests against a tier registry.
type Engine[A any] struct {
	reg   *difficulty.Registry
	rules resolve.Rules
	log   *slog.Logger
}

// NewEngine creates an engine using the default aggregation rules.
func NewEngine[A any](reg *difficulty.Registry) *Engine[A] {
	return &Engine[A]{
		reg:   reg,
		rules: resolve.DefaultRules(),
		log:   logging.New("quest"),
	}
}

// WithRules returns a copy of the engine using rules.
func (e *Engine[A]) WithRules(rules resolve.Rules) *Engine[A] {
	cp := *e
	cp.rules = rules
	return &cp
}

// Registry returns the tier registry the engine reads from.
func (e *Engine[A]) Registry() *difficulty.Registry {
	return e.reg
}

// Assess resolves the effective tier once and derives the chances and the
// money reward from it.
func (e *Engine[A]) Assess(req Request[A]) (Assessment, error) {
	nominal, err := e.reg.Get(req.Tier)
	if err != nil {
		return Assessment{}, err
	}
	effective, err := difficulty.ResolveEffective(e.reg, nominal, req.Escalated)
	if err != nil {
		return Assessment{}, fmt.Errorf("effective tier for %s: %w", nominal.Key(), err)
	}

	breakdown, err := resolve.ComputeOutcomeDetailed(e.rules, effective, req.Slots, req.Assignment)
	if err != nil {
		return Assessment{}, fmt.Errorf("compute outcome: %w", err)
	}
	money, err := reward.Money(effective)
	if err != nil {
		return Assessment{}, fmt.Errorf("money reward: %w", err)
	}

	e.log.Debug("quest assessed",
		"tier", nominal.Key(),
		"effective", effective.Key(),
		"chances", breakdown.Chances.String(),
		"mitigation", breakdown.Mitigation,
		"money", money,
	)
	return Assessment{
		Nominal:   nominal,
		Effective: effective,
		Breakdown: breakdown,
		Money:     money,
	}, nil
}

// Roll samples the outcome and the exp reward for an assessed quest.
func (e *Engine[A]) Roll(a Assessment, src entropy.Source) (Result, error) {
	kind, err := outcome.Sample(a.Chances(), src)
	if err != nil {
		return Result{}, err
	}
	exp, err := reward.Exp(a.Effective, src)
	if err != nil {
		return Result{}, fmt.Errorf("exp reward: %w", err)
	}
	return Result{Assessment: a, Outcome: kind, Exp: exp}, nil
}

// Resolve assesses and rolls a quest in one step.
func (e *Engine[A]) Resolve(req Request[A], src entropy.Source) (Result, error) {
	a, err := e.Assess(req)
	if err != nil {
		return Result{}, err
	}
	res, err := e.Roll(a, src)
	if err != nil {
		return Result{}, err
	}
	e.log.Debug("quest resolved", "tier", req.Tier, "outcome", res.Outcome, "exp", res.Exp)
	return res, nil
}
