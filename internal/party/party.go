// Package party reads quest party files: the units on a quest, the slots
// they fill, and the criteria each slot judges its unit by.
package party

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/outcome"
	"github.com/talgya/quest-resolver/internal/quest"
	"github.com/talgya/quest-resolver/internal/resolve"
)

// Unit is a quest participant.
type Unit struct {
	Name   string             `yaml:"name"`
	Skills map[string]float64 `yaml:"skills"`
	Traits []string           `yaml:"traits"`
}

// HasTrait reports whether the unit carries trait.
func (u *Unit) HasTrait(trait string) bool {
	return slices.Contains(u.Traits, trait)
}

// Criteria scores a unit for one slot. Success is the weighted skill sum,
// crit and disaster count the matching traits.
type Criteria struct {
	Skills   map[string]float64 `yaml:"skills"`
	Crit     []string           `yaml:"crit"`
	Disaster []string           `yaml:"disaster"`
}

// SuccessModifiers implements resolve.Criteria.
func (c Criteria) SuccessModifiers(u *Unit) outcome.Vector {
	var v outcome.Vector
	for _, skill := range slices.Sorted(maps.Keys(c.Skills)) {
		v[outcome.Success] += u.Skills[skill] * c.Skills[skill]
	}
	for _, t := range c.Crit {
		if u.HasTrait(t) {
			v[outcome.Crit]++
		}
	}
	for _, t := range c.Disaster {
		if u.HasTrait(t) {
			v[outcome.Disaster]++
		}
	}
	return v
}

// Slot is one position in the party file.
type Slot struct {
	Name     string  `yaml:"name"`
	Unit     string  `yaml:"unit"` // empty leaves the slot unassigned
	Weight   float64 `yaml:"weight"`
	Criteria `yaml:",inline"`
}

// File is a decoded party file.
type File struct {
	Tier      string `yaml:"tier"`
	Escalated bool   `yaml:"escalated"`
	Units     []Unit `yaml:"units"`
	Slots     []Slot `yaml:"slots"`
}

// Load reads and validates a party file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read party file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates party YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse party: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.Tier == "" {
		return fmt.Errorf("party: tier is required")
	}
	units := make(map[string]bool, len(f.Units))
	for _, u := range f.Units {
		if u.Name == "" {
			return fmt.Errorf("party: unit without name")
		}
		if units[u.Name] {
			return fmt.Errorf("party: duplicate unit %q", u.Name)
		}
		units[u.Name] = true
	}
	if len(f.Slots) == 0 {
		return fmt.Errorf("party: at least one slot is required")
	}
	slots := make(map[string]bool, len(f.Slots))
	for _, s := range f.Slots {
		if s.Name == "" {
			return fmt.Errorf("party: slot without name")
		}
		if slots[s.Name] {
			return fmt.Errorf("party: duplicate slot %q", s.Name)
		}
		slots[s.Name] = true
		if s.Unit != "" && !units[s.Unit] {
			return fmt.Errorf("party: slot %q references unknown unit %q", s.Name, s.Unit)
		}
	}
	return nil
}

// Request turns the file into a quest request.
func (f *File) Request() quest.Request[*Unit] {
	byName := make(map[string]*Unit, len(f.Units))
	for i := range f.Units {
		byName[f.Units[i].Name] = &f.Units[i]
	}

	slots := make(resolve.Slots[*Unit], len(f.Slots))
	assignment := make(resolve.Assignment[*Unit], len(f.Slots))
	for _, s := range f.Slots {
		slots[s.Name] = resolve.Slot[*Unit]{Criteria: s.Criteria, Weight: s.Weight}
		if s.Unit != "" {
			assignment[s.Name] = byName[s.Unit]
		}
	}
	return quest.Request[*Unit]{
		Tier:       difficulty.Key(f.Tier),
		Escalated:  f.Escalated,
		Slots:      slots,
		Assignment: assignment,
	}
}
