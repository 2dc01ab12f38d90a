// Package persistence provides SQLite storage for the tier catalog snapshot
// and the journal of simulation runs.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/quest-resolver/internal/difficulty"
	"github.com/talgya/quest-resolver/internal/outcome"
	"github.com/talgya/quest-resolver/internal/quest"
)

// ErrRunNotFound is returned when a run ID is not in the journal.
var ErrRunNotFound = errors.New("run not found")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tiers (
		key TEXT PRIMARY KEY,
		archetype TEXT NOT NULL,
		level INTEGER NOT NULL,
		base_crit REAL NOT NULL,
		base_success REAL NOT NULL,
		base_failure REAL NOT NULL,
		base_disaster REAL NOT NULL,
		offset_crit REAL NOT NULL,
		offset_success REAL NOT NULL,
		offset_failure REAL NOT NULL,
		offset_disaster REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		tier TEXT NOT NULL,
		effective_tier TEXT NOT NULL,
		escalated INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		trials INTEGER NOT NULL,
		money INTEGER NOT NULL,
		exp_total INTEGER NOT NULL,
		chance_crit REAL NOT NULL,
		chance_success REAL NOT NULL,
		chance_failure REAL NOT NULL,
		chance_disaster REAL NOT NULL,
		count_crit INTEGER NOT NULL,
		count_success INTEGER NOT NULL,
		count_failure INTEGER NOT NULL,
		count_disaster INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tiers_archetype ON tiers(archetype, level);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// TierRow is the stored snapshot of one tier.
type TierRow struct {
	Key            string  `db:"key"`
	Archetype      string  `db:"archetype"`
	Level          int     `db:"level"`
	BaseCrit       float64 `db:"base_crit"`
	BaseSuccess    float64 `db:"base_success"`
	BaseFailure    float64 `db:"base_failure"`
	BaseDisaster   float64 `db:"base_disaster"`
	OffsetCrit     float64 `db:"offset_crit"`
	OffsetSuccess  float64 `db:"offset_success"`
	OffsetFailure  float64 `db:"offset_failure"`
	OffsetDisaster float64 `db:"offset_disaster"`
}

// Base returns the stored base chances.
func (r TierRow) Base() outcome.Vector {
	return outcome.Of(r.BaseCrit, r.BaseSuccess, r.BaseFailure, r.BaseDisaster)
}

// Offsets returns the stored offset multipliers.
func (r TierRow) Offsets() outcome.Vector {
	return outcome.Of(r.OffsetCrit, r.OffsetSuccess, r.OffsetFailure, r.OffsetDisaster)
}

// SaveTiers replaces the catalog snapshot with tiers.
func (db *DB) SaveTiers(tiers []*difficulty.Tier) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tiers"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO tiers
		(key, archetype, level,
		 base_crit, base_success, base_failure, base_disaster,
		 offset_crit, offset_success, offset_failure, offset_disaster)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tiers {
		b, o := t.Base(), t.Offsets()
		_, err := stmt.Exec(
			string(t.Key()), t.Archetype(), t.Level(),
			b[outcome.Crit], b[outcome.Success], b[outcome.Failure], b[outcome.Disaster],
			o[outcome.Crit], o[outcome.Success], o[outcome.Failure], o[outcome.Disaster],
		)
		if err != nil {
			return fmt.Errorf("insert tier %s: %w", t.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("tier catalog saved", "tiers", len(tiers))
	return nil
}

// TierCount returns the number of tiers in the snapshot.
func (db *DB) TierCount() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM tiers")
	return n, err
}

// LoadTier returns the snapshot row for key.
func (db *DB) LoadTier(key difficulty.Key) (TierRow, error) {
	var row TierRow
	err := db.conn.Get(&row, "SELECT * FROM tiers WHERE key = ?", string(key))
	if errors.Is(err, sql.ErrNoRows) {
		return TierRow{}, fmt.Errorf("tier %q: %w", key, difficulty.ErrTierNotFound)
	}
	return row, err
}

// Run is one journaled Monte Carlo run.
type Run struct {
	ID             string  `db:"id"`
	CreatedAt      int64   `db:"created_at"` // unix seconds
	Tier           string  `db:"tier"`
	EffectiveTier  string  `db:"effective_tier"`
	Escalated      bool    `db:"escalated"`
	Seed           int64   `db:"seed"`
	Workers        int     `db:"workers"`
	Trials         int     `db:"trials"`
	Money          int     `db:"money"`
	ExpTotal       int     `db:"exp_total"`
	ChanceCrit     float64 `db:"chance_crit"`
	ChanceSuccess  float64 `db:"chance_success"`
	ChanceFailure  float64 `db:"chance_failure"`
	ChanceDisaster float64 `db:"chance_disaster"`
	CountCrit      int     `db:"count_crit"`
	CountSuccess   int     `db:"count_success"`
	CountFailure   int     `db:"count_failure"`
	CountDisaster  int     `db:"count_disaster"`
}

// NewRun builds a journal entry for a finished simulation.
func NewRun(a quest.Assessment, t quest.Tally, opts quest.SimOptions, escalated bool, now time.Time) Run {
	c := a.Chances()
	return Run{
		ID:             uuid.NewString(),
		CreatedAt:      now.Unix(),
		Tier:           string(a.Nominal.Key()),
		EffectiveTier:  string(a.Effective.Key()),
		Escalated:      escalated,
		Seed:           opts.Seed,
		Workers:        opts.Workers,
		Trials:         t.Trials,
		Money:          a.Money,
		ExpTotal:       t.ExpTotal,
		ChanceCrit:     c[outcome.Crit],
		ChanceSuccess:  c[outcome.Success],
		ChanceFailure:  c[outcome.Failure],
		ChanceDisaster: c[outcome.Disaster],
		CountCrit:      t.Counts[outcome.Crit],
		CountSuccess:   t.Counts[outcome.Success],
		CountFailure:   t.Counts[outcome.Failure],
		CountDisaster:  t.Counts[outcome.Disaster],
	}
}

// Chances returns the computed distribution of the run.
func (r Run) Chances() outcome.Vector {
	return outcome.Of(r.ChanceCrit, r.ChanceSuccess, r.ChanceFailure, r.ChanceDisaster)
}

// Tally rebuilds the run's tally.
func (r Run) Tally() quest.Tally {
	return quest.Tally{
		Trials:   r.Trials,
		Counts:   [outcome.NumKinds]int{r.CountCrit, r.CountSuccess, r.CountFailure, r.CountDisaster},
		ExpTotal: r.ExpTotal,
		Expected: r.Chances(),
	}
}

// Time returns the creation time.
func (r Run) Time() time.Time {
	return time.Unix(r.CreatedAt, 0)
}

// SaveRun appends a run to the journal.
func (db *DB) SaveRun(r Run) error {
	_, err := db.conn.NamedExec(`INSERT INTO runs
		(id, created_at, tier, effective_tier, escalated, seed, workers, trials, money, exp_total,
		 chance_crit, chance_success, chance_failure, chance_disaster,
		 count_crit, count_success, count_failure, count_disaster)
		VALUES (:id, :created_at, :tier, :effective_tier, :escalated, :seed, :workers, :trials, :money, :exp_total,
		 :chance_crit, :chance_success, :chance_failure, :chance_disaster,
		 :count_crit, :count_success, :count_failure, :count_disaster)`, r)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

// LoadRun returns the run with id.
func (db *DB) LoadRun(id string) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	return r, err
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
