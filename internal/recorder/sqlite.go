package recorder

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"OptionSentinel/internal/model"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps dashboards reading while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id           TEXT PRIMARY KEY,
			triggered_by TEXT NOT NULL,
			started_at   INTEGER NOT NULL,
			finished_at  INTEGER NOT NULL,
			symbols      INTEGER,
			analyzed     INTEGER,
			high         INTEGER,
			medium       INTEGER,
			low          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON analysis_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               TEXT NOT NULL REFERENCES analysis_runs(id),
			symbol               TEXT NOT NULL,
			spot                 REAL,
			change_pct           REAL,
			rsi                  REAL,
			trend                TEXT,
			sentiment            REAL,
			archetype            TEXT,
			intended             TEXT,
			tier                 TEXT,
			base_confidence      INTEGER,
			final_confidence     INTEGER,
			investment           REAL,
			max_profit           REAL,
			max_profit_unbounded INTEGER,
			max_loss             REAL,
			risk_reward          REAL,
			backtest_score       REAL,
			backtest_verdict     TEXT,
			rejection_reason     TEXT,
			legs                 TEXT,
			analyzed_at          INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recs_run ON recommendations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recs_symbol ON recommendations(symbol, analyzed_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run and every result in one transaction.
func (r *SQLiteRecorder) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	counts := map[model.Tier]int{}
	for _, res := range run.Results {
		counts[res.Tier]++
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO analysis_runs
		(id, triggered_by, started_at, finished_at, symbols, analyzed, high, medium, low)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Trigger, run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Symbols, len(run.Results),
		counts[model.TierHigh], counts[model.TierMedium], counts[model.TierLow],
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO recommendations
		(run_id, symbol, spot, change_pct, rsi, trend, sentiment,
		 archetype, intended, tier, base_confidence, final_confidence,
		 investment, max_profit, max_profit_unbounded, max_loss, risk_reward,
		 backtest_score, backtest_verdict, rejection_reason, legs, analyzed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, res := range run.Results {
		rec := res.Recommendation
		legs, err := json.Marshal(rec.Legs)
		if err != nil {
			return fmt.Errorf("encode legs %s: %w", res.Symbol, err)
		}
		var btScore sql.NullFloat64
		var btVerdict sql.NullString
		if rec.Backtest != nil {
			btScore = sql.NullFloat64{Float64: rec.Backtest.Score, Valid: true}
			btVerdict = sql.NullString{String: string(rec.Backtest.Verdict), Valid: true}
		}
		if _, err := stmt.Exec(
			run.ID, res.Symbol, res.Price.CurrentPrice, res.Price.ChangePercent,
			res.Technical.RSI, string(res.Technical.Trend), res.Sentiment.Score,
			rec.Archetype.String(), rec.Intended.String(), string(res.Tier),
			res.BaseConfidence, rec.FinalConfidence,
			rec.Investment, rec.MaxProfit, rec.MaxProfitUnbounded, rec.MaxLoss, rec.RiskReward,
			btScore, btVerdict, rec.RejectionReason, string(legs), res.AnalyzedAt.Unix(),
		); err != nil {
			return fmt.Errorf("insert %s: %w", res.Symbol, err)
		}
	}
	return tx.Commit()
}

// LatestRun summarises the most recent run with up to top accepted picks.
func (r *SQLiteRecorder) LatestRun(top int) (*RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		s                 RunSummary
		started, finished int64
		high, medium, low int
	)
	err := r.db.QueryRow(`SELECT id, triggered_by, started_at, finished_at, symbols, analyzed, high, medium, low
		FROM analysis_runs ORDER BY started_at DESC, rowid DESC LIMIT 1`).
		Scan(&s.ID, &s.Trigger, &started, &finished, &s.Symbols, &s.Analyzed, &high, &medium, &low)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	s.StartedAt = time.Unix(started, 0)
	s.FinishedAt = time.Unix(finished, 0)
	s.Counts = map[model.Tier]int{model.TierHigh: high, model.TierMedium: medium, model.TierLow: low}

	if top <= 0 {
		return &s, nil
	}
	rows, err := r.db.Query(`SELECT symbol, archetype, tier, final_confidence, investment
		FROM recommendations
		WHERE run_id = ? AND investment > 0
		ORDER BY final_confidence DESC, id ASC LIMIT ?`, s.ID, top)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p Pick
		var tier string
		if err := rows.Scan(&p.Symbol, &p.Archetype, &tier, &p.FinalConfidence, &p.Investment); err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		p.Tier = model.Tier(tier)
		s.Top = append(s.Top, p)
	}
	return &s, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
