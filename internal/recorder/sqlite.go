package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"EquitySentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluations to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			symbol            TEXT NOT NULL,
			price             REAL,
			rsi               REAL,
			macd_line         REAL,
			signal_line       REAL,
			price_to_earnings REAL,
			price_to_book     REAL,
			score             INTEGER NOT NULL,
			label             TEXT NOT NULL,
			source            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, symbol, price, rsi, macd_line, signal_line,
		 price_to_earnings, price_to_book, score, label, source)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), rec.Symbol, rec.Price, rec.RSI, rec.MACDLine, rec.SignalLine,
		rec.PriceToEarnings, rec.PriceToBook, rec.Score, string(rec.Label), rec.Source,
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// RecentAnalyses returns up to limit records for symbol, newest first.
func (r *SQLiteRecorder) RecentAnalyses(symbol string, limit int) ([]AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, price, rsi, macd_line, signal_line,
		price_to_earnings, price_to_book, score, label, source
		FROM analyses WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var (
			rec                       AnalysisRecord
			ts                        int64
			label                     string
			rsi, macd, signal, pe, pb sql.NullFloat64
			source                    sql.NullString
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Symbol, &rec.Price, &rsi, &macd, &signal,
			&pe, &pb, &rec.Score, &label, &source); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Label = model.Label(label)
		rec.Source = source.String
		rec.RSI = fromNull(rsi)
		rec.MACDLine = fromNull(macd)
		rec.SignalLine = fromNull(signal)
		rec.PriceToEarnings = fromNull(pe)
		rec.PriceToBook = fromNull(pb)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func fromNull(n sql.NullFloat64) model.NullFloat {
	if !n.Valid {
		return model.None()
	}
	return model.Some(n.Float64)
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
