// Package sqlite is the reference CandleCatalog adapter used by
// cmd/backtestctl for ad hoc local runs. The core engine never imports
// this package directly (§6: persistence stays a pure interface); it
// exists because the teacher ships one reference adapter for its own
// store, and so does this repo.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"barterbench/internal/core"
)

// Catalog is a per-symbol-per-timeframe bar store, one SQLite file per
// pair, grounded on internal/backtest/store.go's Store (one *sql.DB per
// symbol@timeframe key, WAL journal mode).
type Catalog struct {
	root string

	mu  sync.Mutex
	dbs map[string]*sql.DB
}

func NewCatalog(root string) (*Catalog, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: candle catalog root must not be empty", core.ErrInvalidArgument)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExternalFailure, err)
	}
	return &Catalog{root: root, dbs: make(map[string]*sql.DB)}, nil
}

func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for key, db := range c.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.dbs, key)
	}
	return firstErr
}

func (c *Catalog) db(symbol core.SymbolId, tf core.Timeframe) (*sql.DB, error) {
	key := fmt.Sprintf("%d@%s", symbol, tf)
	c.mu.Lock()
	defer c.mu.Unlock()
	if db, ok := c.dbs[key]; ok {
		return db, nil
	}

	path := c.path(symbol, tf)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	c.dbs[key] = db
	return db, nil
}

func (c *Catalog) path(symbol core.SymbolId, tf core.Timeframe) string {
	return filepath.Join(c.root, fmt.Sprintf("%d", symbol), strings.ToLower(string(tf))+".db")
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS bars (
		timestamp INTEGER PRIMARY KEY,
		open TEXT NOT NULL,
		high TEXT NOT NULL,
		low TEXT NOT NULL,
		close TEXT NOT NULL,
		volume TEXT NOT NULL
	)`)
	return err
}

// InsertBars batch-writes bars, overwriting any existing row at the same
// timestamp.
func (c *Catalog) InsertBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, bars []core.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	db, err := c.db(symbol, tf)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bars (timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(timestamp) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, bar := range bars {
		if _, err := stmt.ExecContext(ctx, bar.Timestamp, bar.Open.String(), bar.High.String(), bar.Low.String(), bar.Close.String(), bar.Volume.String()); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetBars satisfies internal/backtest.CandleCatalog: bars sorted ascending
// by timestamp, inclusive on both ends; empty on unknown pair.
func (c *Catalog) GetBars(ctx context.Context, symbol core.SymbolId, tf core.Timeframe, from, to int64) ([]core.Bar, error) {
	db, err := c.db(symbol, tf)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT timestamp, open, high, low, close, volume FROM bars
		WHERE timestamp BETWEEN ? AND ? ORDER BY timestamp`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Bar
	for rows.Next() {
		var ts int64
		var open, high, low, closeStr, volume string
		if err := rows.Scan(&ts, &open, &high, &low, &closeStr, &volume); err != nil {
			return nil, err
		}
		out = append(out, core.Bar{
			SymbolID:  symbol,
			Timeframe: tf,
			Timestamp: ts,
			Open:      mustDecimal(open),
			High:      mustDecimal(high),
			Low:       mustDecimal(low),
			Close:     mustDecimal(closeStr),
			Volume:    mustDecimal(volume),
		})
	}
	return out, rows.Err()
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
