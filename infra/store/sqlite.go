// Package store provides the occupancy data source backends: a local SQLite
// dump database and an InfluxDB bucket. Both satisfy occupancy.Source with a
// single full read per call and no retries.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/occupancy"
	"github.com/opendensity/density/infra/logger"
)

// SQLiteSource reads occupancy dumps from a local SQLite database. It also
// exposes the write path used by the MQTT ingestor; the prediction side only
// ever calls Load.
type SQLiteSource struct {
	db   *sql.DB
	opts []occupancy.Option
	log  logger.Logger
}

// NewSQLite opens (or creates) the dump database at path and ensures the
// schema exists. The table options are applied on every Load.
func NewSQLite(cfg SQLiteConfig, opts ...occupancy.Option) (*SQLiteSource, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &SQLiteSource{db: db, opts: opts, log: logger.New("sqlite-source")}
	if err := s.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSource) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLiteSource) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS density_data (
		dump_time TEXT NOT NULL,
		group_id INTEGER NOT NULL,
		group_name TEXT NOT NULL,
		parent_id INTEGER NOT NULL,
		parent_name TEXT NOT NULL,
		client_count INTEGER NOT NULL,
		PRIMARY KEY (dump_time, group_id)
	)`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// Load reads the full record set in one query and materializes the table.
func (s *SQLiteSource) Load(ctx context.Context) (*occupancy.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dump_time, group_id, group_name, parent_id, parent_name, client_count
		 FROM density_data`)
	if err != nil {
		return nil, fmt.Errorf("query density_data: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.log.Warnf("close rows: %v", cerr)
		}
	}()

	var records []model.Record
	for rows.Next() {
		var (
			dumpTime string
			rec      model.Record
		)
		if err := rows.Scan(&dumpTime, &rec.GroupID, &rec.GroupName,
			&rec.ParentID, &rec.ParentName, &rec.ClientCount); err != nil {
			return nil, fmt.Errorf("scan density_data row: %w", err)
		}
		rec.DumpTime, err = time.Parse(time.RFC3339, dumpTime)
		if err != nil {
			return nil, fmt.Errorf("parse dump_time %q: %w", dumpTime, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate density_data: %w", err)
	}
	return occupancy.New(records, s.opts...)
}

// Insert stores one dump record. Used by the ingestor, never by the
// prediction path.
func (s *SQLiteSource) Insert(ctx context.Context, rec model.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO density_data (dump_time, group_id, group_name, parent_id, parent_name, client_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.DumpTime.UTC().Format(time.RFC3339), rec.GroupID, rec.GroupName,
		rec.ParentID, rec.ParentName, rec.ClientCount)
	if err != nil {
		return fmt.Errorf("insert dump record: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteSource) Close() error { return s.db.Close() }
