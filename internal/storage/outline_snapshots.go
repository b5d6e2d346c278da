/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Outline snapshots record every model-produced outline so a draft can be
// compared against, or restored from, an earlier generation.

// OutlineSnapshot is one stored outline revision.
type OutlineSnapshot struct {
	ID   int64
	TS   time.Time
	Text string
}

// SaveOutlineSnapshot stores the outline text with a timestamp.
func SaveOutlineSnapshot(ctx context.Context, dh *DeckHandle, text string, ts time.Time) error {
	if dh == nil {
		return errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, `INSERT INTO outline_snapshots(ts, text) VALUES (?, ?)`,
		ts.UTC().Format(time.RFC3339Nano), text)
	return err
}

// LatestOutlineSnapshot returns the newest stored outline, or ok=false when none exists.
func LatestOutlineSnapshot(ctx context.Context, dh *DeckHandle) (OutlineSnapshot, bool, error) {
	if dh == nil {
		return OutlineSnapshot{}, false, errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return OutlineSnapshot{}, false, err
	}
	defer func() { _ = db.Close() }()
	var out OutlineSnapshot
	var tsStr string
	err = db.QueryRowContext(ctx, `SELECT id, ts, text FROM outline_snapshots ORDER BY ts DESC LIMIT 1`).
		Scan(&out.ID, &tsStr, &out.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return OutlineSnapshot{}, false, nil
	}
	if err != nil {
		return OutlineSnapshot{}, false, err
	}
	out.TS, _ = time.Parse(time.RFC3339Nano, tsStr)
	return out, true, nil
}

// ListOutlineSnapshots returns up to limit most recent outline revisions.
func ListOutlineSnapshots(ctx context.Context, dh *DeckHandle, limit int) ([]OutlineSnapshot, error) {
	if dh == nil {
		return nil, errors.New("nil DeckHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, `SELECT id, ts, text FROM outline_snapshots ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []OutlineSnapshot
	for rows.Next() {
		var s OutlineSnapshot
		var tsStr string
		if err := rows.Scan(&s.ID, &tsStr, &s.Text); err != nil {
			return nil, err
		}
		s.TS, _ = time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, s)
	}
	return out, rows.Err()
}
