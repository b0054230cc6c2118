package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"

	"github.com/google/uuid"
)

// Store keeps the form of one workspace. Every adopted schema is appended as
// a snapshot; the newest snapshot is the current form.
type Store struct {
	Dir string
}

type Snapshot struct {
	Seq           int64     `json:"seq"`
	UUID          string    `json:"uuid"`
	Name          string    `json:"name"`
	Note          string    `json:"note,omitempty"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

var ErrNoSnapshot = errors.New("snapshot not found")

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// Load returns the current form, or nil when the workspace has none yet.
func (s Store) Load(ctx context.Context) (*model.Schema, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT json FROM snapshots ORDER BY seq DESC LIMIT 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSchema(raw)
}

// Save appends sc as the new current form. A schema without a UUID is
// assigned one; the persisted value is returned.
func (s Store) Save(ctx context.Context, sc model.Schema, note string) (model.Schema, error) {
	if strings.TrimSpace(sc.UUID) == "" {
		sc.UUID = uuid.NewString()
	}
	raw, err := json.Marshal(sc)
	if err != nil {
		return sc, err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return sc, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return sc, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots(uuid, name, note, question_count, json, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		sc.UUID, sc.Name, strings.TrimSpace(note), schema.CountQuestions(sc), string(raw), time.Now().UTC().UnixMilli(),
	); err != nil {
		return sc, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "form_uuid", sc.UUID); err != nil {
		return sc, err
	}
	if err := tx.Commit(); err != nil {
		return sc, err
	}
	return sc, nil
}

// History lists snapshots newest first. limit <= 0 means all.
func (s Store) History(ctx context.Context, limit int) ([]Snapshot, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT seq, uuid, name, note, question_count, created_at_unixms FROM snapshots ORDER BY seq DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap Snapshot
			ms   int64
		)
		if err := rows.Scan(&snap.Seq, &snap.UUID, &snap.Name, &snap.Note, &snap.QuestionCount, &ms); err != nil {
			return nil, err
		}
		snap.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, snap)
	}
	return out, rows.Err()
}

// SnapshotAt returns the form as it was saved in snapshot seq.
func (s Store) SnapshotAt(ctx context.Context, seq int64) (model.Schema, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Schema{}, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT json FROM snapshots WHERE seq = ?`, seq).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Schema{}, fmt.Errorf("%w: %d", ErrNoSnapshot, seq)
	}
	if err != nil {
		return model.Schema{}, err
	}
	sc, err := decodeSchema(raw)
	if err != nil {
		return model.Schema{}, err
	}
	return *sc, nil
}

func decodeSchema(raw string) (*model.Schema, error) {
	var sc model.Schema
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &sc, nil
}
