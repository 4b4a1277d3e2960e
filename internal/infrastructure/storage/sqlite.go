package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"svw.info/polygen/internal/codec"
	"svw.info/polygen/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS puzzles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	family     TEXT NOT NULL,
	width      INTEGER NOT NULL,
	length     INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	body       TEXT NOT NULL
)`

// SQLite stores puzzles in a single table, one row per puzzle, with the
// exchange format as the row body.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || !validID(p.ID) {
		return fmt.Errorf("%w: missing or invalid ID", domain.ErrInvalidPuzzle)
	}
	body, err := codec.Marshal(p)
	if err != nil {
		return err
	}
	d := p.Dims()
	_, err = s.db.ExecContext(ctx, `INSERT INTO puzzles (id, name, family, width, length, height, created_at, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, family = excluded.family,
			width = excluded.width, length = excluded.length, height = excluded.height,
			body = excluded.body`,
		p.ID, p.Name, p.Family.String(), d.Width, d.Length, d.Height, p.CreatedAt, string(body))
	return err
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	var body string
	var created int64
	err := s.db.QueryRowContext(ctx, `SELECT body, created_at FROM puzzles WHERE id = ?`, id).Scan(&body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	p, err := codec.Unmarshal([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	p.ID = id
	p.CreatedAt = created
	return p, nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, family, width, length, height, created_at FROM puzzles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.PuzzleMeta
	for rows.Next() {
		var m domain.PuzzleMeta
		if err := rows.Scan(&m.ID, &m.Name, &m.Family, &m.Dims.Width, &m.Dims.Length, &m.Dims.Height, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortMeta(out)
	return out, nil
}
