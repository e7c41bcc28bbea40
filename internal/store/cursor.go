package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrSession  = errors.New("session store error")
	ErrNotFound = errors.New("no saved position")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Position is the last cursor location of a menu within a tree.
type Position struct {
	Tree      string
	Menu      string
	X         int
	Y         int
	UpdatedOn time.Time
}

// Sessions persists cursor positions so menus reopen where the user left them.
type Sessions struct {
	db DBTX
}

func NewSessions(db DBTX) *Sessions {
	return &Sessions{db: db}
}

const saveCursor = `INSERT INTO cursor_position (tree, menu, x, y, updated_on)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (tree, menu) DO UPDATE SET x = excluded.x, y = excluded.y, updated_on = excluded.updated_on`

func (s *Sessions) SaveCursor(ctx context.Context, pos Position) error {
	if pos.UpdatedOn.IsZero() {
		pos.UpdatedOn = time.Now()
	}

	if _, err := s.db.ExecContext(ctx, saveCursor, pos.Tree, pos.Menu, pos.X, pos.Y, pos.UpdatedOn.UnixMilli()); err != nil {
		return errors.Join(err, ErrSession)
	}

	return nil
}

const loadCursor = `SELECT tree, menu, x, y, updated_on FROM cursor_position WHERE tree = ? AND menu = ?`

func (s *Sessions) LoadCursor(ctx context.Context, tree string, menu string) (Position, error) {
	pos, err := scanPosition(s.db.QueryRowContext(ctx, loadCursor, tree, menu))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Position{}, ErrNotFound
		}

		return Position{}, errors.Join(err, ErrSession)
	}

	return pos, nil
}

const listCursors = `SELECT tree, menu, x, y, updated_on FROM cursor_position ORDER BY updated_on DESC, tree, menu`

func (s *Sessions) ListCursors(ctx context.Context) ([]Position, error) {
	rows, errQuery := s.db.QueryContext(ctx, listCursors)
	if errQuery != nil {
		return nil, errors.Join(errQuery, ErrSession)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		pos, errScan := scanPosition(rows)
		if errScan != nil {
			return nil, errors.Join(errScan, ErrSession)
		}

		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrSession)
	}

	return positions, nil
}

const deleteCursors = `DELETE FROM cursor_position WHERE tree = ?`

func (s *Sessions) DeleteTree(ctx context.Context, tree string) error {
	if _, err := s.db.ExecContext(ctx, deleteCursors, tree); err != nil {
		return errors.Join(err, ErrSession)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPosition(row scanner) (Position, error) {
	var (
		pos     Position
		updated int64
	)

	if err := row.Scan(&pos.Tree, &pos.Menu, &pos.X, &pos.Y, &updated); err != nil {
		return Position{}, err
	}

	pos.UpdatedOn = time.UnixMilli(updated)

	return pos, nil
}
