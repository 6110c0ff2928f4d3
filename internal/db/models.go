package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

var ErrNotFound = errors.New("not found")

type boardRow struct {
	Seq       int64     `db:"seq"`
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r boardRow) board() canvas.Board {
	return canvas.Board{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

type itemRow struct {
	Seq       int64     `db:"seq"`
	ID        string    `db:"id"`
	BoardID   string    `db:"board_id"`
	Type      string    `db:"type"`
	Content   string    `db:"content"`
	X         float64   `db:"x"`
	Y         float64   `db:"y"`
	Width     float64   `db:"width"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
}

func (r itemRow) item() canvas.Item {
	return canvas.Item{
		ID:      r.ID,
		BoardID: r.BoardID,
		Type:    canvas.ItemType(r.Type),
		Content: r.Content,
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Color:   r.Color,
	}
}

func rowFromItem(it canvas.Item) itemRow {
	return itemRow{
		ID:      it.ID,
		BoardID: it.BoardID,
		Type:    string(it.Type),
		Content: it.Content,
		X:       it.X,
		Y:       it.Y,
		Width:   it.Width,
		Color:   it.Color,
	}
}

// Boards

func (d *DB) ListBoards(ctx context.Context) ([]canvas.Board, error) {
	var rows []boardRow
	err := d.x.SelectContext(ctx, &rows, "SELECT seq, id, name, created_at FROM boards ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("query boards: %w", err)
	}

	boards := make([]canvas.Board, 0, len(rows))
	for _, r := range rows {
		boards = append(boards, r.board())
	}
	return boards, nil
}

func (d *DB) GetBoard(ctx context.Context, id string) (canvas.Board, error) {
	var r boardRow
	err := d.x.GetContext(ctx, &r, "SELECT seq, id, name, created_at FROM boards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return canvas.Board{}, fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return canvas.Board{}, fmt.Errorf("query board: %w", err)
	}
	return r.board(), nil
}

func (d *DB) CreateBoard(ctx context.Context, name string) (canvas.Board, error) {
	id := uuid.NewString()
	if _, err := d.x.ExecContext(ctx, "INSERT INTO boards (id, name) VALUES (?, ?)", id, name); err != nil {
		return canvas.Board{}, fmt.Errorf("insert board: %w", err)
	}
	return d.GetBoard(ctx, id)
}

// DeleteBoard removes the board row only. Its items stay behind as orphans
// and are never shown.
func (d *DB) DeleteBoard(ctx context.Context, id string) error {
	_, err := d.x.ExecContext(ctx, "DELETE FROM boards WHERE id = ? AND id != ?", id, canvas.DefaultBoardID)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

// Items

const itemColumns = "seq, id, board_id, type, content, x, y, width, color, created_at"

func (d *DB) ListItems(ctx context.Context) ([]canvas.Item, error) {
	return d.selectItems(ctx, "SELECT "+itemColumns+" FROM items ORDER BY seq ASC")
}

func (d *DB) ListItemsByBoard(ctx context.Context, boardID string) ([]canvas.Item, error) {
	return d.selectItems(ctx, "SELECT "+itemColumns+" FROM items WHERE board_id = ? ORDER BY seq ASC", boardID)
}

func (d *DB) selectItems(ctx context.Context, query string, args ...any) ([]canvas.Item, error) {
	var rows []itemRow
	if err := d.x.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]canvas.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item())
	}
	return items, nil
}

func (d *DB) GetItem(ctx context.Context, id string) (canvas.Item, error) {
	var r itemRow
	err := d.x.GetContext(ctx, &r, "SELECT "+itemColumns+" FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return canvas.Item{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return canvas.Item{}, fmt.Errorf("query item: %w", err)
	}
	return r.item(), nil
}

func (d *DB) AddItem(ctx context.Context, it canvas.Item) (canvas.Item, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	_, err := d.x.NamedExecContext(ctx,
		`INSERT INTO items (id, board_id, type, content, x, y, width, color)
		VALUES (:id, :board_id, :type, :content, :x, :y, :width, :color)`,
		rowFromItem(it),
	)
	if err != nil {
		return canvas.Item{}, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

// CommitItem overwrites content, position, size and color. An unknown id
// matches no row and is not an error.
func (d *DB) CommitItem(ctx context.Context, it canvas.Item) error {
	_, err := d.x.NamedExecContext(ctx,
		`UPDATE items SET content = :content, x = :x, y = :y, width = :width, color = :color
		WHERE id = :id`,
		rowFromItem(it),
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (d *DB) DeleteItem(ctx context.Context, id string) error {
	if _, err := d.x.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

var _ canvas.Store = (*DB)(nil)
