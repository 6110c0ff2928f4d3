package canvas

import (
	"context"
	"fmt"
	"strings"
)

// Registry guards board creation and deletion in front of a Store. It has no
// notion of an active board; callers keep that themselves.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// CreateBoard trims name and does nothing when the result is empty.
func (r *Registry) CreateBoard(ctx context.Context, name string) (Board, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Board{}, false, nil
	}
	b, err := r.store.CreateBoard(ctx, name)
	if err != nil {
		return Board{}, false, fmt.Errorf("create board: %w", err)
	}
	return b, true, nil
}

// DeleteBoard refuses the default board without touching the store.
func (r *Registry) DeleteBoard(ctx context.Context, id string) (bool, error) {
	if id == DefaultBoardID || id == "" {
		return false, nil
	}
	if err := r.store.DeleteBoard(ctx, id); err != nil {
		return false, fmt.Errorf("delete board: %w", err)
	}
	return true, nil
}

// ListBoards returns boards in creation order with the default board first,
// synthesizing it when the store has none.
func (r *Registry) ListBoards(ctx context.Context) ([]Board, error) {
	boards, err := r.store.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return withDefault(boards), nil
}

func withDefault(boards []Board) []Board {
	out := make([]Board, 0, len(boards)+1)
	def := Board{ID: DefaultBoardID, Name: DefaultBoardName}
	for _, b := range boards {
		if b.ID == DefaultBoardID {
			def = b
			continue
		}
		out = append(out, b)
	}
	return append([]Board{def}, out...)
}

// FallbackBoard picks the board to show after deleted was removed.
func FallbackBoard(active, deleted string) string {
	if active == deleted {
		return DefaultBoardID
	}
	return active
}
