package canvas

import "context"

// Store is the persistence collaborator. AddItem assigns the id; CommitItem
// replaces position, size and content of an existing item and ignores ids it
// does not know.
type Store interface {
	ListBoards(ctx context.Context) ([]Board, error)
	CreateBoard(ctx context.Context, name string) (Board, error)
	DeleteBoard(ctx context.Context, id string) error

	ListItems(ctx context.Context) ([]Item, error)
	AddItem(ctx context.Context, item Item) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	CommitItem(ctx context.Context, item Item) error
}

// Committer receives the final state of a gesture.
type Committer interface {
	Commit(ctx context.Context, item Item) error
}

// Adder receives items built by a Composer.
type Adder interface {
	Add(ctx context.Context, item Item) (Item, error)
}
