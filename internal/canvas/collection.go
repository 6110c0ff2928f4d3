package canvas

import (
	"context"
	"fmt"
)

// Collection is the in-memory mirror of every item across all boards, in
// insertion order. Each mutation bumps Version so derived views know to
// recompute.
type Collection struct {
	items   []Item
	version uint64
}

func (c *Collection) Version() uint64 {
	return c.version
}

func (c *Collection) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Collection) Len() int {
	return len(c.items)
}

func (c *Collection) Set(items []Item) {
	c.items = append([]Item(nil), items...)
	c.version++
}

func (c *Collection) Append(item Item) {
	c.items = append(c.items, item)
	c.version++
}

// Remove drops the item with id and reports whether it was present.
func (c *Collection) Remove(id string) bool {
	i := indexOf(c.items, id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	c.version++
	return true
}

// Replace overwrites the stored item with the same id. Unknown ids are
// ignored.
func (c *Collection) Replace(item Item) bool {
	i := indexOf(c.items, item.ID)
	if i < 0 {
		return false
	}
	c.items[i] = item
	c.version++
	return true
}

func (c *Collection) Get(id string) (Item, bool) {
	i := indexOf(c.items, id)
	if i < 0 {
		return Item{}, false
	}
	return c.items[i], true
}

func (c *Collection) ItemsForBoard(boardID string) []Item {
	return ItemsForBoard(c.items, boardID)
}

// ItemsForBoard filters items down to one board, keeping their order.
func ItemsForBoard(items []Item, boardID string) []Item {
	out := []Item{}
	for _, it := range items {
		if it.BoardID == boardID {
			out = append(out, it)
		}
	}
	return out
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// ItemStore pairs a Store with its Collection mirror: every mutation goes to
// the store first and is applied locally once it succeeds.
type ItemStore struct {
	store Store
	items Collection
}

func NewItemStore(store Store) *ItemStore {
	return &ItemStore{store: store}
}

func (s *ItemStore) Collection() *Collection {
	return &s.items
}

func (s *ItemStore) Load(ctx context.Context) error {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	s.items.Set(items)
	return nil
}

func (s *ItemStore) ItemsForBoard(boardID string) []Item {
	return s.items.ItemsForBoard(boardID)
}

func (s *ItemStore) Add(ctx context.Context, item Item) (Item, error) {
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	created, err := s.store.AddItem(ctx, item)
	if err != nil {
		return Item{}, fmt.Errorf("add item: %w", err)
	}
	s.items.Append(created)
	return created, nil
}

func (s *ItemStore) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.items.Remove(id)
	return nil
}

// Commit writes item back. An item that is no longer in the collection was
// deleted meanwhile and the commit is dropped.
func (s *ItemStore) Commit(ctx context.Context, item Item) error {
	if _, ok := s.items.Get(item.ID); !ok {
		return nil
	}
	item.Width = ClampWidth(item.Width)
	if err := s.store.CommitItem(ctx, item); err != nil {
		return fmt.Errorf("commit item: %w", err)
	}
	s.items.Replace(item)
	return nil
}
