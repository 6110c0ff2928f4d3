package canvas

import (
	"context"
	"fmt"
	"sync"
)

// memStore is an in-memory Store that counts mutations.
type memStore struct {
	mu      sync.Mutex
	boards  []Board
	items   []Item
	nextID  int
	commits []Item
	deletes []string
	fail    error
}

func newMemStore() *memStore {
	return &memStore{boards: []Board{{ID: DefaultBoardID, Name: DefaultBoardName}}}
}

func (m *memStore) ListBoards(context.Context) ([]Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Board(nil), m.boards...), m.fail
}

func (m *memStore) CreateBoard(_ context.Context, name string) (Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return Board{}, m.fail
	}
	m.nextID++
	b := Board{ID: fmt.Sprintf("board-%d", m.nextID), Name: name}
	m.boards = append(m.boards, b)
	return b, nil
}

func (m *memStore) DeleteBoard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	for i, b := range m.boards {
		if b.ID == id {
			m.boards = append(m.boards[:i], m.boards[i+1:]...)
			break
		}
	}
	return m.fail
}

func (m *memStore) ListItems(context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.items...), m.fail
}

func (m *memStore) AddItem(_ context.Context, it Item) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return Item{}, m.fail
	}
	m.nextID++
	it.ID = fmt.Sprintf("item-%d", m.nextID)
	m.items = append(m.items, it)
	return it, nil
}

func (m *memStore) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.items, id); i >= 0 {
		m.items = append(m.items[:i], m.items[i+1:]...)
	}
	return m.fail
}

func (m *memStore) CommitItem(_ context.Context, it Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.commits = append(m.commits, it)
	if i := indexOf(m.items, it.ID); i >= 0 {
		m.items[i] = it
	}
	return nil
}

func (m *memStore) item(id string) (Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.items, id); i >= 0 {
		return m.items[i], true
	}
	return Item{}, false
}
