package canvas

// WorkingCopy is the scratch mirror of the active board's items that pointer
// moves write into. It is keyed on the board id and the collection version it
// was derived from; a change in either replaces it wholesale.
type WorkingCopy struct {
	boardID string
	version uint64
	valid   bool
	items   []Item
}

// Sync re-derives the copy from col when the board or the collection changed
// since the last call. It reports whether the copy was replaced and whether
// the board itself changed.
func (w *WorkingCopy) Sync(boardID string, col *Collection) (replaced, boardChanged bool) {
	if w.valid && w.boardID == boardID && w.version == col.Version() {
		return false, false
	}
	boardChanged = w.boardID != boardID
	w.boardID = boardID
	w.version = col.Version()
	w.items = col.ItemsForBoard(boardID)
	w.valid = true
	return true, boardChanged
}

// Invalidate forces the next Sync to re-derive.
func (w *WorkingCopy) Invalidate() {
	w.valid = false
}

func (w *WorkingCopy) BoardID() string {
	return w.boardID
}

func (w *WorkingCopy) Items() []Item {
	return append([]Item(nil), w.items...)
}

func (w *WorkingCopy) find(id string) *Item {
	if i := indexOf(w.items, id); i >= 0 {
		return &w.items[i]
	}
	return nil
}
