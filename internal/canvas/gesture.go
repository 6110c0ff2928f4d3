package canvas

import "context"

type Point struct {
	X, Y float64
}

type GestureKind int

const (
	Idle GestureKind = iota
	Dragging
	Resizing
)

func (k GestureKind) String() string {
	switch k {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// Gesture is the single in-flight pointer interaction. Offset is only set
// while dragging and holds pointer minus item position at press time.
type Gesture struct {
	Kind   GestureKind
	ItemID string
	Offset Point
}

func (g Gesture) Active() bool {
	return g.Kind != Idle
}

// Controller turns pointer events into item moves and resizes. Moves only
// touch the working copy; the item is committed once when the pointer is
// released or leaves the canvas.
type Controller struct {
	committer Committer
	working   WorkingCopy
	gesture   Gesture
}

func NewController(c Committer) *Controller {
	return &Controller{committer: c}
}

// Sync brings the working copy up to date with col for boardID. Switching
// boards drops any gesture in progress without committing it.
func (c *Controller) Sync(boardID string, col *Collection) {
	_, boardChanged := c.working.Sync(boardID, col)
	if boardChanged {
		c.gesture = Gesture{}
	}
}

func (c *Controller) BoardID() string {
	return c.working.BoardID()
}

func (c *Controller) Items() []Item {
	return c.working.Items()
}

func (c *Controller) Gesture() Gesture {
	return c.gesture
}

// BeginDrag starts dragging the item under the pointer at p.
func (c *Controller) BeginDrag(id string, p Point) bool {
	if c.gesture.Active() {
		return false
	}
	it := c.working.find(id)
	if it == nil {
		return false
	}
	c.gesture = Gesture{
		Kind:   Dragging,
		ItemID: id,
		Offset: Point{X: p.X - it.X, Y: p.Y - it.Y},
	}
	return true
}

// BeginResize starts resizing from the item's bottom-right handle.
func (c *Controller) BeginResize(id string) bool {
	if c.gesture.Active() {
		return false
	}
	if c.working.find(id) == nil {
		return false
	}
	c.gesture = Gesture{Kind: Resizing, ItemID: id}
	return true
}

// Move applies a pointer position to the working copy.
func (c *Controller) Move(p Point) {
	if !c.gesture.Active() {
		return
	}
	it := c.working.find(c.gesture.ItemID)
	if it == nil {
		return
	}
	switch c.gesture.Kind {
	case Dragging:
		it.X = p.X - c.gesture.Offset.X
		it.Y = p.Y - c.gesture.Offset.Y
	case Resizing:
		it.Width = ClampWidth(p.X - it.X)
	}
}

// Release ends the gesture and commits the item's current working state. A
// release with no gesture, or for an item that has since disappeared, commits
// nothing.
func (c *Controller) Release(ctx context.Context) error {
	if !c.gesture.Active() {
		return nil
	}
	id := c.gesture.ItemID
	c.gesture = Gesture{}
	it := c.working.find(id)
	if it == nil {
		return nil
	}
	return c.committer.Commit(ctx, *it)
}

// Leave handles the pointer leaving the canvas the same way as a release.
func (c *Controller) Leave(ctx context.Context) error {
	return c.Release(ctx)
}
