package canvas

import (
	"context"
	"math/rand/v2"
	"strings"
)

// MaxJitter bounds the random offset given to new items so that several added
// in a row do not stack exactly.
const MaxJitter = 50.0

// Composer collects the fields of the "add item" form. Only the fields of the
// selected type are used.
type Composer struct {
	kind  ItemType
	text  string
	url   string
	file  ImageSource
	color string
	rnd   *rand.Rand
}

// NewComposer returns a composer set to notes. A nil rnd uses a randomly
// seeded source.
func NewComposer(rnd *rand.Rand) *Composer {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Composer{kind: ItemNote, rnd: rnd}
}

func (c *Composer) Type() ItemType {
	return c.kind
}

func (c *Composer) SetType(t ItemType) {
	if t.Valid() {
		c.kind = t
	}
}

func (c *Composer) SetText(s string)      { c.text = s }
func (c *Composer) SetURL(s string)       { c.url = s }
func (c *Composer) SetFile(f ImageSource) { c.file = f }
func (c *Composer) SetColor(s string)     { c.color = s }

func (c *Composer) Text() string { return c.text }
func (c *Composer) URL() string  { return c.url }
func (c *Composer) HasFile() bool {
	return c.file != nil
}

// Clone returns a copy of the form that shares the random source.
func (c *Composer) Clone() *Composer {
	cp := *c
	return &cp
}

// Reset clears the entered content but keeps the selected type.
func (c *Composer) Reset() {
	c.text, c.url, c.file, c.color = "", "", nil, ""
}

// Build turns the form into an item for boardID. It returns ok=false when the
// form has nothing to save. An image file is encoded first; if ctx is done by
// the time encoding finishes the item is not built and ctx's error is
// returned, so a closed form never produces an item.
func (c *Composer) Build(ctx context.Context, boardID string) (Item, bool, error) {
	var (
		it  Item
		err error
	)
	switch c.kind {
	case ItemImage:
		src := strings.TrimSpace(c.url)
		if c.file != nil {
			src, err = c.file.Encode(ctx)
			if err != nil {
				return Item{}, false, err
			}
		}
		if err := ctx.Err(); err != nil {
			return Item{}, false, err
		}
		if src == "" {
			return Item{}, false, nil
		}
		it, err = NewImage(boardID, src)
	case ItemNote:
		if strings.TrimSpace(c.text) == "" {
			return Item{}, false, nil
		}
		it, err = NewNote(boardID, c.text, c.color)
	case ItemLink:
		if strings.TrimSpace(c.text) == "" {
			return Item{}, false, nil
		}
		it, err = NewLink(boardID, c.text)
	}
	if err != nil {
		return Item{}, false, err
	}
	it.X, it.Y = c.jitter(), c.jitter()
	return it, true, nil
}

// Submit builds the item and hands it to dst. On success the form is reset.
func (c *Composer) Submit(ctx context.Context, boardID string, dst Adder) (Item, bool, error) {
	it, ok, err := c.Build(ctx, boardID)
	if err != nil || !ok {
		return Item{}, false, err
	}
	created, err := dst.Add(ctx, it)
	if err != nil {
		return Item{}, false, err
	}
	c.Reset()
	return created, true, nil
}

func (c *Composer) jitter() float64 {
	return c.rnd.Float64() * MaxJitter
}
