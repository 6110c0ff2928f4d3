// Package canvas holds the vision board core: boards, canvas items, the
// gesture state machine that moves and resizes them, and the composer that
// creates new ones.
package canvas

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultBoardID   = "default"
	DefaultBoardName = "Main Board"

	DefaultWidth     = 200.0
	MinWidth         = 100.0
	DefaultNoteColor = "#fef9c3"
)

var ErrInvalidItem = errors.New("invalid item")

type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ItemType string

const (
	ItemImage ItemType = "image"
	ItemNote  ItemType = "note"
	ItemLink  ItemType = "link"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemImage, ItemNote, ItemLink:
		return true
	}
	return false
}

// Item is a positioned element on a board. Type is the discriminant; Payload
// returns the typed view of Content and Color for that variant.
type Item struct {
	ID      string   `json:"id"`
	BoardID string   `json:"board_id"`
	Type    ItemType `json:"type"`
	Content string   `json:"content"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Color   string   `json:"color,omitempty"`
}

// Payload is implemented by ImagePayload, NotePayload and LinkPayload only.
type Payload interface {
	payload()
}

type ImagePayload struct {
	Src    string
	Inline bool
}

type NotePayload struct {
	Text  string
	Color string
}

type LinkPayload struct {
	URL string
}

func (ImagePayload) payload() {}
func (NotePayload) payload()  {}
func (LinkPayload) payload()  {}

// NewImage builds an image item from a remote URL or an inline data: URI.
func NewImage(boardID, src string) (Item, error) {
	it := Item{BoardID: boardID, Type: ItemImage, Content: strings.TrimSpace(src), Width: DefaultWidth}
	return it, it.Validate()
}

// NewNote builds a note. An empty color falls back to DefaultNoteColor.
func NewNote(boardID, text, color string) (Item, error) {
	if color == "" {
		color = DefaultNoteColor
	}
	it := Item{BoardID: boardID, Type: ItemNote, Content: text, Width: DefaultWidth, Color: color}
	return it, it.Validate()
}

// NewLink builds a link card. The URL is not checked for well-formedness.
func NewLink(boardID, url string) (Item, error) {
	it := Item{BoardID: boardID, Type: ItemLink, Content: strings.TrimSpace(url), Width: DefaultWidth}
	return it, it.Validate()
}

func (it Item) Validate() error {
	if it.BoardID == "" {
		return fmt.Errorf("%w: missing board", ErrInvalidItem)
	}
	if !it.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidItem, it.Type)
	}
	if strings.TrimSpace(it.Content) == "" {
		return fmt.Errorf("%w: empty %s content", ErrInvalidItem, it.Type)
	}
	if it.Width < MinWidth {
		return fmt.Errorf("%w: width %.0f below %.0f", ErrInvalidItem, it.Width, MinWidth)
	}
	return nil
}

func (it Item) Payload() Payload {
	switch it.Type {
	case ItemImage:
		return ImagePayload{Src: it.Content, Inline: IsDataURI(it.Content)}
	case ItemNote:
		color := it.Color
		if color == "" {
			color = DefaultNoteColor
		}
		return NotePayload{Text: it.Content, Color: color}
	case ItemLink:
		return LinkPayload{URL: it.Content}
	}
	return nil
}

// ClampWidth applies the resize floor.
func ClampWidth(w float64) float64 {
	if w < MinWidth {
		return MinWidth
	}
	return w
}
