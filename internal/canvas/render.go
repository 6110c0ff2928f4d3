package canvas

import "strings"

const (
	BaseZ   = 1
	ActiveZ = 10

	NoteMinHeight = 100.0
)

// View is what the canvas paints for one item. Every view carries a delete
// control and a bottom-right resize handle.
type View struct {
	Item   Item
	Left   float64
	Top    float64
	Width  float64
	ZIndex int
	Active bool

	// Image
	Src string

	// Note
	Text       string
	Background string
	MinHeight  float64

	// Link
	Href  string
	Embed bool
}

// Render lays out items in order, lifting the item under the active gesture
// above its siblings.
func Render(items []Item, g Gesture) []View {
	views := make([]View, 0, len(items))
	for _, it := range items {
		v := View{
			Item:   it,
			Left:   it.X,
			Top:    it.Y,
			Width:  it.Width,
			ZIndex: BaseZ,
		}
		if g.Active() && g.ItemID == it.ID {
			v.Active = true
			v.ZIndex = ActiveZ
		}
		switch p := it.Payload().(type) {
		case ImagePayload:
			v.Src = p.Src
		case NotePayload:
			v.Text = p.Text
			v.Background = p.Color
			v.MinHeight = NoteMinHeight
		case LinkPayload:
			v.Href = p.URL
			v.Embed = IsEmbeddable(p.URL)
		}
		views = append(views, v)
	}
	return views
}

// IsEmbeddable reports whether a link gets the video placeholder.
func IsEmbeddable(url string) bool {
	return strings.Contains(url, "youtube.com")
}
