// Package export draws a board snapshot as a PNG.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

const (
	padding    = 24.0
	inset      = 10.0
	fontSize   = 14.0
	lineHeight = 1.4
	maxSide    = 8192
)

var (
	ErrEmpty    = errors.New("nothing to export")
	ErrTooLarge = errors.New("board too large to export")
)

type placed struct {
	view   canvas.View
	height float64
	lines  []string
	img    image.Image
}

// PNG renders items in order, so later items are painted over earlier ones.
func PNG(w io.Writer, items []canvas.Item) error {
	img, err := Draw(items)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func Draw(items []canvas.Item) (image.Image, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	face, err := loadFace()
	if err != nil {
		return nil, err
	}
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)

	views := canvas.Render(items, canvas.Gesture{})
	layout := make([]placed, 0, len(views))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range views {
		p := place(measure, v)
		layout = append(layout, p)
		minX = math.Min(minX, v.Left)
		minY = math.Min(minY, v.Top)
		maxX = math.Max(maxX, v.Left+v.Width)
		maxY = math.Max(maxY, v.Top+p.height)
	}

	width := int(math.Ceil(maxX-minX+2*padding))
	height := int(math.Ceil(maxY-minY+2*padding))
	if width > maxSide || height > maxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(face)

	offX, offY := padding-minX, padding-minY
	for _, p := range layout {
		x, y := p.view.Left+offX, p.view.Top+offY
		switch p.view.Item.Type {
		case canvas.ItemImage:
			drawImage(dc, p, x, y)
		case canvas.ItemNote:
			drawNote(dc, p, x, y)
		case canvas.ItemLink:
			drawLink(dc, p, x, y)
		}
	}
	return dc.Image(), nil
}

func loadFace() (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func textHeight(lines []string) float64 {
	return float64(len(lines)) * fontSize * lineHeight
}

func place(measure *gg.Context, v canvas.View) placed {
	p := placed{view: v}
	textWidth := v.Width - 2*inset
	switch v.Item.Type {
	case canvas.ItemImage:
		p.img = decodeInline(v.Src)
		if p.img != nil {
			b := p.img.Bounds()
			p.height = v.Width * float64(b.Dy()) / float64(b.Dx())
		} else {
			p.lines = measure.WordWrap(v.Src, textWidth)
			p.height = v.Width * 3 / 4
		}
	case canvas.ItemNote:
		p.lines = measure.WordWrap(v.Text, textWidth)
		p.height = math.Max(v.MinHeight, textHeight(p.lines)+2*inset)
	case canvas.ItemLink:
		p.lines = measure.WordWrap(v.Href, textWidth)
		p.height = textHeight(p.lines) + 2*inset
		if v.Embed {
			p.height += embedHeight(v.Width) + inset
		}
	}
	return p
}

func embedHeight(width float64) float64 {
	return (width - 2*inset) * 9 / 16
}

func decodeInline(src string) image.Image {
	if !canvas.IsDataURI(src) {
		return nil
	}
	data, _, err := canvas.DecodeDataURI(src)
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

func drawImage(dc *gg.Context, p placed, x, y float64) {
	w, h := int(math.Round(p.view.Width)), int(math.Round(p.height))
	if p.img != nil && w > 0 && h > 0 {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), p.img, p.img.Bounds(), draw.Over, nil)
		dc.DrawImage(dst, int(math.Round(x)), int(math.Round(y)))
		return
	}

	// Remote images are not fetched; draw a labelled frame instead.
	dc.SetHexColor("#e5e7eb")
	dc.DrawRectangle(x, y, p.view.Width, p.height)
	dc.Fill()
	dc.SetHexColor("#6b7280")
	drawLines(dc, p.lines, x+inset, y+inset)
}

func drawNote(dc *gg.Context, p placed, x, y float64) {
	dc.SetHexColor(p.view.Background)
	dc.DrawRoundedRectangle(x, y, p.view.Width, p.height, 4)
	dc.Fill()
	dc.SetHexColor("#1f2937")
	drawLines(dc, p.lines, x+inset, y+inset)
}

func drawLink(dc *gg.Context, p placed, x, y float64) {
	dc.SetHexColor("#ffffff")
	dc.DrawRoundedRectangle(x, y, p.view.Width, p.height, 4)
	dc.FillPreserve()
	dc.SetHexColor("#d1d5db")
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetHexColor("#2563eb")
	drawLines(dc, p.lines, x+inset, y+inset)

	if p.view.Embed {
		ey := y + inset + textHeight(p.lines) + inset
		dc.SetHexColor("#111827")
		dc.DrawRectangle(x+inset, ey, p.view.Width-2*inset, embedHeight(p.view.Width))
		dc.Fill()
	}
}

func drawLines(dc *gg.Context, lines []string, x, y float64) {
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, y+float64(i)*fontSize*lineHeight, 0, 1)
	}
}
