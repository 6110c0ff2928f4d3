package ui

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

// pointer returns the event position relative to the canvas origin.
func pointer(e app.Event) canvas.Point {
	p := canvas.Point{X: e.Get("clientX").Float(), Y: e.Get("clientY").Float()}
	el := app.Window().GetElementByID(canvasID)
	if !el.Truthy() {
		return p
	}
	rect := el.Call("getBoundingClientRect")
	return toLocal(p, rect.Get("left").Float(), rect.Get("top").Float())
}

func toLocal(p canvas.Point, left, top float64) canvas.Point {
	return canvas.Point{X: p.X - left, Y: p.Y - top}
}

func px(v float64) string {
	return fmt.Sprintf("%.1fpx", v)
}

func (b *VisionBoard) onCanvasMouseMove(ctx app.Context, e app.Event) {
	if !b.ctrl.Gesture().Active() {
		return
	}
	e.PreventDefault()
	b.ctrl.Move(pointer(e))
}

func (b *VisionBoard) onCanvasMouseUp(ctx app.Context, e app.Event) {
	if err := b.ctrl.Release(ctx); err != nil {
		app.Log("error saving item:", err)
		b.showToast(ctx, "Could not save item")
	}
	b.sync()
}

func (b *VisionBoard) onCanvasMouseLeave(ctx app.Context, e app.Event) {
	if err := b.ctrl.Leave(ctx); err != nil {
		app.Log("error saving item:", err)
		b.showToast(ctx, "Could not save item")
	}
	b.sync()
}

func (b *VisionBoard) onItemMouseDown(ctx app.Context, e app.Event, id string) {
	if e.Get("button").Int() != 0 {
		return
	}
	e.PreventDefault()
	b.ctrl.BeginDrag(id, pointer(e))
}

func (b *VisionBoard) onResizeMouseDown(ctx app.Context, e app.Event, id string) {
	e.Call("stopPropagation")
	e.PreventDefault()
	b.ctrl.BeginResize(id)
}

func stopPropagation(ctx app.Context, e app.Event) {
	e.Call("stopPropagation")
}

func (b *VisionBoard) renderCanvas() app.UI {
	views := canvas.Render(b.ctrl.Items(), b.ctrl.Gesture())

	return app.Div().
		ID(canvasID).
		Class("canvas-container").
		OnMouseMove(b.onCanvasMouseMove).
		OnMouseUp(b.onCanvasMouseUp).
		OnMouseLeave(b.onCanvasMouseLeave).
		Body(
			app.If(len(views) == 0, func() app.UI {
				return app.Div().Class("canvas-empty").Text("Nothing here yet. Add an image, note or link.")
			}),
			app.Range(views).Slice(func(i int) app.UI {
				return b.renderItem(views[i])
			}),
		)
}

func (b *VisionBoard) renderItem(v canvas.View) app.UI {
	id := v.Item.ID
	classes := "element element-" + string(v.Item.Type)
	if v.Active {
		classes += " dragging"
	}

	el := app.Div().
		Class(classes).
		Style("left", px(v.Left)).
		Style("top", px(v.Top)).
		Style("width", px(v.Width)).
		Style("z-index", fmt.Sprintf("%d", v.ZIndex)).
		OnMouseDown(func(ctx app.Context, e app.Event) {
			b.onItemMouseDown(ctx, e, id)
		})
	if v.MinHeight > 0 {
		el = el.Style("min-height", px(v.MinHeight))
	}
	if v.Background != "" {
		el = el.Style("background", v.Background)
	}

	return el.Body(
		b.renderContent(v),
		app.Button().
			Class("element-delete").
			Title("Delete").
			Text("×").
			OnMouseDown(stopPropagation).
			OnClick(func(ctx app.Context, e app.Event) {
				b.deleteItem(ctx, id)
			}),
		app.Div().
			Class("element-resize").
			OnMouseDown(func(ctx app.Context, e app.Event) {
				b.onResizeMouseDown(ctx, e, id)
			}),
	)
}

func (b *VisionBoard) renderContent(v canvas.View) app.UI {
	switch v.Item.Type {
	case canvas.ItemImage:
		return app.Img().
			Class("element-image").
			Src(v.Src).
			Alt("")
	case canvas.ItemLink:
		return app.Div().Class("element-content").Body(
			app.A().
				Class("element-link").
				Href(v.Href).
				Target("_blank").
				Rel("noopener noreferrer").
				Text(v.Href).
				OnMouseDown(stopPropagation),
			app.If(v.Embed, func() app.UI {
				return app.Div().Class("element-embed").Text("Video")
			}),
		)
	default:
		return app.Div().Class("element-content").Text(v.Text)
	}
}
