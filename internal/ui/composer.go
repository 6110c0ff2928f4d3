package ui

import (
	"context"
	"errors"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

func (b *VisionBoard) openForm(ctx app.Context) {
	if b.closeForm != nil {
		b.closeForm()
	}
	b.formCtx, b.closeForm = context.WithCancel(ctx)
	b.showForm = true
}

// dismissForm hides the modal and cancels any image read still in flight, so
// it can no longer add an item.
func (b *VisionBoard) dismissForm() {
	if b.closeForm != nil {
		b.closeForm()
	}
	b.showForm = false
	b.submitting = false
	b.form.Reset()
}

func (b *VisionBoard) onFormType(ctx app.Context, e app.Event, t canvas.ItemType) {
	e.PreventDefault()
	b.form.SetType(t)
}

func (b *VisionBoard) onFormText(ctx app.Context, e app.Event) {
	b.form.SetText(ctx.JSSrc().Get("value").String())
}

func (b *VisionBoard) onFormURL(ctx app.Context, e app.Event) {
	b.form.SetURL(ctx.JSSrc().Get("value").String())
}

func (b *VisionBoard) onFormColor(ctx app.Context, e app.Event) {
	b.form.SetColor(ctx.JSSrc().Get("value").String())
}

func (b *VisionBoard) onFormFile(ctx app.Context, e app.Event) {
	files := ctx.JSSrc().Get("files")
	if !files.Truthy() || files.Length() == 0 {
		b.form.SetFile(nil)
		return
	}
	b.form.SetFile(fileSource{file: files.Index(0)})
}

func (b *VisionBoard) submitForm(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if b.submitting {
		return
	}
	b.submitting = true
	form, formCtx, boardID := b.form.Clone(), b.formCtx, b.boardID

	ctx.Async(func() {
		it, ok, err := form.Build(formCtx, boardID)
		if err == nil && ok {
			it, err = remoteAdder{b}.Add(formCtx, it)
		}

		ctx.Dispatch(func(ctx app.Context) {
			if errors.Is(err, context.Canceled) {
				return
			}
			b.submitting = false
			if err != nil {
				app.Log("error adding item:", err)
				b.showToast(ctx, "Could not add item")
				return
			}
			if !ok {
				return
			}
			b.col.Append(it)
			b.sync()
			b.dismissForm()
		})
	})
}

type remoteAdder struct {
	b *VisionBoard
}

func (r remoteAdder) Add(ctx context.Context, it canvas.Item) (canvas.Item, error) {
	if err := it.Validate(); err != nil {
		return canvas.Item{}, err
	}
	return r.b.store.AddItem(ctx, it)
}

func (b *VisionBoard) renderForm() app.UI {
	kind := b.form.Type()
	tab := func(t canvas.ItemType, label string) app.UI {
		cls := "modal-tab"
		if kind == t {
			cls += " active"
		}
		return app.Button().
			Type("button").
			Class(cls).
			Text(label).
			OnClick(func(ctx app.Context, e app.Event) {
				b.onFormType(ctx, e, t)
			})
	}

	var fields app.UI
	switch kind {
	case canvas.ItemImage:
		fields = app.Div().Body(
			app.Input().
				Type("url").
				Class("modal-input").
				Placeholder("Image URL").
				Value(b.form.URL()).
				OnInput(b.onFormURL),
			app.Div().Class("modal-or").Text("or"),
			app.Input().
				Type("file").
				Accept("image/*").
				OnChange(b.onFormFile),
		)
	case canvas.ItemNote:
		fields = app.Div().Body(
			app.Textarea().
				Class("modal-input").
				Placeholder("Write a note...").
				Text(b.form.Text()).
				OnInput(b.onFormText),
			app.Input().
				Type("color").
				Value(canvas.DefaultNoteColor).
				OnInput(b.onFormColor),
		)
	default:
		fields = app.Input().
			Type("url").
			Class("modal-input").
			Placeholder("https://").
			Value(b.form.Text()).
			OnInput(b.onFormText)
	}

	submitLabel := "Add"
	if b.submitting {
		submitLabel = "Adding..."
	}

	return app.Div().
		Class("modal-overlay").
		OnClick(func(ctx app.Context, e app.Event) {
			b.dismissForm()
		}).
		Body(
			app.Form().
				Class("modal").
				OnClick(stopPropagation).
				OnSubmit(b.submitForm).
				Body(
					app.Div().Class("modal-tabs").Body(
						tab(canvas.ItemImage, "Image"),
						tab(canvas.ItemNote, "Note"),
						tab(canvas.ItemLink, "Link"),
					),
					fields,
					app.Div().Class("modal-actions").Body(
						app.Button().
							Type("button").
							Class("btn").
							Text("Cancel").
							OnClick(func(ctx app.Context, e app.Event) {
								b.dismissForm()
							}),
						app.Button().
							Type("submit").
							Class("btn btn-primary").
							Disabled(b.submitting).
							Text(submitLabel),
					),
				),
		)
}
