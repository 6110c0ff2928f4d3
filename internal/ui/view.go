package ui

import (
	"net/url"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

func (b *VisionBoard) Render() app.UI {
	if !b.loaded {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
			app.If(b.toast != "", func() app.UI {
				return app.Div().Class("toast").Text(b.toast)
			}),
		)
	}

	return app.Div().Class("vision-board").Body(
		b.renderToolbar(),
		b.renderCanvas(),
		app.If(b.showForm, func() app.UI {
			return b.renderForm()
		}),
		app.If(b.toast != "", func() app.UI {
			return app.Div().Class("toast").Text(b.toast)
		}),
	)
}

func (b *VisionBoard) renderToolbar() app.UI {
	active := b.boardID

	return app.Div().Class("toolbar").Body(
		app.Select().
			Class("board-select").
			OnChange(b.onSelectBoard).
			Body(
				app.Range(b.boards).Slice(func(i int) app.UI {
					board := b.boards[i]
					return app.Option().
						Value(board.ID).
						Selected(board.ID == active).
						Text(board.Name)
				}),
			),
		app.If(active != canvas.DefaultBoardID, func() app.UI {
			return app.Button().
				Class("toolbar-btn").
				Title("Delete board").
				Text("🗑").
				OnClick(func(ctx app.Context, e app.Event) {
					b.deleteBoard(ctx, active)
				})
		}),
		app.Div().Class("toolbar-divider"),
		app.Input().
			Class("board-name").
			Placeholder("New board").
			Value(b.newBoardName).
			OnInput(b.onBoardNameInput).
			OnKeyDown(b.onBoardNameKeyDown),
		app.Button().
			Class("toolbar-btn").
			Title("Create board").
			Text("+").
			OnClick(func(ctx app.Context, e app.Event) {
				b.createBoard(ctx)
			}),
		app.Div().Class("toolbar-divider"),
		app.Button().
			Class("btn btn-primary").
			Text("Add item").
			OnClick(func(ctx app.Context, e app.Event) {
				b.openForm(ctx)
			}),
		app.A().
			Class("toolbar-btn").
			Title("Export as PNG").
			Href("/api/boards/"+url.PathEscape(active)+"/export.png").
			Download("board.png").
			Text("⤓"),
	)
}
