// Package ui is the browser front end: a go-app component that drives the
// canvas core against the JSON API.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/client"
)

const (
	canvasID      = "vision-canvas"
	toastDuration = 4 * time.Second
)

// Routes registers the UI pages. It must run in both the server and the wasm
// binary so that they agree on what they serve.
func Routes() {
	app.Route("/", func() app.Composer { return &VisionBoard{} })
}

type VisionBoard struct {
	app.Compo

	store    *client.Client
	registry *canvas.Registry

	// Boards
	boards       []canvas.Board
	boardID      string
	newBoardName string

	// Items
	col    canvas.Collection
	ctrl   *canvas.Controller
	loaded bool

	// Add item modal
	form       *canvas.Composer
	showForm   bool
	submitting bool
	formCtx    context.Context
	closeForm  context.CancelFunc

	toast   string
	toastID int
}

func (b *VisionBoard) OnInit() {
	b.store = client.New("", nil)
	b.registry = canvas.NewRegistry(b.store)
	b.boardID = canvas.DefaultBoardID
	b.ctrl = canvas.NewController(localCommitter{b})
	b.form = canvas.NewComposer(nil)
}

func (b *VisionBoard) OnMount(ctx app.Context) {
	b.loadData(ctx)
}

func (b *VisionBoard) OnDismount() {
	if b.closeForm != nil {
		b.closeForm()
	}
}

func (b *VisionBoard) loadData(ctx app.Context) {
	ctx.Async(func() {
		boards, err := b.registry.ListBoards(ctx)
		if err != nil {
			app.Log("error loading boards:", err)
			ctx.Dispatch(func(ctx app.Context) { b.showToast(ctx, "Could not load boards") })
			return
		}
		items, err := b.store.ListItems(ctx)
		if err != nil {
			app.Log("error loading items:", err)
			ctx.Dispatch(func(ctx app.Context) { b.showToast(ctx, "Could not load items") })
			return
		}

		ctx.Dispatch(func(ctx app.Context) {
			b.boards = boards
			b.col.Set(items)
			b.loaded = true
			b.sync()
		})
	})
}

// sync rebuilds the working copy if the active board or the collection
// changed since the last call.
func (b *VisionBoard) sync() {
	b.ctrl.Sync(b.boardID, &b.col)
}

func (b *VisionBoard) showToast(ctx app.Context, msg string) {
	b.toastID++
	id := b.toastID
	b.toast = msg
	ctx.After(toastDuration, func(ctx app.Context) {
		if b.toastID == id {
			b.toast = ""
		}
	})
}

// Boards

func (b *VisionBoard) onSelectBoard(ctx app.Context, e app.Event) {
	b.selectBoard(ctx.JSSrc().Get("value").String())
}

func (b *VisionBoard) selectBoard(id string) {
	b.boardID = id
	b.sync()
}

func (b *VisionBoard) onBoardNameInput(ctx app.Context, e app.Event) {
	b.newBoardName = ctx.JSSrc().Get("value").String()
}

func (b *VisionBoard) onBoardNameKeyDown(ctx app.Context, e app.Event) {
	if e.Get("key").String() == "Enter" {
		b.createBoard(ctx)
	}
}

func (b *VisionBoard) createBoard(ctx app.Context) {
	name := b.newBoardName
	if strings.TrimSpace(name) == "" {
		return
	}
	b.newBoardName = ""

	ctx.Async(func() {
		board, ok, err := b.registry.CreateBoard(ctx, name)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				app.Log("error creating board:", err)
				b.showToast(ctx, "Could not create board")
				return
			}
			if !ok || board.ID == "" {
				return
			}
			b.boards = append(b.boards, board)
			b.selectBoard(board.ID)
		})
	})
}

func (b *VisionBoard) deleteBoard(ctx app.Context, id string) {
	if id == canvas.DefaultBoardID {
		return
	}

	ctx.Async(func() {
		ok, err := b.registry.DeleteBoard(ctx, id)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				app.Log("error deleting board:", err)
				b.showToast(ctx, "Could not delete board")
				return
			}
			if !ok {
				return
			}
			for i, board := range b.boards {
				if board.ID == id {
					b.boards = append(b.boards[:i:i], b.boards[i+1:]...)
					break
				}
			}
			b.selectBoard(canvas.FallbackBoard(b.boardID, id))
		})
	})
}

// Items

func (b *VisionBoard) deleteItem(ctx app.Context, id string) {
	if !b.col.Remove(id) {
		return
	}
	b.sync()

	ctx.Async(func() {
		if err := b.store.DeleteItem(ctx, id); err != nil {
			app.Log("error deleting item:", err)
			ctx.Dispatch(func(ctx app.Context) { b.showToast(ctx, "Could not delete item") })
		}
	})
}

// localCommitter applies a finished gesture to the local collection right
// away and saves it in the background. A failed save leaves the local state
// in place and shows a toast.
type localCommitter struct {
	b *VisionBoard
}

func (l localCommitter) Commit(ctx context.Context, it canvas.Item) error {
	it.Width = canvas.ClampWidth(it.Width)
	if !l.b.col.Replace(it) {
		return nil
	}

	actx, ok := ctx.(app.Context)
	if !ok {
		return l.b.store.CommitItem(ctx, it)
	}
	actx.Async(func() {
		if err := l.b.store.CommitItem(actx, it); err != nil {
			app.Log("error saving item:", err)
			actx.Dispatch(func(ctx app.Context) { l.b.showToast(ctx, "Could not save item") })
		}
	})
	return nil
}
