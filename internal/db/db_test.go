package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidandcat/lifeboard/internal/canvas"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	d, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestBoards(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)

	boards, err := d.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, canvas.DefaultBoardID, boards[0].ID)
	assert.False(t, boards[0].CreatedAt.IsZero())

	travel, err := d.CreateBoard(ctx, "Travel")
	require.NoError(t, err)
	assert.NotEmpty(t, travel.ID)
	assert.Equal(t, "Travel", travel.Name)

	health, err := d.CreateBoard(ctx, "Health")
	require.NoError(t, err)
	assert.NotEqual(t, travel.ID, health.ID)

	boards, err = d.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 3)
	assert.Equal(t, []string{canvas.DefaultBoardID, travel.ID, health.ID},
		[]string{boards[0].ID, boards[1].ID, boards[2].ID})

	require.NoError(t, d.DeleteBoard(ctx, travel.ID))
	_, err = d.GetBoard(ctx, travel.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, d.DeleteBoard(ctx, canvas.DefaultBoardID))
	_, err = d.GetBoard(ctx, canvas.DefaultBoardID)
	assert.NoError(t, err, "default board survives even a direct delete")
}

func TestReopenKeepsSingleDefault(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d, err = Open(dir)
	require.NoError(t, err)
	defer d.Close()

	boards, err := d.ListBoards(context.Background())
	require.NoError(t, err)
	assert.Len(t, boards, 1)
}

func TestItems(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)

	n, err := canvas.NewNote(canvas.DefaultBoardID, "Plan trip", "")
	require.NoError(t, err)
	n.X, n.Y = 12.5, -4

	note, err := d.AddItem(ctx, n)
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)

	l, err := canvas.NewLink("travel", "https://youtube.com/x")
	require.NoError(t, err)
	link, err := d.AddItem(ctx, l)
	require.NoError(t, err)

	all, err := d.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, note.ID, all[0].ID)
	assert.Equal(t, link.ID, all[1].ID)
	assert.Equal(t, canvas.DefaultNoteColor, all[0].Color)
	assert.Equal(t, -4.0, all[0].Y)

	travel, err := d.ListItemsByBoard(ctx, "travel")
	require.NoError(t, err)
	require.Len(t, travel, 1)
	assert.Equal(t, canvas.ItemLink, travel[0].Type)

	note.X, note.Y, note.Width = 300, 400, 150
	require.NoError(t, d.CommitItem(ctx, note))
	got, err := d.GetItem(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.X)
	assert.Equal(t, 400.0, got.Y)
	assert.Equal(t, 150.0, got.Width)

	assert.NoError(t, d.CommitItem(ctx, canvas.Item{ID: "ghost", Width: 200}))

	require.NoError(t, d.DeleteItem(ctx, note.ID))
	_, err = d.GetItem(ctx, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWidthFloorIsEnforced(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)

	_, err := d.AddItem(ctx, canvas.Item{BoardID: canvas.DefaultBoardID, Type: canvas.ItemNote, Content: "x", Width: 50})
	assert.Error(t, err)
}

func TestOrphanedItemsSurviveBoardDelete(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)

	b, err := d.CreateBoard(ctx, "Temp")
	require.NoError(t, err)
	it, err := canvas.NewNote(b.ID, "left behind", "")
	require.NoError(t, err)
	_, err = d.AddItem(ctx, it)
	require.NoError(t, err)

	require.NoError(t, d.DeleteBoard(ctx, b.ID))

	items, err := d.ListItemsByBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStoreDrivesCore(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)
	items := canvas.NewItemStore(d)
	require.NoError(t, items.Load(ctx))

	c := canvas.NewComposer(nil)
	c.SetText("Run a marathon")
	it, ok, err := c.Submit(ctx, canvas.DefaultBoardID, items)
	require.NoError(t, err)
	require.True(t, ok)

	ctrl := canvas.NewController(items)
	ctrl.Sync(canvas.DefaultBoardID, items.Collection())
	require.True(t, ctrl.BeginDrag(it.ID, canvas.Point{X: it.X, Y: it.Y}))
	ctrl.Move(canvas.Point{X: it.X + 30, Y: it.Y + 40})
	require.NoError(t, ctrl.Release(ctx))

	got, err := d.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.InDelta(t, it.X+30, got.X, 1e-9)
	assert.InDelta(t, it.Y+40, got.Y, 1e-9)
}
