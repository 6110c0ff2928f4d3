package client

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidandcat/lifeboard/internal/api"
	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/config"
	"github.com/kidandcat/lifeboard/internal/db"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	d, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, config.Default(), d)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestClientBoards(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	b, err := c.CreateBoard(ctx, "Travel")
	require.NoError(t, err)
	assert.Equal(t, "Travel", b.Name)

	blank, err := c.CreateBoard(ctx, " ")
	require.NoError(t, err)
	assert.Empty(t, blank.ID)

	require.NoError(t, c.DeleteBoard(ctx, canvas.DefaultBoardID))
	boards, err := c.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, canvas.DefaultBoardID, boards[0].ID)

	require.NoError(t, c.DeleteBoard(ctx, b.ID))
	boards, err = c.ListBoards(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, 1)
}

func TestClientDrivesCore(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	items := canvas.NewItemStore(c)
	require.NoError(t, items.Load(ctx))

	note, err := canvas.NewNote(canvas.DefaultBoardID, "Learn Go", "")
	require.NoError(t, err)
	added, err := items.Add(ctx, note)
	require.NoError(t, err)

	ctrl := canvas.NewController(items)
	ctrl.Sync(canvas.DefaultBoardID, items.Collection())
	require.True(t, ctrl.BeginDrag(added.ID, canvas.Point{}))
	ctrl.Move(canvas.Point{X: 300, Y: 150})
	require.NoError(t, ctrl.Release(ctx))

	remote, err := c.ListItemsByBoard(ctx, canvas.DefaultBoardID)
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, 300.0, remote[0].X)
	assert.Equal(t, 150.0, remote[0].Y)

	require.NoError(t, items.Delete(ctx, added.ID))
	remote, err = c.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, remote)
}

func TestClientCommitMissingItem(t *testing.T) {
	c := newTestClient(t)
	err := c.CommitItem(context.Background(), canvas.Item{ID: "gone", Content: "x", Width: canvas.DefaultWidth})
	assert.NoError(t, err)
}

func TestClientErrors(t *testing.T) {
	c := newTestClient(t)
	_, err := c.AddItem(context.Background(), canvas.Item{BoardID: canvas.DefaultBoardID, Type: "video", Content: "x"})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, se.Error(), "unknown type")
}

func TestClientUploadImage(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))

	it, ok, err := c.UploadImage(ctx, canvas.DefaultBoardID, "grey.png", buf.Bytes())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, canvas.ItemImage, it.Type)
	assert.True(t, canvas.IsDataURI(it.Content))

	_, err = c.ListBoards(ctx)
	require.NoError(t, err)
}
