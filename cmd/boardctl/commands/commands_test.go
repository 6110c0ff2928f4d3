package commands

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/printer"
)

type cli struct {
	t       *testing.T
	dataDir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	prevOut, prevErr, prevColor := printer.Stdout, printer.Stderr, color.NoColor
	color.NoColor = true
	t.Cleanup(func() { printer.Stdout, printer.Stderr, color.NoColor = prevOut, prevErr, prevColor })
	return &cli{t: t, dataDir: t.TempDir()}
}

// run executes boardctl against the test database and returns stdout and
// stderr.
func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	printer.Stdout, printer.Stderr = &out, &errOut

	exportOutput, noteColor, itemsBoard = "", "", canvas.DefaultBoardID
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(c.dataDir, "none.yaml"), "--data-dir", c.dataDir}, args...))
	err := Execute()
	return out.String(), errOut.String(), err
}

func TestBoardsCommands(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("boards", "create", "Travel")
	require.NoError(t, err)
	assert.Contains(t, out, `Created board "Travel"`)

	_, errOut, err := c.run("boards", "create", "   ")
	require.Error(t, err)
	assert.Contains(t, errOut, "Board name is empty")

	out, _, err = c.run("boards", "list")
	require.NoError(t, err)
	assert.Contains(t, out, canvas.DefaultBoardName)
	assert.Contains(t, out, "Travel")

	out, _, err = c.run("boards", "delete", canvas.DefaultBoardID)
	require.NoError(t, err)
	assert.Contains(t, out, "cannot be deleted")
}

func TestItemsCommands(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("items", "add-note", "Run a marathon", "--color", "#dbeafe")
	require.NoError(t, err)
	assert.Contains(t, out, "Added note")

	_, _, err = c.run("items", "add-link", "https://youtube.com/watch?v=1")
	require.NoError(t, err)

	img := filepath.Join(t.TempDir(), "dot.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	require.NoError(t, os.WriteFile(img, buf.Bytes(), 0o644))
	_, _, err = c.run("items", "add-image", img)
	require.NoError(t, err)

	notImage := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o644))
	_, errOut, err := c.run("items", "add-image", notImage)
	require.Error(t, err)
	assert.Contains(t, errOut, "Not an image")

	_, errOut, err = c.run("items", "add-note", "  ")
	require.Error(t, err)
	assert.Contains(t, errOut, "Nothing to add")

	out, _, err = c.run("items", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Run a marathon")
	assert.Contains(t, out, "youtube.com")
	assert.Contains(t, out, "image/png")

	out, _, err = c.run("items", "list", "--board", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "has no items")
}

func TestExportCommand(t *testing.T) {
	c := newCLI(t)
	dst := filepath.Join(t.TempDir(), "board.png")

	_, errOut, err := c.run("export", canvas.DefaultBoardID, "-o", dst)
	require.Error(t, err)
	assert.Contains(t, errOut, "Nothing to export")
	assert.NoFileExists(t, dst)

	_, _, err = c.run("items", "add-note", "Learn Go")
	require.NoError(t, err)

	out, _, err := c.run("export", canvas.DefaultBoardID, "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dst)

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestPreview(t *testing.T) {
	long := canvas.Item{Type: canvas.ItemNote, Content: "a  very\nlong note that keeps going well past the width of one table cell"}
	got := preview(long)
	assert.Equal(t, contentPreview, len([]rune(got)))
	assert.NotContains(t, got, "\n")

	short := canvas.Item{Type: canvas.ItemLink, Content: "https://go.dev"}
	assert.Equal(t, "https://go.dev", preview(short))
}
