package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/printer"
)

const contentPreview = 48

var (
	itemsBoard string
	noteColor  string
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List, add and delete items on a board",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items of a board",
	Args:  cobra.NoArgs,
	RunE:  runItemsList,
}

var itemsAddNoteCmd = &cobra.Command{
	Use:   "add-note TEXT",
	Short: "Add a sticky note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addItem(canvas.ItemNote, func(c *canvas.Composer) {
			c.SetText(args[0])
			c.SetColor(noteColor)
		})
	},
}

var itemsAddLinkCmd = &cobra.Command{
	Use:   "add-link URL",
	Short: "Add a link card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addItem(canvas.ItemLink, func(c *canvas.Composer) {
			c.SetText(args[0])
		})
	},
}

var itemsAddImageCmd = &cobra.Command{
	Use:   "add-image FILE|URL",
	Short: "Add an image from a local file or a URL",
	Long: `Add an image. A local file is embedded in the board as a data URI.
Anything that is not an existing file is stored as a remote image URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemsAddImage,
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsDelete,
}

func init() {
	itemsCmd.PersistentFlags().StringVarP(&itemsBoard, "board", "b", canvas.DefaultBoardID, "Board ID")
	itemsAddNoteCmd.Flags().StringVar(&noteColor, "color", "", "Note background color (default "+canvas.DefaultNoteColor+")")

	itemsCmd.AddCommand(itemsListCmd, itemsAddNoteCmd, itemsAddLinkCmd, itemsAddImageCmd, itemsDeleteCmd)
	rootCmd.AddCommand(itemsCmd)
}

func runItemsList(cmd *cobra.Command, args []string) error {
	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	items, err := s.ListItemsByBoard(context.Background(), itemsBoard)
	if err != nil {
		return printer.Error("Cannot list items", err.Error(), nil)
	}
	if len(items) == 0 {
		printer.Info("Board %s has no items.\n", itemsBoard)
		return nil
	}

	table := tablewriter.NewWriter(out())
	table.Header("ID", "Type", "Content", "Position", "Width")
	for _, it := range items {
		row := []string{
			it.ID,
			string(it.Type),
			preview(it),
			fmt.Sprintf("%.0f, %.0f", it.X, it.Y),
			fmt.Sprintf("%.0f", it.Width),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// preview shortens item content for a table cell. Inline images are shown by
// their decoded size.
func preview(it canvas.Item) string {
	if it.Type == canvas.ItemImage && canvas.IsDataURI(it.Content) {
		data, mime, err := canvas.DecodeDataURI(it.Content)
		if err != nil {
			return "inline image (unreadable)"
		}
		return fmt.Sprintf("%s, %s", mime, humanize.Bytes(uint64(len(data))))
	}
	s := strings.Join(strings.Fields(it.Content), " ")
	if r := []rune(s); len(r) > contentPreview {
		s = string(r[:contentPreview-1]) + "…"
	}
	return s
}

func addItem(t canvas.ItemType, fill func(c *canvas.Composer)) error {
	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	c := canvas.NewComposer(nil)
	c.SetType(t)
	fill(c)

	it, ok, err := c.Submit(context.Background(), itemsBoard, canvas.NewItemStore(s))
	switch {
	case errors.Is(err, canvas.ErrNotImage):
		return printer.Error("Not an image", "The file could not be decoded as PNG, JPEG, GIF, WebP or BMP.", nil)
	case err != nil:
		return printer.Error("Cannot add item", err.Error(), nil)
	case !ok:
		return printer.Error("Nothing to add", "The item content is empty.", nil)
	}
	printer.Success("Added %s %s to %s\n", it.Type, it.ID, it.BoardID)
	return nil
}

func runItemsAddImage(cmd *cobra.Command, args []string) error {
	src := args[0]
	data, err := os.ReadFile(src)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return printer.Error("Cannot read image", err.Error(), nil)
	}

	return addItem(canvas.ItemImage, func(c *canvas.Composer) {
		if data != nil {
			c.SetFile(canvas.BytesSource(data))
			return
		}
		c.SetURL(src)
	})
}

func runItemsDelete(cmd *cobra.Command, args []string) error {
	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := s.DeleteItem(context.Background(), args[0]); err != nil {
		return printer.Error("Cannot delete item", err.Error(), nil)
	}
	printer.Success("Deleted item %s\n", args[0])
	return nil
}
