package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kidandcat/lifeboard/internal/export"
	"github.com/kidandcat/lifeboard/internal/printer"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export BOARD_ID",
	Short: "Render a board to a PNG file",
	Long: `Render every item of a board to a PNG snapshot. Remote images are
drawn as labelled frames since they are not downloaded.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default BOARD_ID.png)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	boardID := args[0]
	path := exportOutput
	if path == "" {
		path = boardID + ".png"
	}

	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	printer.Step("Rendering board %s\n", boardID)
	items, err := s.ListItemsByBoard(context.Background(), boardID)
	if err != nil {
		return printer.Error("Cannot list items", err.Error(), nil)
	}

	f, err := os.Create(path)
	if err != nil {
		return printer.Error("Cannot create output file", err.Error(), nil)
	}
	err = export.PNG(f, items)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, export.ErrEmpty) {
			return printer.Error("Nothing to export", fmt.Sprintf("Board %s has no items.", boardID), nil)
		}
		return printer.Error("Export failed", err.Error(), nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return printer.Error("Export failed", err.Error(), nil)
	}
	printer.Success("Wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	return nil
}
