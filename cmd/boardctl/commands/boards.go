package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/printer"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List, create and delete boards",
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards with their item counts",
	Args:  cobra.NoArgs,
	RunE:  runBoardsList,
}

var boardsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardsCreate,
}

var boardsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a board",
	Long: `Delete a board. Its items are kept in storage but no longer shown.
The default board cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoardsDelete,
}

func init() {
	boardsCmd.AddCommand(boardsListCmd, boardsCreateCmd, boardsDeleteCmd)
	rootCmd.AddCommand(boardsCmd)
}

func runBoardsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	boards, err := canvas.NewRegistry(s).ListBoards(ctx)
	if err != nil {
		return printer.Error("Cannot list boards", err.Error(), nil)
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return printer.Error("Cannot list items", err.Error(), nil)
	}

	table := tablewriter.NewWriter(out())
	table.Header("ID", "Name", "Items", "Created")
	for _, b := range boards {
		created := "-"
		if !b.CreatedAt.IsZero() {
			created = humanize.Time(b.CreatedAt)
		}
		n := len(canvas.ItemsForBoard(items, b.ID))
		if err := table.Append([]string{b.ID, b.Name, fmt.Sprint(n), created}); err != nil {
			return err
		}
	}
	return table.Render()
}

func runBoardsCreate(cmd *cobra.Command, args []string) error {
	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	b, ok, err := canvas.NewRegistry(s).CreateBoard(context.Background(), args[0])
	if err != nil {
		return printer.Error("Cannot create board", err.Error(), nil)
	}
	if !ok {
		return printer.Error("Board name is empty", "A board needs a name with at least one visible character.", nil)
	}
	printer.Success("Created board %q (%s)\n", b.Name, b.ID)
	return nil
}

func runBoardsDelete(cmd *cobra.Command, args []string) error {
	s, closer, err := openStore()
	if err != nil {
		return err
	}
	defer closer.Close()

	ok, err := canvas.NewRegistry(s).DeleteBoard(context.Background(), args[0])
	if err != nil {
		return printer.Error("Cannot delete board", err.Error(), nil)
	}
	if !ok {
		printer.Warning("The default board cannot be deleted\n")
		return nil
	}
	printer.Success("Deleted board %s\n", args[0])
	return nil
}
