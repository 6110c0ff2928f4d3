package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/kidandcat/lifeboard/internal/canvas"
	"github.com/kidandcat/lifeboard/internal/client"
	"github.com/kidandcat/lifeboard/internal/config"
	"github.com/kidandcat/lifeboard/internal/db"
	"github.com/kidandcat/lifeboard/internal/printer"
)

var (
	configPath string
	dataDir    string
	serverURL  string
)

// store is satisfied by both the local database and the HTTP client.
type store interface {
	canvas.Store
	ListItemsByBoard(ctx context.Context, boardID string) ([]canvas.Item, error)
}

var rootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "Manage lifeboard boards and items from the terminal",
	Long: `boardctl reads and edits lifeboard vision boards.

By default it opens the local database in the configured data directory.
With --server it talks to a running lifeboard instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func SetVersion(v string) {
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Database directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Use a running server at this URL instead of the local database")
}

// openStore returns the store selected by the flags and a func to release it.
func openStore() (store, io.Closer, error) {
	if serverURL != "" {
		return client.New(serverURL, nil), nopCloser{}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, printer.Error("Invalid configuration", err.Error(), []string{"Check " + configPath})
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	d, err := db.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, printer.Error("Cannot open database", err.Error(), []string{
			"Check that " + cfg.DataDir + " is writable",
			"Pass --server to use a running lifeboard",
		})
	}
	return d, d, nil
}

func out() io.Writer {
	return printer.Stdout
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
