package main

import (
	"context"
	"fmt"
	"os"

	"lifeline/models"
	"lifeline/tui"
	"lifeline/web"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	logLevel := os.Getenv("LIFELINE_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.SetLogLevel(logLevel)

	app := &cli.App{
		Name:  "lifeline",
		Usage: "Personal timeline: your life's events on one vertical axis.",
		Commands: []*cli.Command{
			serveCommand(),
			syncCommand(),
			exportCommand(),
			importCommand(),
			resetCommand(),
			tuiCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.LogErr(err, "application failed")
		os.Exit(1)
	}
}

// openStore wires the full stack: database, snapshot store, and the remote
// client when sync is configured. The caller owns CloseDB.
func openStore() (*models.EventStore, *models.SyncConfig, error) {
	dbPath := os.Getenv("LIFELINE_DB")
	if dbPath == "" {
		dbPath = "./data/lifeline.ddb"
	}
	if err := models.InitDB(dbPath); err != nil {
		return nil, nil, err
	}

	cfg, err := models.LoadSyncConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var remote models.RemoteStore
	if cfg.Enabled() {
		client, err := models.NewSyncClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		remote = client
	}

	return models.NewEventStore(&models.DuckSnapshotStore{}, remote), cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI and JSON API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address. Overrides LIFELINE_ADDR."},
		},
		Action: func(c *cli.Context) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer models.CloseDB()

			store.StartAutoSync(c.Context, cfg.SyncOnLoad, cfg.Interval)

			addr := c.String("addr")
			if addr == "" {
				addr = os.Getenv("LIFELINE_ADDR")
			}
			if addr == "" {
				addr = ":8000"
			}

			srv := web.NewServer(store, addr)
			return web.Run(srv, addr)
		},
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Run one remote refresh and exit.",
		Action: func(c *cli.Context) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer models.CloseDB()

			if !store.Status().Enabled {
				return fmt.Errorf("sync is not configured: set LIFELINE_SYNC_URL and LIFELINE_SYNC_API_KEY")
			}

			if err := store.SyncFromRemote(context.Background(), false); err != nil {
				return err
			}

			logger.Info("Sync complete", "events", fmt.Sprintf("%d", len(store.Events())))
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the collection as a JSON document to a file or stdout.",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer models.CloseDB()

			doc, err := store.ExportSnapshot()
			if err != nil {
				return err
			}

			if path := c.Args().First(); path != "" {
				return os.WriteFile(path, doc, 0644)
			}
			_, err = os.Stdout.Write(doc)
			return err
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace the collection from an exported JSON document.",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("import requires a file argument")
			}

			blob, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer models.CloseDB()

			if err := store.ImportFrom(blob); err != nil {
				return err
			}

			logger.Info("Import complete", "events", fmt.Sprintf("%d", len(store.Events())))
			return nil
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete every event. Requires --yes.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "Confirm the wipe."},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return fmt.Errorf("refusing to wipe without --yes")
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer models.CloseDB()

			store.ResetAll()
			logger.Info("All events cleared")
			return nil
		},
	}
}

func tuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the timeline in the terminal.",
		Action: func(c *cli.Context) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer models.CloseDB()

			return tui.Run(store)
		},
	}
}
