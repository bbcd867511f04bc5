package main

import (
	"context"
	"fmt"
	"os"
	"time"

	clientgame "github.com/cbodonnell/pixelquest/client/game"
	"github.com/cbodonnell/pixelquest/client/scenes"
	"github.com/cbodonnell/pixelquest/pkg/api"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/repositories"
	"github.com/cbodonnell/pixelquest/pkg/version"
	"github.com/cbodonnell/pixelquest/pkg/workers"
	"github.com/spf13/cobra"
)

var (
	flagDebug        bool
	flagStatusPort   int
	flagStatusHost   string
	flagDatabaseURL  string
	flagSaveSlot     string
	flagAutosave     time.Duration
	flagCommandQueue int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the game window",
	Long: `Open the game window and run until it is closed or the game quits.

Saving is enabled when a database URL is given, either with --database-url
or the DATABASE_URL environment variable. Supported schemes are sqlite://
and postgres://.

Examples:
  pixelquest run
  pixelquest run --status-port 8089
  pixelquest run --database-url sqlite://saves.db --autosave 1m`,
	Run: runGame,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with debug drawing enabled")
	cmd.Flags().IntVar(&flagStatusPort, "status-port", 0, "Port of the local status API (0 = disabled)")
	cmd.Flags().StringVar(&flagStatusHost, "status-host", "", "Interface the status API binds to (default: localhost)")
	cmd.Flags().StringVar(&flagDatabaseURL, "database-url", "", "Save database URL (default: $DATABASE_URL)")
	cmd.Flags().StringVar(&flagSaveSlot, "save-slot", constants.DefaultSaveSlot, "Save slot to load and save")
	cmd.Flags().DurationVar(&flagAutosave, "autosave", 0, "Autosave interval (0 = disabled)")
	cmd.Flags().IntVar(&flagCommandQueue, "command-queue", 0, "Maximum pending API commands (0 = default)")
}

func runGame(_ *cobra.Command, _ []string) {
	if err := run(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	log.Info("Starting client version %s", version.Get())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseURL := flagDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	var repository repositories.Repository
	if databaseURL != "" {
		repository, err = repositories.NewRepository(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to open save repository: %v", err)
		}
		defer repository.Close(ctx)
	} else {
		log.Info("No database configured, saving is disabled")
	}

	h := host.New(host.NewHostOptions{
		Config:           &cfg,
		Repository:       repository,
		SaveSlot:         flagSaveSlot,
		CommandQueueSize: flagCommandQueue,
	})
	scenes.Register(h)

	if _, err := h.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize game: %v", err)
	}
	defer h.Destroy()

	var saveRequests chan workers.SaveRequest
	if repository != nil {
		saveRequests = make(chan workers.SaveRequest, 1)
		saveWorker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
			Saver:        h,
			SaveRequests: saveRequests,
			Interval:     flagAutosave,
		})
		go saveWorker.Start(ctx)
	}

	if flagStatusPort > 0 {
		apiServer := api.NewAPIServer(api.NewAPIServerOptions{
			Host:         flagStatusHost,
			Port:         flagStatusPort,
			Game:         h,
			SaveRequests: saveRequests,
		})
		go apiServer.Start()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := apiServer.Stop(shutdownCtx); err != nil {
				log.Error("Failed to stop API server: %v", err)
			}
		}()
	}

	g, err := clientgame.NewGame(clientgame.NewGameOptions{
		Host:  h,
		Debug: flagDebug,
	})
	if err != nil {
		return fmt.Errorf("failed to create game: %v", err)
	}
	return g.Run()
}
