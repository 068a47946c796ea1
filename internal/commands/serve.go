package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/assist"
	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/database"
	"github.com/finbook-dev/finbook/internal/server"
	"github.com/finbook-dev/finbook/internal/store"
	"github.com/finbook-dev/finbook/internal/summary"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "finbook.yaml", "path to finbook.yaml")

	return cmd
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	summaries := summary.NewService(st)

	assistant, shutdown, err := buildAssistant(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	chat := assist.NewService(st, summaries, assistant)
	if cfg.Assistant.TranscriptDir != "" {
		chat.LogTo(cfg.Assistant.TranscriptDir)
	}

	log.Printf("finbook listening on %s (backend: %s, assistant: %s)",
		cfg.Server.Addr, cfg.Storage.Backend, cfg.Assistant.Mode)
	return server.New(st, summaries, chat).Router().Run(cfg.Server.Addr)
}

func openStore(cfg *config.Config) (server.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.Open(cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return db, nil
	default:
		return store.New(), nil
	}
}

func buildAssistant(cfg *config.Config) (assist.Assistant, func(), error) {
	if cfg.Assistant.Mode == "bridge" {
		bridge, err := assist.StartBridge(cfg.Assistant.Command, cfg.Assistant.Args...)
		if err != nil {
			return nil, nil, fmt.Errorf("starting assistant bridge: %w", err)
		}
		return bridge, bridge.Shutdown, nil
	}
	return assist.Local{}, func() {}, nil
}
