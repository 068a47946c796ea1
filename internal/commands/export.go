package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/export"
	"github.com/finbook-dev/finbook/internal/gitops"
)

func newExportCommand() *cobra.Command {
	var configPath string
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entities to CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, configPath, dir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "finbook.yaml", "path to finbook.yaml")
	cmd.Flags().StringVar(&dir, "dir", "exports", "directory to write CSV files into")

	return cmd
}

func runExport(cmd *cobra.Command, configPath, dir string) error {
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

	snap, err := st.Snapshot()
	if err != nil {
		return err
	}
	if err := export.Write(dir, snap); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	cmd.Printf("Exported to %s\n", dir)

	if !cfg.Git.AutoCommit {
		return nil
	}
	if err := gitops.EnsureRepo(dir); err != nil {
		return fmt.Errorf("preparing git repo: %w", err)
	}
	msg := fmt.Sprintf("Export %s", time.Now().Format("2006-01-02 15:04"))
	hash, err := gitops.Commit(dir, msg, gitops.Author{
		Name:  cfg.Git.AuthorName,
		Email: cfg.Git.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	cmd.Printf("Committed %s\n", hash)
	return nil
}
