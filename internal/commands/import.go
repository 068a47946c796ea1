package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/importer"
)

func newImportCommand() *cobra.Command {
	var configPath string
	var accountID string
	var format string
	var keep bool

	cmd := &cobra.Command{
		Use:   "import <statement.csv> [more...]",
		Short: "Import bank statement CSVs as transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, configPath, accountID, format, keep, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "finbook.yaml", "path to finbook.yaml")
	cmd.Flags().StringVar(&accountID, "account", "", "account id to post into (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave statement files in place after importing")

	return cmd
}

func runImport(cmd *cobra.Command, configPath, accountID, format string, keep bool, files []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	for _, file := range files {
		posted, err := importFile(st, parser, accountID, file)
		if err != nil {
			return fmt.Errorf("importing %s: %w", file, err)
		}
		cmd.Printf("%s: %d transactions\n", file, posted)

		if !keep {
			if err := markProcessed(file); err != nil {
				return fmt.Errorf("moving %s: %w", file, err)
			}
		}
	}
	return nil
}

func importFile(dst importer.Poster, parser importer.Parser, accountID, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	entries, err := parser.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing statement: %w", err)
	}
	posted, err := importer.Import(dst, accountID, entries)
	if err != nil {
		return len(posted), err
	}
	return len(posted), nil
}

// markProcessed moves a consumed statement into a processed/ directory
// next to it so repeated runs do not double-post.
func markProcessed(path string) error {
	dir := filepath.Join(filepath.Dir(path), "processed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.Rename(path, filepath.Join(dir, filepath.Base(path)))
}
