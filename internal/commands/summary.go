package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/summary"
)

func newSummaryCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a financial overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "finbook.yaml", "path to finbook.yaml")

	return cmd
}

func runSummary(cmd *cobra.Command, configPath string) error {
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
	ov, err := summary.NewService(st).Overview(time.Now())
	if err != nil {
		return err
	}

	cmd.Printf("Total balance:   %s\n", ov.TotalBalance.StringFixed(2))
	cmd.Printf("Spent this month: %s\n", ov.MonthlySpent.StringFixed(2))
	net := ov.NetDebt.TotalOwed.Sub(ov.NetDebt.TotalOwedToUser)
	cmd.Printf("Net debt:        %s (you owe %s, owed to you %s)\n",
		net.StringFixed(2),
		ov.NetDebt.TotalOwed.StringFixed(2),
		ov.NetDebt.TotalOwedToUser.StringFixed(2))

	cmd.Println("\nSpending by category:")
	for _, cat := range model.Categories() {
		cmd.Printf("  %-14s %s\n", cat, ov.CategorySpending[cat].StringFixed(2))
	}

	if len(ov.UpcomingReminders) > 0 {
		cmd.Println("\nUpcoming reminders:")
		for _, r := range ov.UpcomingReminders {
			cmd.Printf("  %s  %-20s %s\n",
				r.DueDate.Format("2006-01-02"), r.Title, r.Amount.StringFixed(2))
		}
	}

	if len(ov.RecentTransactions) > 0 {
		cmd.Println("\nRecent transactions:")
		for _, t := range ov.RecentTransactions {
			cmd.Printf("  %s  %-8s %-14s %s\n",
				t.CreatedAt.Format("2006-01-02"), t.Type, t.Category,
				t.Signed().StringFixed(2))
		}
	}

	return nil
}
