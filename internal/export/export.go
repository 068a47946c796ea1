// Package export writes a store snapshot to CSV files, one file per
// entity kind. Amounts are written as exact 2-dp strings.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/finbook-dev/finbook/internal/store"
)

// File names written under the export directory.
const (
	AccountsFile     = "accounts.csv"
	TransactionsFile = "transactions.csv"
	DebtsFile        = "debts.csv"
	RemindersFile    = "reminders.csv"
)

// Write dumps the snapshot into dir, creating it if needed.
func Write(dir string, snap store.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	steps := []struct {
		name  string
		write func(path string) error
	}{
		{AccountsFile, func(p string) error { return writeFile(p, func(f *os.File) error { return WriteAccounts(f, snap.Accounts) }) }},
		{TransactionsFile, func(p string) error { return writeFile(p, func(f *os.File) error { return WriteTransactions(f, snap.Transactions) }) }},
		{DebtsFile, func(p string) error { return writeFile(p, func(f *os.File) error { return WriteDebts(f, snap.Debts) }) }},
		{RemindersFile, func(p string) error { return writeFile(p, func(f *os.File) error { return WriteReminders(f, snap.Reminders) }) }},
	}

	for _, s := range steps {
		if err := s.write(filepath.Join(dir, s.name)); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
