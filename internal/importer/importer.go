// Package importer turns bank statement CSV exports into transactions
// posted through the store, so imported rows go through the same
// balance rule as hand-entered ones.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

// StatementEntry is one parsed statement row. Amount is signed:
// negative = money out, positive = money in.
type StatementEntry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
}

// Parser converts a bank CSV file into StatementEntries.
type Parser interface {
	Parse(r io.Reader) ([]StatementEntry, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

// Poster is the slice of the store the importer posts through.
type Poster interface {
	CreateTransaction(p store.TransactionParams) (model.Transaction, error)
}

// Import posts entries against accountID as income/expense
// transactions. Zero-amount rows are skipped. The first failing row
// aborts the import; rows already posted stay posted.
func Import(dst Poster, accountID string, entries []StatementEntry) ([]model.Transaction, error) {
	var posted []model.Transaction
	for i, e := range entries {
		if e.Amount.IsZero() {
			continue
		}

		typ := model.TransactionIncome
		amount := e.Amount
		if e.Amount.IsNegative() {
			typ = model.TransactionExpense
			amount = e.Amount.Neg()
		}

		desc := e.Description
		if e.Reference != "" {
			desc = fmt.Sprintf("%s (%s)", e.Description, e.Reference)
		}

		txn, err := dst.CreateTransaction(store.TransactionParams{
			AccountID:   accountID,
			Type:        typ,
			Amount:      amount,
			Description: desc,
			Category:    model.CategoryOther,
		})
		if err != nil {
			return posted, fmt.Errorf("row %d: %w", i+1, err)
		}
		posted = append(posted, txn)
	}
	return posted, nil
}
