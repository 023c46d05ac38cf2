package render

import (
	"fmt"
	"io"
	"os"

	"github.com/punchamoorthee/revenueops/internal/domain"
	"gopkg.in/yaml.v3"
)

// Chart maps ledger accounts to Beancount account names.
type Chart struct {
	Currency string            `yaml:"currency"`
	Accounts map[string]string `yaml:"accounts"`
}

var beancountNames = map[domain.Account]string{
	domain.AccountCash:              "Assets:Cash",
	domain.AccountRevenue:           "Income:Revenue",
	domain.AccountGST:               "Liabilities:GST",
	domain.AccountContractLiability: "Liabilities:ContractLiability",
	domain.AccountReceivable:        "Assets:AccountsReceivable",
}

// DefaultChart is used when no mapping file is given.
func DefaultChart() Chart {
	chart := Chart{Currency: "AUD", Accounts: make(map[string]string, len(beancountNames))}
	for _, account := range domain.Accounts() {
		chart.Accounts[account.String()] = beancountNames[account]
	}
	return chart
}

// LoadChart reads a YAML mapping file. Accounts it leaves out keep their
// default names; unknown account names are rejected.
func LoadChart(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("failed to read account mapping: %w", err)
	}
	return ParseChart(data)
}

func ParseChart(data []byte) (Chart, error) {
	var override Chart
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Chart{}, fmt.Errorf("failed to parse account mapping: %w", err)
	}

	chart := DefaultChart()
	if override.Currency != "" {
		chart.Currency = override.Currency
	}
	for name, target := range override.Accounts {
		if _, ok := chart.Accounts[name]; !ok {
			return Chart{}, fmt.Errorf("unknown account %q in mapping", name)
		}
		if target == "" {
			return Chart{}, fmt.Errorf("empty mapping for account %q", name)
		}
		chart.Accounts[name] = target
	}
	return chart, nil
}

// Beancount writes each entry as a transaction. Debits are positive and
// credits negative. An unbalanced entry gets a comment with the difference.
func Beancount(w io.Writer, entries []domain.JournalEntry, chart Chart) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s * %q\n", e.Date(), e.Description); err != nil {
			return err
		}
		if !e.Balanced() {
			diff := e.TotalDebit() - e.TotalCredit()
			if _, err := fmt.Fprintf(w, "  ; unbalanced by %s %s\n", Amount(diff), chart.Currency); err != nil {
				return err
			}
		}
		for _, p := range e.Postings {
			_, err := fmt.Fprintf(w, "  %-32s %12s %s\n", chart.Accounts[p.Account.String()], Amount(p.Debit-p.Credit), chart.Currency)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
