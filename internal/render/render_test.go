package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/punchamoorthee/revenueops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = domain.MustParseDate

func refundEntry() domain.JournalEntry {
	return domain.NewEntry("To record refund to customer", day("2024-03-01"),
		domain.Debit(domain.AccountRevenue, 50000),
		domain.Debit(domain.AccountGST, 5000),
		domain.Credit(domain.AccountCash, 55000),
	)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "$0.00"},
		{cents: 5, want: "$0.05"},
		{cents: 110000, want: "$1100.00"},
		{cents: 9091, want: "$90.91"},
		{cents: -5000, want: "-$50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Money(tt.cents))
		})
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "01/03/2024", Date(day("2024-03-01")))
	assert.Equal(t, "", Date(domain.Date{}))
}

func TestTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []domain.JournalEntry{refundEntry()}))

	want := fmt.Sprintf(rowFormat, "Date", "Account", "Dr", "Cr") +
		"To record refund to customer\n" +
		fmt.Sprintf(rowFormat, "01/03/2024", "Revenue", "$500.00", "") +
		fmt.Sprintf(rowFormat, "", "GST", "$50.00", "") +
		fmt.Sprintf(rowFormat, "", "Cash", "", "$550.00")
	assert.Equal(t, want, buf.String())
}

func TestTableEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil))
	assert.Equal(t, fmt.Sprintf(rowFormat, "Date", "Account", "Dr", "Cr"), buf.String())
}

func TestBeancount(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Beancount(&buf, []domain.JournalEntry{refundEntry()}, DefaultChart()))

	want := "2024-03-01 * \"To record refund to customer\"\n" +
		fmt.Sprintf("  %-32s %12s %s\n", "Income:Revenue", "500.00", "AUD") +
		fmt.Sprintf("  %-32s %12s %s\n", "Liabilities:GST", "50.00", "AUD") +
		fmt.Sprintf("  %-32s %12s %s\n", "Assets:Cash", "-550.00", "AUD")
	assert.Equal(t, want, buf.String())
}

func TestBeancountFlagsUnbalancedEntry(t *testing.T) {
	t.Parallel()

	entry := domain.NewEntry("Recognition of revenue on the sale", day("2024-01-20"),
		domain.Debit(domain.AccountContractLiability, 120000),
		domain.Credit(domain.AccountRevenue, 100000),
	)

	var buf bytes.Buffer
	require.NoError(t, Beancount(&buf, []domain.JournalEntry{entry}, DefaultChart()))
	assert.Contains(t, buf.String(), "; unbalanced by 200.00 AUD\n")
}

func TestParseChart(t *testing.T) {
	t.Parallel()

	chart, err := ParseChart([]byte("currency: NZD\naccounts:\n  Cash: Assets:Bank:Operating\n"))
	require.NoError(t, err)
	assert.Equal(t, "NZD", chart.Currency)
	assert.Equal(t, "Assets:Bank:Operating", chart.Accounts["Cash"])
	assert.Equal(t, "Income:Revenue", chart.Accounts["Revenue"])

	var buf bytes.Buffer
	require.NoError(t, Beancount(&buf, []domain.JournalEntry{refundEntry()}, chart))
	assert.True(t, strings.Contains(buf.String(), "Assets:Bank:Operating"))
}

func TestParseChartRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown account", yaml: "accounts:\n  Inventory: Assets:Stock\n"},
		{name: "empty target", yaml: "accounts:\n  Cash: \"\"\n"},
		{name: "not yaml", yaml: "accounts: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseChart([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultChartMapsEveryAccount(t *testing.T) {
	t.Parallel()

	chart := DefaultChart()
	require.Len(t, chart.Accounts, len(domain.Accounts()))
	for _, account := range domain.Accounts() {
		assert.NotEmpty(t, chart.Accounts[account.String()], account.String())
	}
}
