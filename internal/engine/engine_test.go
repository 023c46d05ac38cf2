package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/punchamoorthee/revenueops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = domain.MustParseDate

func received(amount int64, date string) domain.Receipt {
	return domain.Receipt{Received: true, Amount: amount, Date: day(date)}
}

func requireBalanced(t *testing.T, entries []domain.JournalEntry) {
	t.Helper()
	for i, e := range entries {
		require.Truef(t, e.Balanced(), "entry %d %q: debit %d credit %d", i, e.Description, e.TotalDebit(), e.TotalCredit())
	}
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name     string
		facts    domain.Facts
		expected []domain.JournalEntry
	}{
		{
			name: "cash method deposit without GST",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				Deposit:          received(100000, "2024-01-01"),
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descDeposit, day("2024-01-01"),
					domain.Debit(domain.AccountCash, 100000),
					domain.Credit(domain.AccountRevenue, 100000),
				),
			},
		},
		{
			name: "cash method deposit with GST",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				GSTRegistered:    true,
				Deposit:          received(110000, "2024-01-01"),
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descDeposit, day("2024-01-01"),
					domain.Debit(domain.AccountCash, 110000),
					domain.Credit(domain.AccountRevenue, 100000),
					domain.Credit(domain.AccountGST, 10000),
				),
			},
		},
		{
			name: "accrual sale on account with GST reported on accrual",
			facts: domain.Facts{
				AccountingMethod:   domain.AccountingAccrual,
				GSTRegistered:      true,
				GSTReportingMethod: domain.GSTReportingAccrual,
				Sales:              domain.Sale{Amount: 100000, Date: day("2024-02-01")},
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descSale, day("2024-02-01"),
					domain.Debit(domain.AccountReceivable, 110000),
					domain.Credit(domain.AccountRevenue, 100000),
					domain.Credit(domain.AccountGST, 10000),
				),
			},
		},
		{
			name: "accrual payment before sale exceeding the sale",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingAccrual,
				Payment:          received(120000, "2024-01-10"),
				Sales:            domain.Sale{Amount: 100000, Date: day("2024-01-20")},
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descPayment, day("2024-01-10"),
					domain.Debit(domain.AccountCash, 120000),
					domain.Credit(domain.AccountContractLiability, 120000),
				),
				domain.NewEntry(descSale, day("2024-01-20"),
					domain.Debit(domain.AccountContractLiability, 120000),
					domain.Credit(domain.AccountRevenue, 100000),
				),
			},
		},
		{
			name: "refund with GST",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				GSTRegistered:    true,
				Refund:           received(55000, "2024-03-01"),
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descRefund, day("2024-03-01"),
					domain.Debit(domain.AccountRevenue, 50000),
					domain.Debit(domain.AccountGST, 5000),
					domain.Credit(domain.AccountCash, 55000),
				),
			},
		},
		{
			name: "cash method payment with GST",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				GSTRegistered:    true,
				Payment:          received(22000, "2024-01-05"),
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descPayment, day("2024-01-05"),
					domain.Debit(domain.AccountCash, 22000),
					domain.Credit(domain.AccountRevenue, 20000),
					domain.Credit(domain.AccountGST, 2000),
				),
			},
		},
		{
			name: "accrual deposit then payment after sale with GST on cash basis",
			facts: domain.Facts{
				AccountingMethod:   domain.AccountingAccrual,
				GSTRegistered:      true,
				GSTReportingMethod: domain.GSTReportingCash,
				Deposit:            received(11000, "2024-01-01"),
				Payment:            received(99000, "2024-02-01"),
				Sales:              domain.Sale{Amount: 100000, Date: day("2024-01-15")},
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descDeposit, day("2024-01-01"),
					domain.Debit(domain.AccountCash, 11000),
					domain.Credit(domain.AccountContractLiability, 10000),
					domain.Credit(domain.AccountGST, 1000),
				),
				domain.NewEntry(descSale, day("2024-01-15"),
					domain.Debit(domain.AccountContractLiability, 10000),
					domain.Debit(domain.AccountReceivable, 90000),
					domain.Credit(domain.AccountRevenue, 100000),
				),
				domain.NewEntry(descPayment, day("2024-02-01"),
					domain.Debit(domain.AccountCash, 99000),
					domain.Credit(domain.AccountReceivable, 90000),
					domain.Credit(domain.AccountGST, 9000),
				),
			},
		},
		{
			name: "accrual same day partial payment with GST on accrual basis",
			facts: domain.Facts{
				AccountingMethod:   domain.AccountingAccrual,
				GSTRegistered:      true,
				GSTReportingMethod: domain.GSTReportingAccrual,
				Deposit:            received(10000, "2024-01-01"),
				Payment:            received(50000, "2024-01-10"),
				Sales:              domain.Sale{Amount: 100000, Date: day("2024-01-10")},
			},
			expected: []domain.JournalEntry{
				domain.NewEntry(descDeposit, day("2024-01-01"),
					domain.Debit(domain.AccountCash, 10000),
					domain.Credit(domain.AccountContractLiability, 10000),
				),
				domain.NewEntry(descSale, day("2024-01-10"),
					domain.Debit(domain.AccountCash, 50000),
					domain.Debit(domain.AccountContractLiability, 10000),
					domain.Debit(domain.AccountReceivable, 50000),
					domain.Credit(domain.AccountRevenue, 100000),
					domain.Credit(domain.AccountGST, 10000),
				),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Evaluate(tt.facts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUnpaidSaleClearsDeposit(t *testing.T) {
	saleDate := day("2024-02-01")

	tests := []struct {
		name      string
		gst       bool
		reporting domain.GSTReportingMethod
		deposit   int64
		sale      []domain.Posting
	}{
		{
			name:    "no GST",
			deposit: 30000,
			sale: []domain.Posting{
				domain.Debit(domain.AccountContractLiability, 30000).On(saleDate),
				domain.Debit(domain.AccountReceivable, 70000),
				domain.Credit(domain.AccountRevenue, 100000),
			},
		},
		{
			name:      "GST on cash basis clears the net deposit",
			gst:       true,
			reporting: domain.GSTReportingCash,
			deposit:   33000,
			sale: []domain.Posting{
				domain.Debit(domain.AccountContractLiability, 30000).On(saleDate),
				domain.Debit(domain.AccountReceivable, 70000),
				domain.Credit(domain.AccountRevenue, 100000),
			},
		},
		{
			name:      "GST on accrual basis grosses up the receivable",
			gst:       true,
			reporting: domain.GSTReportingAccrual,
			deposit:   33000,
			sale: []domain.Posting{
				domain.Debit(domain.AccountContractLiability, 33000).On(saleDate),
				domain.Debit(domain.AccountReceivable, 77000),
				domain.Credit(domain.AccountRevenue, 100000),
				domain.Credit(domain.AccountGST, 10000),
			},
		},
		{
			name:    "deposit covering the sale leaves no receivable",
			deposit: 100000,
			sale: []domain.Posting{
				domain.Debit(domain.AccountContractLiability, 100000).On(saleDate),
				domain.Credit(domain.AccountRevenue, 100000),
			},
		},
		{
			name:      "gross deposit covering the sale on accrual basis",
			gst:       true,
			reporting: domain.GSTReportingAccrual,
			deposit:   110000,
			sale: []domain.Posting{
				domain.Debit(domain.AccountContractLiability, 110000).On(saleDate),
				domain.Credit(domain.AccountRevenue, 100000),
				domain.Credit(domain.AccountGST, 10000),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Evaluate(domain.Facts{
				AccountingMethod:   domain.AccountingAccrual,
				GSTRegistered:      tt.gst,
				GSTReportingMethod: tt.reporting,
				Deposit:            received(tt.deposit, "2024-01-15"),
				Sales:              domain.Sale{Amount: 100000, Date: saleDate},
			})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, descDeposit, got[0].Description)
			assert.Equal(t, descSale, got[1].Description)
			assert.Equal(t, tt.sale, got[1].Postings)
			requireBalanced(t, got[1:])
		})
	}
}

func TestStrictRejectsOutOfOrderDates(t *testing.T) {
	tests := []struct {
		name  string
		facts domain.Facts
		field string
	}{
		{
			name: "deposit after the sale",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingAccrual,
				Deposit:          received(10000, "2024-01-15"),
				Sales:            domain.Sale{Amount: 100000, Date: day("2024-01-10")},
			},
			field: "deposit.depositReceivedDate",
		},
		{
			name: "deposit after the payment under accrual",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingAccrual,
				Deposit:          received(10000, "2024-01-08"),
				Payment:          received(20000, "2024-01-05"),
				Sales:            domain.Sale{Amount: 100000, Date: day("2024-01-10")},
			},
			field: "deposit.depositReceivedDate",
		},
		{
			name: "deposit after the payment under cash",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				Deposit:          received(10000, "2024-01-08"),
				Payment:          received(20000, "2024-01-05"),
			},
			field: "deposit.depositReceivedDate",
		},
		{
			name: "refund before the payment",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				Payment:          received(20000, "2024-01-10"),
				Refund:           received(5000, "2024-01-05"),
			},
			field: "refund.refundDate",
		},
	}

	strict := New(WithStrictConsistency(true))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := strict.Evaluate(tt.facts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrFactConsistency))

			var cerr domain.FactConsistencyError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)

			entries, err := Evaluate(tt.facts)
			require.NoError(t, err)
			assert.NotEmpty(t, entries)
		})
	}
}

func TestEvaluateNothingHappened(t *testing.T) {
	t.Parallel()

	got, err := Evaluate(domain.Facts{AccountingMethod: domain.AccountingCash})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	t.Parallel()

	facts := domain.Facts{
		AccountingMethod:   domain.AccountingAccrual,
		GSTRegistered:      true,
		GSTReportingMethod: domain.GSTReportingCash,
		Deposit:            received(22000, "2024-01-01"),
		Payment:            received(33000, "2024-01-05"),
		Sales:              domain.Sale{Amount: 100000, Date: day("2024-01-10")},
		Refund:             received(11000, "2024-01-20"),
	}

	first, err := Evaluate(facts)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Evaluate(facts)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSameDayFullyPrepaidIsNoOp(t *testing.T) {
	tests := []struct {
		name      string
		gst       bool
		reporting domain.GSTReportingMethod
		deposit   int64
		payment   int64
	}{
		{name: "no GST exact", deposit: 40000, payment: 60000},
		{name: "no GST over", deposit: 40000, payment: 90000},
		{name: "GST cash basis exact gross", gst: true, reporting: domain.GSTReportingCash, deposit: 10000, payment: 100000},
		{name: "GST accrual basis exact gross", gst: true, reporting: domain.GSTReportingAccrual, payment: 110000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			facts := domain.Facts{
				AccountingMethod:   domain.AccountingAccrual,
				GSTRegistered:      tt.gst,
				GSTReportingMethod: tt.reporting,
				Payment:            received(tt.payment, "2024-01-10"),
				Sales:              domain.Sale{Amount: 100000, Date: day("2024-01-10")},
			}
			if tt.deposit > 0 {
				facts.Deposit = received(tt.deposit, "2024-01-01")
			}

			trace, err := New().Trace(facts)
			require.NoError(t, err)
			for _, e := range trace.Entries {
				assert.NotEqual(t, descSale, e.Description)
			}
			require.NotEmpty(t, trace.Rules)
			last := trace.Rules[len(trace.Rules)-1]
			assert.Equal(t, GroupPaymentTiming, last.Group)
			assert.Equal(t, 0, last.Entries)
		})
	}
}

func TestOverReceiptIsDegenerateWhenLenient(t *testing.T) {
	t.Parallel()

	facts := domain.Facts{
		AccountingMethod: domain.AccountingAccrual,
		Payment:          received(120000, "2024-01-10"),
		Sales:            domain.Sale{Amount: 100000, Date: day("2024-01-20")},
	}

	got, err := Evaluate(facts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Balanced())
	assert.False(t, got[1].Balanced())

	_, err = New(WithStrictConsistency(true)).Evaluate(facts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFactConsistency))
}

// TestBalanceAcrossFacts walks every method, GST treatment and timing with
// amounts that split into whole cents and checks every entry balances.
func TestBalanceAcrossFacts(t *testing.T) {
	t.Parallel()

	type gstCase struct {
		registered bool
		reporting  domain.GSTReportingMethod
	}
	gstCases := []gstCase{
		{false, domain.GSTReportingNone},
		{true, domain.GSTReportingCash},
		{true, domain.GSTReportingAccrual},
	}
	amounts := []int64{0, 11000, 55000, 110000}
	paymentDates := []string{"2024-01-05", "2024-01-10", "2024-01-15"}
	strict := New(WithStrictConsistency(true))

	evaluated := 0
	for _, method := range []domain.AccountingMethod{domain.AccountingCash, domain.AccountingAccrual} {
		for _, g := range gstCases {
			if method == domain.AccountingCash && g.reporting == domain.GSTReportingAccrual {
				continue
			}
			for _, deposit := range amounts {
				for _, payment := range amounts {
					for _, paymentDate := range paymentDates {
						for _, refund := range []int64{0, 22000} {
							facts := domain.Facts{
								AccountingMethod:   method,
								GSTRegistered:      g.registered,
								GSTReportingMethod: g.reporting,
								Deposit:            domain.Receipt{Received: deposit > 0, Amount: deposit, Date: day("2024-01-01")},
								Payment:            domain.Receipt{Received: payment > 0, Amount: payment, Date: day(paymentDate)},
								Sales:              domain.Sale{Amount: 110000, Date: day("2024-01-10")},
								Refund:             domain.Receipt{Received: refund > 0, Amount: refund, Date: day("2024-01-20")},
							}

							name := fmt.Sprintf("%s/%v/%s/d%d/p%d@%s/r%d", method, g.registered, g.reporting, deposit, payment, paymentDate, refund)
							entries, err := strict.Evaluate(facts)
							if errors.Is(err, domain.ErrFactConsistency) {
								continue
							}
							require.NoError(t, err, name)
							requireBalanced(t, entries)
							evaluated++
						}
					}
				}
			}
		}
	}
	assert.Greater(t, evaluated, 100)
}

func TestEvaluateRejectsBadFacts(t *testing.T) {
	tests := []struct {
		name  string
		facts domain.Facts
		want  error
		field string
	}{
		{
			name:  "missing accounting method",
			facts: domain.Facts{},
			want:  domain.ErrValidation,
			field: "accountingMethod",
		},
		{
			name: "negative deposit",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				Deposit:          received(-1, "2024-01-01"),
			},
			want:  domain.ErrValidation,
			field: "deposit.depositReceivedAmount",
		},
		{
			name: "payment without date",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingCash,
				Payment:          domain.Receipt{Received: true, Amount: 100},
			},
			want:  domain.ErrValidation,
			field: "payment.paymentReceivedDate",
		},
		{
			name:  "accrual without sales date",
			facts: domain.Facts{AccountingMethod: domain.AccountingAccrual},
			want:  domain.ErrValidation,
			field: "sales.salesDate",
		},
		{
			name: "reporting method without registration",
			facts: domain.Facts{
				AccountingMethod:   domain.AccountingCash,
				GSTReportingMethod: domain.GSTReportingAccrual,
			},
			want:  domain.ErrFactConsistency,
			field: "GSTReporting.GSTReportingMethod",
		},
		{
			name: "registered accrual without reporting method",
			facts: domain.Facts{
				AccountingMethod: domain.AccountingAccrual,
				GSTRegistered:    true,
				Sales:            domain.Sale{Amount: 100, Date: day("2024-01-01")},
			},
			want:  domain.ErrFactConsistency,
			field: "GSTReporting.GSTReportingMethod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Evaluate(tt.facts)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.want))

			switch e := err.(type) {
			case domain.ValidationError:
				assert.Equal(t, tt.field, e.Field)
			case domain.FactConsistencyError:
				assert.Equal(t, tt.field, e.Field)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestCashMethodForcesCashGSTReporting(t *testing.T) {
	t.Parallel()

	facts := domain.Facts{
		AccountingMethod:   domain.AccountingCash,
		GSTRegistered:      true,
		GSTReportingMethod: domain.GSTReportingAccrual,
		Deposit:            received(11000, "2024-01-01"),
	}

	trace, err := New().Trace(facts)
	require.NoError(t, err)
	require.Len(t, trace.Rules, 1)
	assert.Equal(t, AppliedRule{Group: GroupDeposit, Variant: "gst-cash", Entries: 1}, trace.Rules[0])
}

func TestZeroAmountsProduceZeroPostings(t *testing.T) {
	t.Parallel()

	got, err := Evaluate(domain.Facts{
		AccountingMethod: domain.AccountingAccrual,
		Sales:            domain.Sale{Amount: 0, Date: day("2024-01-10")},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []domain.Posting{domain.Credit(domain.AccountRevenue, 0).On(day("2024-01-10"))}, got[0].Postings)
}
