package engine

import "github.com/punchamoorthee/revenueops/internal/domain"

const (
	descDeposit = "Receipt of the deposit received in advance of the event"
	descPayment = "Cash received from the sale"
	descSale    = "Recognition of revenue on the sale"
	descRefund  = "To record refund to customer"
)

// depositEntries records a deposit. Under cash accounting it is revenue
// straight away; under accrual it is a contract liability until the sale.
func depositEntries(f domain.Facts) []domain.JournalEntry {
	d := f.Deposit.Amount

	credit := domain.AccountRevenue
	if f.AccountingMethod == domain.AccountingAccrual {
		credit = domain.AccountContractLiability
	}

	lines := []domain.Posting{domain.Debit(domain.AccountCash, d)}
	lines = append(lines, receiptCredits(basisOf(f), credit, d)...)

	return []domain.JournalEntry{domain.NewEntry(descDeposit, f.Deposit.Date, lines...)}
}

// cashReceiptEntries records a payment under cash accounting, where the
// receipt itself is the revenue event.
func cashReceiptEntries(f domain.Facts) []domain.JournalEntry {
	p := f.Payment.Amount

	lines := []domain.Posting{domain.Debit(domain.AccountCash, p)}
	lines = append(lines, receiptCredits(basisOf(f), domain.AccountRevenue, p)...)

	return []domain.JournalEntry{domain.NewEntry(descPayment, f.Payment.Date, lines...)}
}
