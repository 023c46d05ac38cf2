package engine

import "github.com/punchamoorthee/revenueops/internal/domain"

// unpaidSaleEntries recognizes a sale under accrual accounting when no
// payment has been received. A deposit clears the contract liability it
// created; whatever is left of the sale becomes a receivable.
func unpaidSaleEntries(f domain.Facts) []domain.JournalEntry {
	b := basisOf(f)
	s := f.Sales.Amount

	var lines []domain.Posting
	var cleared int64
	if f.Deposit.Received {
		cleared = liabilityFor(b, f.Deposit.Amount)
		lines = append(lines, domain.Debit(domain.AccountContractLiability, cleared))
	}
	if ar := saleValue(b, s) - cleared; ar > 0 {
		lines = append(lines, domain.Debit(domain.AccountReceivable, ar))
	}
	lines = append(lines, revenueCredits(b, s)...)

	return []domain.JournalEntry{domain.NewEntry(descSale, f.Sales.Date, lines...)}
}
