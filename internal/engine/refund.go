package engine

import "github.com/punchamoorthee/revenueops/internal/domain"

// refundEntries reverses revenue (and the GST in it when registered) against cash.
func refundEntries(f domain.Facts) []domain.JournalEntry {
	r := f.Refund.Amount

	var lines []domain.Posting
	if f.GSTRegistered {
		lines = append(lines,
			domain.Debit(domain.AccountRevenue, netOfGST(r)),
			domain.Debit(domain.AccountGST, gstShare(r)),
		)
	} else {
		lines = append(lines, domain.Debit(domain.AccountRevenue, r))
	}
	lines = append(lines, domain.Credit(domain.AccountCash, r))

	return []domain.JournalEntry{domain.NewEntry(descRefund, f.Refund.Date, lines...)}
}
