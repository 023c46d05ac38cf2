package engine

import "github.com/punchamoorthee/revenueops/internal/domain"

// paymentOnSaleDay books cash, the cleared deposit and the sale in a single
// entry. When the receipts already cover the GST-inclusive sale value
// nothing is emitted.
func paymentOnSaleDay(b basis) builder {
	return func(f domain.Facts) []domain.JournalEntry {
		d := f.Deposit.Amount
		p := f.Payment.Amount
		s := f.Sales.Amount

		if fullyPrepaid(b, d+p, s) {
			return nil
		}

		lines := []domain.Posting{domain.Debit(domain.AccountCash, p)}
		var cleared int64
		if f.Deposit.Received {
			cleared = liabilityFor(b, d)
			lines = append(lines, domain.Debit(domain.AccountContractLiability, cleared))
		}
		if ar := saleValue(b, s) - cleared - liabilityFor(b, p); ar > 0 {
			lines = append(lines, domain.Debit(domain.AccountReceivable, ar))
		}
		lines = append(lines, domain.Credit(domain.AccountRevenue, s))

		switch b {
		case cashBasis:
			lines = append(lines, domain.Credit(domain.AccountGST, gstShare(p)))
		case accrualBasis:
			lines = append(lines, domain.Credit(domain.AccountGST, gstOnSale(s)))
		}

		return []domain.JournalEntry{domain.NewEntry(descSale, f.Sales.Date, lines...)}
	}
}

// fullyPrepaid compares receipts with the exact GST-inclusive sale value,
// 11s/10, without truncating it.
func fullyPrepaid(b basis, receipts, s int64) bool {
	if b == notRegistered {
		return receipts >= s
	}
	return 10*receipts >= 11*s
}
