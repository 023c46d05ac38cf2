package engine

import (
	"fmt"

	"github.com/punchamoorthee/revenueops/internal/domain"
)

// timing is when the payment arrived relative to the sale.
type timing int

const (
	paidBeforeSale timing = iota
	paidAfterSale
	paidOnSaleDay
)

func (t timing) String() string {
	switch t {
	case paidBeforeSale:
		return "before-sale"
	case paidAfterSale:
		return "after-sale"
	default:
		return "same-day"
	}
}

func timingOf(f domain.Facts) timing {
	switch {
	case f.Payment.Date.Equal(f.Sales.Date):
		return paidOnSaleDay
	case f.Payment.Date.Before(f.Sales.Date):
		return paidBeforeSale
	default:
		return paidAfterSale
	}
}

type builder func(f domain.Facts) []domain.JournalEntry

type ruleKey struct {
	basis  basis
	timing timing
}

func (k ruleKey) String() string {
	return fmt.Sprintf("%s/%s", k.basis, k.timing)
}

// timingRules is the decision table for an accrual-method payment. Every
// (basis, timing) pair has its own builder; a missing pair is a gap the
// resolver reports instead of falling through.
var timingRules = map[ruleKey]builder{
	{notRegistered, paidBeforeSale}: paymentBeforeSale(notRegistered),
	{cashBasis, paidBeforeSale}:     paymentBeforeSale(cashBasis),
	{accrualBasis, paidBeforeSale}:  paymentBeforeSale(accrualBasis),

	{notRegistered, paidAfterSale}: paymentAfterSale(notRegistered),
	{cashBasis, paidAfterSale}:     paymentAfterSale(cashBasis),
	{accrualBasis, paidAfterSale}:  paymentAfterSale(accrualBasis),

	{notRegistered, paidOnSaleDay}: paymentOnSaleDay(notRegistered),
	{cashBasis, paidOnSaleDay}:     paymentOnSaleDay(cashBasis),
	{accrualBasis, paidOnSaleDay}:  paymentOnSaleDay(accrualBasis),
}

// resolveTiming picks the builder for an accrual-method payment.
func resolveTiming(f domain.Facts) (ruleKey, builder, error) {
	key := ruleKey{basis: basisOf(f), timing: timingOf(f)}
	build, ok := timingRules[key]
	if !ok {
		return key, nil, fmt.Errorf("no payment timing rule for %s", key)
	}
	return key, build, nil
}

// paymentBeforeSale parks the payment in contract liability, then clears
// the liability against revenue on the sale date.
func paymentBeforeSale(b basis) builder {
	return func(f domain.Facts) []domain.JournalEntry {
		p := f.Payment.Amount
		s := f.Sales.Amount

		payment := []domain.Posting{domain.Debit(domain.AccountCash, p)}
		payment = append(payment, receiptCredits(b, domain.AccountContractLiability, p)...)

		cleared := liabilityFor(b, f.Deposit.Amount) + liabilityFor(b, p)
		sale := []domain.Posting{domain.Debit(domain.AccountContractLiability, cleared)}
		sale = append(sale, revenueCredits(b, s)...)
		if ar := saleValue(b, s) - cleared; ar > 0 {
			sale = append(sale, domain.Debit(domain.AccountReceivable, ar))
		}

		return []domain.JournalEntry{
			domain.NewEntry(descPayment, f.Payment.Date, payment...),
			domain.NewEntry(descSale, f.Sales.Date, sale...),
		}
	}
}

// paymentAfterSale books the sale as a receivable first, then settles the
// receivable when the cash arrives.
func paymentAfterSale(b basis) builder {
	return func(f domain.Facts) []domain.JournalEntry {
		p := f.Payment.Amount
		s := f.Sales.Amount

		var sale []domain.Posting
		var cleared int64
		if f.Deposit.Received {
			cleared = liabilityFor(b, f.Deposit.Amount)
			sale = append(sale, domain.Debit(domain.AccountContractLiability, cleared))
		}
		if ar := saleValue(b, s) - cleared; ar > 0 {
			sale = append(sale, domain.Debit(domain.AccountReceivable, ar))
		}
		sale = append(sale, revenueCredits(b, s)...)

		payment := []domain.Posting{domain.Debit(domain.AccountCash, p)}
		payment = append(payment, receiptCredits(b, domain.AccountReceivable, p)...)

		return []domain.JournalEntry{
			domain.NewEntry(descSale, f.Sales.Date, sale...),
			domain.NewEntry(descPayment, f.Payment.Date, payment...),
		}
	}
}
