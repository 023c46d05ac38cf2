package engine

import "github.com/punchamoorthee/revenueops/internal/domain"

// basis collapses registration and reporting method into the GST treatment
// the rules branch on.
type basis int

const (
	notRegistered basis = iota
	cashBasis
	accrualBasis
)

func (b basis) String() string {
	switch b {
	case cashBasis:
		return "gst-cash"
	case accrualBasis:
		return "gst-accrual"
	default:
		return "no-gst"
	}
}

func basisOf(f domain.Facts) basis {
	if !f.GSTRegistered {
		return notRegistered
	}
	if f.GSTReportingMethod == domain.GSTReportingAccrual {
		return accrualBasis
	}
	return cashBasis
}

// gstShare is the GST contained in a GST-inclusive amount, floor(x/11).
func gstShare(x int64) int64 { return x / 11 }

// netOfGST is the GST-exclusive part of a GST-inclusive amount, floor(10x/11).
// netOfGST(x)+gstShare(x) may fall short of x by the truncated cents.
func netOfGST(x int64) int64 { return x * 10 / 11 }

// gstOnSale is the GST charged on a GST-exclusive sale, floor(s/10).
func gstOnSale(s int64) int64 { return s / 10 }

func grossUp(s int64) int64 { return s + gstOnSale(s) }

// liabilityFor is the contract liability a GST-inclusive receipt of x
// created: the GST share went to the GST account on a cash basis.
func liabilityFor(b basis, x int64) int64 {
	if b == cashBasis {
		return netOfGST(x)
	}
	return x
}

// saleValue is the sale measured the way receivables are carried: GST
// inclusive on an accrual basis, GST exclusive otherwise.
func saleValue(b basis, s int64) int64 {
	if b == accrualBasis {
		return grossUp(s)
	}
	return s
}

// receiptCredits splits a GST-inclusive receipt against account.
func receiptCredits(b basis, account domain.Account, x int64) []domain.Posting {
	if b == cashBasis {
		return []domain.Posting{
			domain.Credit(account, netOfGST(x)),
			domain.Credit(domain.AccountGST, gstShare(x)),
		}
	}
	return []domain.Posting{domain.Credit(account, x)}
}

// revenueCredits recognizes a GST-exclusive sale, with GST when it is
// reported on an accrual basis.
func revenueCredits(b basis, s int64) []domain.Posting {
	lines := []domain.Posting{domain.Credit(domain.AccountRevenue, s)}
	if b == accrualBasis {
		lines = append(lines, domain.Credit(domain.AccountGST, gstOnSale(s)))
	}
	return lines
}
