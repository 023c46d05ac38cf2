package engine

import "github.com/punchamoorthee/revenueops/internal/domain"

// CheckConsistency reports facts that cannot be evaluated together. The GST
// combination checks always apply. Over-receipt and date ordering are only
// checked when strict is set; otherwise the rules emit the entries they
// would for the given numbers.
func CheckConsistency(f domain.Facts, strict bool) error {
	if !f.GSTRegistered && f.GSTReportingMethod != domain.GSTReportingNone {
		return domain.NewFactConsistencyError("GSTReporting.GSTReportingMethod",
			"GST reporting method set for a business that is not GST registered")
	}
	if f.GSTRegistered && f.GSTReportingMethod == domain.GSTReportingNone {
		return domain.NewFactConsistencyError("GSTReporting.GSTReportingMethod",
			"GST registered business needs a GST reporting method")
	}
	if !strict {
		return nil
	}

	if f.AccountingMethod == domain.AccountingAccrual {
		b := basisOf(f)
		received := liabilityFor(b, f.Deposit.Amount) + liabilityFor(b, f.Payment.Amount)
		if received > saleValue(b, f.Sales.Amount) {
			return domain.NewFactConsistencyError("sales.salesAmount",
				"deposit and payment exceed the sale value")
		}
		if f.Deposit.Received && f.Deposit.Date.After(f.Sales.Date) {
			return domain.NewFactConsistencyError("deposit.depositReceivedDate",
				"deposit received after the sale")
		}
	}

	if f.Deposit.Received && f.Payment.Received && f.Deposit.Date.After(f.Payment.Date) {
		return domain.NewFactConsistencyError("deposit.depositReceivedDate",
			"deposit received after the payment")
	}
	if f.Refund.Received && f.Payment.Received && f.Refund.Date.Before(f.Payment.Date) {
		return domain.NewFactConsistencyError("refund.refundDate",
			"refund issued before the payment")
	}
	return nil
}
