package models

import "github.com/punchamoorthee/revenueops/internal/domain"

// ToFacts checks presence and format of every field and builds domain facts.
// Errors are domain.ValidationError values naming the offending field.
func (r FactsRequest) ToFacts() (domain.Facts, error) {
	switch {
	case r.GSTReporting == nil:
		return domain.Facts{}, domain.NewValidationError("GSTReporting", "GSTReporting is required")
	case r.Deposit == nil:
		return domain.Facts{}, domain.NewValidationError("deposit", "deposit is required")
	case r.Payment == nil:
		return domain.Facts{}, domain.NewValidationError("payment", "payment is required")
	case r.Sales == nil:
		return domain.Facts{}, domain.NewValidationError("sales", "sales is required")
	case r.Refund == nil:
		return domain.Facts{}, domain.NewValidationError("refund", "refund is required")
	}

	method, err := domain.ParseAccountingMethod(r.AccountingMethod)
	if err != nil {
		return domain.Facts{}, domain.NewValidationError("accountingMethod", err.Error())
	}
	reporting, err := domain.ParseGSTReportingMethod(r.GSTReporting.GSTReportingMethod)
	if err != nil {
		return domain.Facts{}, domain.NewValidationError("GSTReporting.GSTReportingMethod", err.Error())
	}

	facts := domain.Facts{
		AccountingMethod:   method,
		GSTRegistered:      r.GSTReporting.GSTRegistered,
		GSTReportingMethod: reporting,
	}

	if facts.Deposit, err = receipt("deposit.depositReceivedDate", r.Deposit.ReceivedDeposit, r.Deposit.DepositReceivedAmount, r.Deposit.DepositReceivedDate); err != nil {
		return domain.Facts{}, err
	}
	if facts.Payment, err = receipt("payment.paymentReceivedDate", r.Payment.ReceivedPayment, r.Payment.PaymentReceivedAmount, r.Payment.PaymentReceivedDate); err != nil {
		return domain.Facts{}, err
	}
	if facts.Refund, err = receipt("refund.refundDate", r.Refund.Refunded, r.Refund.RefundAmount, r.Refund.RefundDate); err != nil {
		return domain.Facts{}, err
	}

	salesDate, err := domain.ParseDate(r.Sales.SalesDate)
	if err != nil {
		return domain.Facts{}, domain.NewValidationError("sales.salesDate", err.Error())
	}
	facts.Sales = domain.Sale{Amount: r.Sales.SalesAmount, Date: salesDate}

	return facts, nil
}

func receipt(dateField string, happened bool, amount int64, date string) (domain.Receipt, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.Receipt{}, domain.NewValidationError(dateField, err.Error())
	}
	return domain.Receipt{Received: happened, Amount: amount, Date: d}, nil
}
