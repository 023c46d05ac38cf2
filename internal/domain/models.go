package domain

import (
	"fmt"
	"strings"
)

// AccountingMethod decides when revenue is recognized.
type AccountingMethod int

const (
	AccountingCash AccountingMethod = iota + 1
	AccountingAccrual
)

func (m AccountingMethod) String() string {
	switch m {
	case AccountingCash:
		return "cash"
	case AccountingAccrual:
		return "accrual"
	default:
		return ""
	}
}

// ParseAccountingMethod accepts "cash" or "accrual" in any case.
func ParseAccountingMethod(s string) (AccountingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return AccountingCash, nil
	case "accrual":
		return AccountingAccrual, nil
	}
	return 0, fmt.Errorf("unknown accounting method %q", s)
}

// GSTReportingMethod is the basis on which GST is reported to the tax office.
type GSTReportingMethod int

const (
	GSTReportingNone GSTReportingMethod = iota
	GSTReportingCash
	GSTReportingAccrual
)

func (m GSTReportingMethod) String() string {
	switch m {
	case GSTReportingCash:
		return "cash"
	case GSTReportingAccrual:
		return "accrual"
	default:
		return ""
	}
}

// ParseGSTReportingMethod accepts "cash", "accrual" or "" (none).
func ParseGSTReportingMethod(s string) (GSTReportingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return GSTReportingNone, nil
	case "cash":
		return GSTReportingCash, nil
	case "accrual":
		return GSTReportingAccrual, nil
	}
	return 0, fmt.Errorf("unknown GST reporting method %q", s)
}

// Receipt is money received (or paid back) on a given day.
// Amount is in cents and only meaningful when the receipt happened.
type Receipt struct {
	Received bool
	Amount   int64
	Date     Date
}

// Sale is the revenue event recognized under accrual accounting.
type Sale struct {
	Amount int64
	Date   Date
}

// Facts is the normalized description of one transaction.
// Amounts are cents, GST inclusive for receipts and GST exclusive for the sale.
type Facts struct {
	AccountingMethod   AccountingMethod
	GSTRegistered      bool
	GSTReportingMethod GSTReportingMethod
	Deposit            Receipt
	Payment            Receipt
	Sales              Sale
	// Refund.Received reports that the refund was issued.
	Refund Receipt
}

// Normalize applies the rules that follow from the other facts: a
// GST-registered business on cash accounting reports GST on a cash basis,
// and amounts of groups that did not happen are zero.
func (f Facts) Normalize() Facts {
	if f.AccountingMethod == AccountingCash && f.GSTRegistered {
		f.GSTReportingMethod = GSTReportingCash
	}
	if !f.Deposit.Received {
		f.Deposit = Receipt{}
	}
	if !f.Payment.Received {
		f.Payment = Receipt{}
	}
	if !f.Refund.Received {
		f.Refund = Receipt{}
	}
	if f.AccountingMethod == AccountingCash {
		f.Sales = Sale{}
	}
	return f
}

// Validate checks field-level constraints. It does not look at how facts
// relate to each other.
func (f Facts) Validate() error {
	if f.AccountingMethod != AccountingCash && f.AccountingMethod != AccountingAccrual {
		return NewValidationError("accountingMethod", "accounting method is required")
	}
	if f.GSTReportingMethod < GSTReportingNone || f.GSTReportingMethod > GSTReportingAccrual {
		return NewValidationError("GSTReporting.GSTReportingMethod", "unknown GST reporting method")
	}

	receipts := []struct {
		group, amountField, dateField string
		r                             Receipt
	}{
		{"deposit", "depositReceivedAmount", "depositReceivedDate", f.Deposit},
		{"payment", "paymentReceivedAmount", "paymentReceivedDate", f.Payment},
		{"refund", "refundAmount", "refundDate", f.Refund},
	}
	for _, rc := range receipts {
		if rc.r.Amount < 0 {
			return NewValidationError(rc.group+"."+rc.amountField, "amount must not be negative")
		}
		if rc.r.Received && rc.r.Date.IsZero() {
			return NewValidationError(rc.group+"."+rc.dateField, "date is required")
		}
	}

	if f.Sales.Amount < 0 {
		return NewValidationError("sales.salesAmount", "amount must not be negative")
	}
	if f.AccountingMethod == AccountingAccrual && f.Sales.Date.IsZero() {
		return NewValidationError("sales.salesDate", "sales date is required under accrual accounting")
	}
	return nil
}
