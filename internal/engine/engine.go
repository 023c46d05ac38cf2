// Package engine turns transaction facts into journal entries.
//
// Evaluation is a pure function of the facts: rule groups run in a fixed
// order (deposit, cash receipt or payment timing or unpaid sale, refund)
// and each appends complete entries to the result.
package engine

import (
	"github.com/punchamoorthee/revenueops/internal/domain"
)

// Rule group names, as reported in a Trace.
const (
	GroupDeposit       = "deposit"
	GroupCashReceipt   = "cash-receipt"
	GroupPaymentTiming = "payment-timing"
	GroupUnpaidSale    = "unpaid-sale"
	GroupRefund        = "refund"
)

// Engine evaluates facts. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	strict bool
}

type Option func(*Engine)

// WithStrictConsistency rejects over-receipts and out-of-order dates with a
// FactConsistencyError instead of evaluating them.
func WithStrictConsistency(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether the engine rejects over-receipts and date ordering problems.
func (e *Engine) Strict() bool { return e.strict }

// AppliedRule records one rule that produced entries.
type AppliedRule struct {
	Group   string
	Variant string
	Entries int
}

// Trace is the outcome of an evaluation together with the rules that fired.
type Trace struct {
	Entries []domain.JournalEntry
	Rules   []AppliedRule
}

var lenient = New()

// Evaluate runs the default (lenient) engine.
func Evaluate(f domain.Facts) ([]domain.JournalEntry, error) {
	return lenient.Evaluate(f)
}

// Evaluate returns the ordered journal entries the facts imply. It fails
// before producing any entry when the facts are invalid or inconsistent.
func (e *Engine) Evaluate(f domain.Facts) ([]domain.JournalEntry, error) {
	t, err := e.Trace(f)
	if err != nil {
		return nil, err
	}
	return t.Entries, nil
}

// Trace evaluates the facts and records which rule variants fired.
func (e *Engine) Trace(f domain.Facts) (Trace, error) {
	if err := f.Validate(); err != nil {
		return Trace{}, err
	}
	f = f.Normalize()
	if err := CheckConsistency(f, e.strict); err != nil {
		return Trace{}, err
	}

	t := Trace{Entries: make([]domain.JournalEntry, 0, 4)}
	apply := func(group, variant string, build builder) {
		entries := build(f)
		t.Entries = append(t.Entries, entries...)
		t.Rules = append(t.Rules, AppliedRule{Group: group, Variant: variant, Entries: len(entries)})
	}

	if f.Deposit.Received {
		apply(GroupDeposit, basisOf(f).String(), depositEntries)
	}

	switch {
	case f.AccountingMethod == domain.AccountingCash && f.Payment.Received:
		apply(GroupCashReceipt, basisOf(f).String(), cashReceiptEntries)
	case f.AccountingMethod == domain.AccountingAccrual && f.Payment.Received:
		key, build, err := resolveTiming(f)
		if err != nil {
			return Trace{}, err
		}
		apply(GroupPaymentTiming, key.String(), build)
	case f.AccountingMethod == domain.AccountingAccrual:
		apply(GroupUnpaidSale, basisOf(f).String(), unpaidSaleEntries)
	}

	if f.Refund.Received {
		apply(GroupRefund, basisOf(f).String(), refundEntries)
	}

	return t, nil
}
