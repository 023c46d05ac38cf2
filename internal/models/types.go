package models

import (
	"time"

	"github.com/punchamoorthee/revenueops/internal/domain"
)

// FactsRequest is the fact object posted by clients. Amounts are cents,
// dates are YYYY-MM-DD. Every sub-object is required.
type FactsRequest struct {
	AccountingMethod string        `json:"accountingMethod" yaml:"accountingMethod"`
	GSTReporting     *GSTReporting `json:"GSTReporting" yaml:"GSTReporting"`
	Deposit          *Deposit      `json:"deposit" yaml:"deposit"`
	Payment          *Payment      `json:"payment" yaml:"payment"`
	Sales            *Sales        `json:"sales" yaml:"sales"`
	Refund           *Refund       `json:"refund" yaml:"refund"`
}

type GSTReporting struct {
	GSTRegistered      bool   `json:"GSTRegistered" yaml:"GSTRegistered"`
	GSTReportingMethod string `json:"GSTReportingMethod" yaml:"GSTReportingMethod"`
}

type Deposit struct {
	ReceivedDeposit       bool   `json:"receivedDeposit" yaml:"receivedDeposit"`
	DepositReceivedAmount int64  `json:"depositReceivedAmount" yaml:"depositReceivedAmount"`
	DepositReceivedDate   string `json:"depositReceivedDate" yaml:"depositReceivedDate"`
}

type Payment struct {
	ReceivedPayment       bool   `json:"receivedPayment" yaml:"receivedPayment"`
	PaymentReceivedAmount int64  `json:"paymentReceivedAmount" yaml:"paymentReceivedAmount"`
	PaymentReceivedDate   string `json:"paymentReceivedDate" yaml:"paymentReceivedDate"`
}

type Sales struct {
	SalesAmount int64  `json:"salesAmount" yaml:"salesAmount"`
	SalesDate   string `json:"salesDate" yaml:"salesDate"`
}

type Refund struct {
	Refunded     bool   `json:"refunded" yaml:"refunded"`
	RefundAmount int64  `json:"refundAmount" yaml:"refundAmount"`
	RefundDate   string `json:"refundDate" yaml:"refundDate"`
}

// PostingResponse is one row of an entry. Dr and Cr are cents, zero when unused.
type PostingResponse struct {
	Date    string `json:"date"`
	Account string `json:"account"`
	Dr      int64  `json:"Dr"`
	Cr      int64  `json:"Cr"`
}

// EntryResponse is the wire form of a journal entry.
type EntryResponse struct {
	EntryDescription string            `json:"entryDescription"`
	Entry            []PostingResponse `json:"entry"`
}

// ScenarioRequest saves a named fact set.
type ScenarioRequest struct {
	Name  string        `json:"name"`
	Facts *FactsRequest `json:"facts"`
}

// Scenario is a stored fact set. Entries are never stored; they are
// evaluated on every read.
type Scenario struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Facts     FactsRequest `json:"facts"`
	CreatedAt time.Time    `json:"created_at"`
}

// ScenarioResponse is the canonical response for scenario reads and writes.
type ScenarioResponse struct {
	Scenario Scenario        `json:"scenario"`
	Entries  []EntryResponse `json:"entries"`
}

// IdempotencyRecord holds the state of a request key.
type IdempotencyRecord struct {
	Key            string
	RequestHash    string
	Status         string
	ScenarioID     int64
	ResponseStatus int
}

// FromEntries converts engine output to the wire form. The result is never
// nil so that an empty evaluation encodes as [].
func FromEntries(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		rows := make([]PostingResponse, 0, len(e.Postings))
		for _, p := range e.Postings {
			rows = append(rows, PostingResponse{
				Date:    p.Date.String(),
				Account: p.Account.String(),
				Dr:      p.Debit,
				Cr:      p.Credit,
			})
		}
		out = append(out, EntryResponse{EntryDescription: e.Description, Entry: rows})
	}
	return out
}
