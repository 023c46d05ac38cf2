package domain

import "fmt"

// Account is one of the ledger accounts the rules post to.
type Account int

const (
	AccountCash Account = iota + 1
	AccountRevenue
	AccountGST
	AccountContractLiability
	AccountReceivable
)

var accountNames = map[Account]string{
	AccountCash:              "Cash",
	AccountRevenue:           "Revenue",
	AccountGST:               "GST",
	AccountContractLiability: "Contract liability",
	AccountReceivable:        "Account receivable",
}

func (a Account) String() string {
	if name, ok := accountNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Account(%d)", int(a))
}

// Accounts lists every account in chart order.
func Accounts() []Account {
	return []Account{AccountCash, AccountRevenue, AccountGST, AccountContractLiability, AccountReceivable}
}

// Posting is one debit or credit line. An empty Date means the entry's date applies.
type Posting struct {
	Date    Date
	Account Account
	Debit   int64
	Credit  int64
}

// Debit builds a debit line.
func Debit(account Account, amount int64) Posting {
	return Posting{Account: account, Debit: amount}
}

// Credit builds a credit line.
func Credit(account Account, amount int64) Posting {
	return Posting{Account: account, Credit: amount}
}

// On returns the posting dated at d.
func (p Posting) On(d Date) Posting {
	p.Date = d
	return p
}

// JournalEntry is a described, ordered set of postings.
// Total debits must equal total credits.
type JournalEntry struct {
	Description string
	Postings    []Posting
}

// NewEntry dates the first posting at date, unless it already carries one.
func NewEntry(description string, date Date, postings ...Posting) JournalEntry {
	lines := make([]Posting, len(postings))
	copy(lines, postings)
	if len(lines) > 0 && lines[0].Date.IsZero() {
		lines[0].Date = date
	}
	return JournalEntry{Description: description, Postings: lines}
}

func (e JournalEntry) TotalDebit() int64 {
	var sum int64
	for _, p := range e.Postings {
		sum += p.Debit
	}
	return sum
}

func (e JournalEntry) TotalCredit() int64 {
	var sum int64
	for _, p := range e.Postings {
		sum += p.Credit
	}
	return sum
}

func (e JournalEntry) Balanced() bool {
	return e.TotalDebit() == e.TotalCredit()
}

// Date is the date of the first dated posting.
func (e JournalEntry) Date() Date {
	for _, p := range e.Postings {
		if !p.Date.IsZero() {
			return p.Date
		}
	}
	return Date{}
}
