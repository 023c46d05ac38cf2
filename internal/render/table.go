package render

import (
	"fmt"
	"io"

	"github.com/punchamoorthee/revenueops/internal/domain"
)

const rowFormat = "%-10s  %-18s  %12s  %12s\n"

// Table writes entries as an aligned text table. Each entry starts with its
// description; zero amounts leave their column blank.
func Table(w io.Writer, entries []domain.JournalEntry) error {
	if _, err := fmt.Fprintf(w, rowFormat, "Date", "Account", "Dr", "Cr"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\n", e.Description); err != nil {
			return err
		}
		for _, p := range e.Postings {
			_, err := fmt.Fprintf(w, rowFormat, Date(p.Date), p.Account, column(p.Debit), column(p.Credit))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func column(cents int64) string {
	if cents == 0 {
		return ""
	}
	return Money(cents)
}
