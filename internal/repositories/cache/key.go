package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

const dateKeyLayout = "2006-01-02"

// filterKey renders a ledger filter as a stable string.
func filterKey(filter domain.LedgerFilter) string {
	var b strings.Builder
	b.WriteString("acct=")
	if filter.AccountID != nil {
		b.WriteString(*filter.AccountID)
	}
	b.WriteString("|from=")
	writeDate(&b, filter.StartDate)
	b.WriteString("|to=")
	writeDate(&b, filter.EndDate)
	fmt.Fprintf(&b, "|posted=%t", filter.PostedOnly)
	return b.String()
}

func writeDate(b *strings.Builder, t *time.Time) {
	if t != nil {
		b.WriteString(t.UTC().Format(dateKeyLayout))
	}
}

func cloneEntries(entries []domain.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(entries))
	copy(out, entries)
	return out
}
