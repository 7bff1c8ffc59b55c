package cache

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
)

// NoopLedgerCache never stores anything.
type NoopLedgerCache struct{}

var _ portsrepo.LedgerCache = NoopLedgerCache{}

func (NoopLedgerCache) Get(context.Context, string, domain.LedgerFilter) ([]domain.LedgerEntry, string, bool) {
	return nil, "", false
}

func (NoopLedgerCache) Set(context.Context, string, []domain.LedgerEntry) {}

func (NoopLedgerCache) Invalidate(context.Context, string) {}
