package vault

import (
	"context"
	"fmt"

	"vaulttx/internal/transactions"
)

const (
	// DefaultPageSize matches the vault's documented per-page maximum.
	DefaultPageSize = 100

	// DefaultMaxPages bounds aggregation so a runaway collection cannot
	// make a verification pass walk forever.
	DefaultMaxPages = 50
)

// AllTransactions fetches the full current document set and flattens it
// into one ordered slice. Pages are walked in order until a short page
// or the page cap; within a page, batch revisions contribute their
// nested transactions in remote order and single revisions contribute
// one transaction each.
func AllTransactions(
	ctx context.Context,
	store Store,
	pageSize, maxPages int,
) ([]transactions.Transaction, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	all := make([]transactions.Transaction, 0, pageSize)
	for page := 1; page <= maxPages; page++ {
		resp, err := store.Search(ctx, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		for _, rev := range resp.Revisions {
			all = append(all, rev.Docs()...)
		}

		if len(resp.Revisions) < pageSize {
			break
		}
	}

	return all, nil
}
