package vault

import (
	"context"

	"vaulttx/internal/transactions"
)

// Store is the narrow surface of the vault used by the service layer
// and the aggregation helper. Tests substitute an in-memory fake so
// their correctness does not depend on network availability.
type Store interface {
	// Put submits one transaction unwrapped, or several under the batch
	// envelope, as a single write.
	Put(ctx context.Context, docs ...transactions.Transaction) error

	// Search fetches one page of revisions.
	Search(ctx context.Context, page, perPage int) (*SearchResponse, error)

	// DeleteCollection removes all documents in the collection.
	DeleteCollection(ctx context.Context) error
}
