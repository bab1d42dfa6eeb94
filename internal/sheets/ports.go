package sheets

import (
	"context"

	"fintrack/internal/core"
)

// Ports for outbound export adapters.
type (
	// TransactionAppender exports a transaction to an external sheet and
	// returns a reference to the written row.
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// TransactionRemover removes a previously exported transaction.
	TransactionRemover interface {
		Remove(ctx context.Context, id int64) error
	}
)
