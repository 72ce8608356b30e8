package postgresql

import (
	"context"

	"github.com/workforcehq/workforce-backend-go/internal/pkg/database"
)

// GetQuerier returns either the ambient transaction or the pool.
// Used in repositories so the same method works inside and outside
// Transactor.WithinTransaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
