package transaction

import "context"

// Repository defines the interface for transaction data access. Every read and
// mutation is scoped by the verified owner's user id at the query level.
type Repository interface {
	Create(ctx context.Context, params CreateTransactionParams) (*Transaction, error)
	ListByUserID(ctx context.Context, userID string) ([]*Transaction, error)
	Update(ctx context.Context, userID, id string, params UpdateTransactionParams) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllByUserID(ctx context.Context, userID string) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
}
