package repository

import (
	"context"

	"cart-api/internal/domain"
)

// CartRepository defines the interface for cart data operations
// Consumers define this interface, not the MongoDB implementation
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
}

// UserRepository defines the interface for user account storage.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (string, error)
}

type indexed interface {
	CreateIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes for every repository that maintains
// some. Repositories without indexes (mocks, in-memory) are skipped.
func EnsureIndexes(ctx context.Context, repos ...interface{}) error {
	for _, r := range repos {
		ir, ok := r.(indexed)
		if !ok {
			continue
		}
		if err := ir.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
