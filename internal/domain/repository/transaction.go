package repository

import "context"

// TransactionManager defines the interface for managing store transactions.
// This allows the use case layer to group check-then-write sequences into a
// single atomic unit without depending on a specific backend.
type TransactionManager interface {
	// Execute runs a function within a store transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction observe the same store state.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository instance bound to the current transaction.
	UserRepo() UserRepository

	// MediaRepo returns a MediaRepository instance bound to the current transaction.
	MediaRepo() MediaRepository

	// RatingRepo returns a RatingRepository instance bound to the current transaction.
	RatingRepo() RatingRepository
}
