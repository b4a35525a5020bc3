package memory

import (
	"context"
	"sync"

	"mediarating/internal/domain/repository"
)

// txManager serializes multi-step sequences against the in-process store.
// Individual repository calls are already atomic under the store lock; the
// manager adds mutual exclusion between whole sequences, so two concurrent
// check-then-write flows cannot interleave their steps.
type txManager struct {
	store *Store
	txMu  sync.Mutex
}

// NewTransactionManager is the constructor for the memory transaction manager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &txManager{store: store}
}

// Execute runs fn while holding the sequence lock. The memory backend has no
// rollback; fn must not leave partial state behind on error.
func (m *txManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	return fn(&repoFactory{store: m.store})
}

// repoFactory hands out repositories bound to the shared store.
type repoFactory struct {
	store *Store
}

func (f *repoFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.store)
}

func (f *repoFactory) MediaRepo() repository.MediaRepository {
	return NewMediaRepository(f.store)
}

func (f *repoFactory) RatingRepo() repository.RatingRepository {
	return NewRatingRepository(f.store)
}
