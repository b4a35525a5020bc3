package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
	"mediarating/internal/domain/repository"
)

// userRepository implements repository.UserRepository on the in-process store.
type userRepository struct {
	store *Store
}

// NewUserRepository is the constructor for the memory-backed user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) FindByGuid(_ context.Context, guid uuid.UUID) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.userByGuidLocked(guid)
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	guid, ok := r.store.usersByName[usernameKey(username)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user, _ := r.store.userByGuidLocked(guid)

	return user, nil
}

func (r *userRepository) List(_ context.Context) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// Create inserts the user under the write lock, so the uniqueness check and
// the insert cannot interleave with a concurrent registration.
func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := usernameKey(user.Username)
	if _, exists := r.store.usersByName[key]; exists {
		return repository.ErrUsernameTaken
	}

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	if user.Guid == uuid.Nil {
		user.Guid = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	r.store.users[user.Guid] = *user
	r.store.usersByName[key] = user.Guid

	return nil
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.users[user.Guid]
	if !ok {
		return repository.ErrUserNotFound
	}

	newKey := usernameKey(user.Username)
	oldKey := usernameKey(current.Username)
	if newKey != oldKey {
		if _, exists := r.store.usersByName[newKey]; exists {
			return repository.ErrUsernameTaken
		}
		delete(r.store.usersByName, oldKey)
		r.store.usersByName[newKey] = user.Guid
	}

	user.ID = current.ID
	user.CreatedAt = current.CreatedAt
	r.store.users[user.Guid] = *user

	return nil
}
