package memory

import (
	"context"
	"strings"

	"github.com/iho/caisse/internal/domain"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.write(nil, func() (func(), error) {
		if r.byEmailLocked(user.Email) != nil {
			return nil, domain.ErrUserExists
		}
		return r.store.users.put(user.ID, *user), nil
	})
}

func (r *UserRepository) byEmailLocked(email string) *userRow {
	for _, u := range r.store.users.scan(func(u userRow) bool { return strings.EqualFold(u.Email, email) }) {
		return &u
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users.get(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u := r.byEmailLocked(email)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.users.get(user.ID); !ok {
			return nil, domain.ErrUserNotFound
		}
		return r.store.users.put(user.ID, *user), nil
	})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(nil, func() (func(), error) {
		if _, ok := r.store.users.get(id); !ok {
			return nil, domain.ErrUserNotFound
		}
		return r.store.users.remove(id), nil
	})
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.User, 0)
	for _, u := range page(r.store.users.scan(nil), limit, offset) {
		out = append(out, &u)
	}
	return out, nil
}
