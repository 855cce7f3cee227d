package memory

import (
	"context"
	"sort"

	"github.com/iho/panelledger/internal/domain"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	store *Store
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Create inserts a user and assigns its ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.write(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Username == user.Username {
				return domain.ErrUsernameTaken
			}
		}
		user.ID = st.nextID("users")
		put(st, st.users, user.ID, *user)
		return nil
	})
}

// GetByID retrieves a user.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var out *domain.User
	err := r.store.read(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

// List lists users ordered by ID.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	var out []*domain.User
	err := r.store.read(ctx, func(st *state) error {
		for _, u := range st.users {
			out = append(out, &u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}
