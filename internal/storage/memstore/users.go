package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/adventure-league/tracker/internal/domain"
)

type UserStore struct {
	mu    sync.RWMutex
	kv    KV
	users []domain.User
}

func newUserStore(ctx context.Context, kv KV, seed []domain.User) (*UserStore, error) {
	s := &UserStore{kv: kv}

	users, ok, err := loadCollection[domain.User](ctx, kv, keyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		users = seed
		if err := saveCollection(ctx, kv, keyUsers, users); err != nil {
			return nil, err
		}
	}
	s.users = users
	return s, nil
}

func (s *UserStore) persist(ctx context.Context) error {
	return saveCollection(ctx, s.kv, keyUsers, s.users)
}

func (s *UserStore) CreateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, user)
	if err := s.persist(ctx); err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}
	return nil
}

func (s *UserStore) UpdateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == user.ID {
			prev := s.users[i]
			s.users[i] = user
			if err := s.persist(ctx); err != nil {
				s.users[i] = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *UserStore) GetUser(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *UserStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *UserStore) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.User
	for _, u := range s.users {
		if u.Active {
			out = append(out, u)
		}
	}
	sortUsersByName(out)
	return out, nil
}

func (s *UserStore) ListUsersByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.User
	for _, u := range s.users {
		if u.Active && u.Role == role {
			out = append(out, u)
		}
	}
	sortUsersByName(out)
	return out, nil
}

func sortUsersByName(users []domain.User) {
	sort.Slice(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
}
