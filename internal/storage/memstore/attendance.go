package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adventure-league/tracker/internal/domain"
)

type AttendanceStore struct {
	mu     sync.RWMutex
	kv     KV
	tokens []domain.AttendanceToken
}

func newAttendanceStore(ctx context.Context, kv KV, seed []domain.AttendanceToken) (*AttendanceStore, error) {
	s := &AttendanceStore{kv: kv}

	tokens, ok, err := loadCollection[domain.AttendanceToken](ctx, kv, keyTokens)
	if err != nil {
		return nil, err
	}
	if !ok {
		tokens = seed
		if err := saveCollection(ctx, kv, keyTokens, tokens); err != nil {
			return nil, err
		}
	}
	s.tokens = tokens
	return s, nil
}

func (s *AttendanceStore) persist(ctx context.Context) error {
	return saveCollection(ctx, s.kv, keyTokens, s.tokens)
}

func (s *AttendanceStore) CreateToken(ctx context.Context, t domain.AttendanceToken) error {
	return s.CreateTokens(ctx, []domain.AttendanceToken{t})
}

// CreateTokens appends the whole batch and persists once.
func (s *AttendanceStore) CreateTokens(ctx context.Context, tokens []domain.AttendanceToken) error {
	if len(tokens) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevLen := len(s.tokens)
	s.tokens = append(s.tokens, tokens...)
	if err := s.persist(ctx); err != nil {
		s.tokens = s.tokens[:prevLen]
		return err
	}
	return nil
}

func (s *AttendanceStore) DeleteToken(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tokens {
		if s.tokens[i].ID == id {
			prev := s.tokens
			s.tokens = append(append([]domain.AttendanceToken{}, prev[:i]...), prev[i+1:]...)
			if err := s.persist(ctx); err != nil {
				s.tokens = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *AttendanceStore) DeleteTokensByCharacter(ctx context.Context, characterID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.tokens
	var kept []domain.AttendanceToken
	for _, t := range prev {
		if t.CharacterID != characterID {
			kept = append(kept, t)
		}
	}
	removed := len(prev) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	s.tokens = kept
	if err := s.persist(ctx); err != nil {
		s.tokens = prev
		return 0, err
	}
	return removed, nil
}

func (s *AttendanceStore) ListTokens(_ context.Context) ([]domain.AttendanceToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]domain.AttendanceToken{}, s.tokens...)
	sortTokensBySessionDate(out)
	return out, nil
}

func (s *AttendanceStore) ListTokensByCharacter(_ context.Context, characterID string) ([]domain.AttendanceToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.AttendanceToken
	for _, t := range s.tokens {
		if t.CharacterID == characterID {
			out = append(out, t)
		}
	}
	sortTokensBySessionDate(out)
	return out, nil
}

func (s *AttendanceStore) ListTokensBySession(_ context.Context, sessionName string) ([]domain.AttendanceToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.AttendanceToken
	for _, t := range s.tokens {
		if t.SessionName == sessionName {
			out = append(out, t)
		}
	}
	sortTokensBySessionDate(out)
	return out, nil
}

func (s *AttendanceStore) RecentTokens(_ context.Context, limit int) ([]domain.AttendanceToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]domain.AttendanceToken{}, s.tokens...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].AwardedAt.After(out[j].AwardedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AttendanceStore) CountTokensByCharacter(_ context.Context, characterID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, t := range s.tokens {
		if t.CharacterID == characterID {
			count++
		}
	}
	return count, nil
}

func (s *AttendanceStore) SessionNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uniqueSessions(s.tokens, ""), nil
}

func (s *AttendanceStore) SessionsAttended(_ context.Context, characterID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uniqueSessions(s.tokens, characterID), nil
}

func uniqueSessions(tokens []domain.AttendanceToken, characterID string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tokens {
		if characterID != "" && t.CharacterID != characterID {
			continue
		}
		if !seen[t.SessionName] {
			seen[t.SessionName] = true
			out = append(out, t.SessionName)
		}
	}
	sort.Strings(out)
	return out
}

func sortTokensBySessionDate(tokens []domain.AttendanceToken) {
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].SessionDate.After(tokens[j].SessionDate)
	})
}
