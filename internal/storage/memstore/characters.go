package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/adventure-league/tracker/internal/domain"
)

type CharacterStore struct {
	mu         sync.RWMutex
	kv         KV
	characters []domain.Character
}

func newCharacterStore(ctx context.Context, kv KV, seed []domain.Character) (*CharacterStore, error) {
	s := &CharacterStore{kv: kv}

	characters, ok, err := loadCollection[domain.Character](ctx, kv, keyCharacters)
	if err != nil {
		return nil, err
	}
	if !ok {
		characters = seed
		if err := saveCollection(ctx, kv, keyCharacters, characters); err != nil {
			return nil, err
		}
	}
	s.characters = characters
	return s, nil
}

func (s *CharacterStore) persist(ctx context.Context) error {
	return saveCollection(ctx, s.kv, keyCharacters, s.characters)
}

func (s *CharacterStore) CreateCharacter(ctx context.Context, ch domain.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.characters = append(s.characters, ch)
	if err := s.persist(ctx); err != nil {
		s.characters = s.characters[:len(s.characters)-1]
		return err
	}
	return nil
}

func (s *CharacterStore) UpdateCharacter(ctx context.Context, ch domain.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID == ch.ID {
			prev := s.characters[i]
			s.characters[i] = ch
			if err := s.persist(ctx); err != nil {
				s.characters[i] = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *CharacterStore) DeleteCharacter(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID == id {
			prev := s.characters
			s.characters = append(append([]domain.Character{}, prev[:i]...), prev[i+1:]...)
			if err := s.persist(ctx); err != nil {
				s.characters = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *CharacterStore) GetCharacter(_ context.Context, id string) (domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.characters {
		if ch.ID == id {
			return ch, nil
		}
	}
	return domain.Character{}, domain.ErrNotFound
}

func (s *CharacterStore) ListCharacters(_ context.Context) ([]domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]domain.Character{}, s.characters...)
	sortCharactersByName(out)
	return out, nil
}

func (s *CharacterStore) ListCharactersByPlayer(_ context.Context, playerID string) ([]domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Character
	for _, ch := range s.characters {
		if ch.PlayerID == playerID {
			out = append(out, ch)
		}
	}
	sortCharactersByName(out)
	return out, nil
}

func (s *CharacterStore) SearchCharacters(_ context.Context, query string) ([]domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)

	var out []domain.Character
	for _, ch := range s.characters {
		if characterMatches(ch, q) {
			out = append(out, ch)
		}
	}
	sortCharactersByName(out)
	return out, nil
}

func characterMatches(ch domain.Character, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(ch.Name), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(ch.Race), lowerQuery) {
		return true
	}
	for _, cls := range ch.Classes {
		if strings.Contains(strings.ToLower(cls.Class), lowerQuery) {
			return true
		}
	}
	return false
}

func sortCharactersByName(characters []domain.Character) {
	sort.Slice(characters, func(i, j int) bool {
		return characters[i].Name < characters[j].Name
	})
}
