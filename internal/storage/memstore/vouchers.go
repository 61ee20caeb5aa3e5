package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/storage"
)

type LootVoucherStore struct {
	mu       sync.RWMutex
	kv       KV
	vouchers []domain.LootVoucher
}

func newLootVoucherStore(ctx context.Context, kv KV, seed []domain.LootVoucher) (*LootVoucherStore, error) {
	s := &LootVoucherStore{kv: kv}

	vouchers, ok, err := loadCollection[domain.LootVoucher](ctx, kv, keyVouchers)
	if err != nil {
		return nil, err
	}
	if !ok {
		vouchers = seed
		if err := saveCollection(ctx, kv, keyVouchers, vouchers); err != nil {
			return nil, err
		}
	}
	s.vouchers = vouchers
	return s, nil
}

func (s *LootVoucherStore) persist(ctx context.Context) error {
	return saveCollection(ctx, s.kv, keyVouchers, s.vouchers)
}

func (s *LootVoucherStore) CreateVoucher(ctx context.Context, v domain.LootVoucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vouchers = append(s.vouchers, v)
	if err := s.persist(ctx); err != nil {
		s.vouchers = s.vouchers[:len(s.vouchers)-1]
		return err
	}
	return nil
}

func (s *LootVoucherStore) UpdateVoucher(ctx context.Context, v domain.LootVoucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vouchers {
		if s.vouchers[i].ID == v.ID {
			prev := s.vouchers[i]
			s.vouchers[i] = v
			if err := s.persist(ctx); err != nil {
				s.vouchers[i] = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *LootVoucherStore) DeleteVoucher(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vouchers {
		if s.vouchers[i].ID == id {
			prev := s.vouchers
			s.vouchers = append(append([]domain.LootVoucher{}, prev[:i]...), prev[i+1:]...)
			if err := s.persist(ctx); err != nil {
				s.vouchers = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *LootVoucherStore) DeleteVouchersByCharacter(ctx context.Context, characterID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.vouchers
	var kept []domain.LootVoucher
	for _, v := range prev {
		if v.CharacterID != characterID {
			kept = append(kept, v)
		}
	}
	removed := len(prev) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	s.vouchers = kept
	if err := s.persist(ctx); err != nil {
		s.vouchers = prev
		return 0, err
	}
	return removed, nil
}

func (s *LootVoucherStore) GetVoucher(_ context.Context, id string) (domain.LootVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vouchers {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.LootVoucher{}, domain.ErrNotFound
}

func (s *LootVoucherStore) ListVouchers(_ context.Context) ([]domain.LootVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filtered(func(domain.LootVoucher) bool { return true }), nil
}

func (s *LootVoucherStore) ListVouchersByCharacter(_ context.Context, characterID string) ([]domain.LootVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filtered(func(v domain.LootVoucher) bool {
		return v.CharacterID == characterID
	}), nil
}

func (s *LootVoucherStore) ListVouchersByCharacterUsed(_ context.Context, characterID string, used bool) ([]domain.LootVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filtered(func(v domain.LootVoucher) bool {
		return v.CharacterID == characterID && v.Used == used
	}), nil
}

func (s *LootVoucherStore) ListVouchersByRarity(_ context.Context, characterID string, rarity domain.Rarity) ([]domain.LootVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filtered(func(v domain.LootVoucher) bool {
		return v.CharacterID == characterID && v.Rarity == rarity
	}), nil
}

func (s *LootVoucherStore) RecentVouchers(_ context.Context, limit int) ([]domain.LootVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.filtered(func(domain.LootVoucher) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *LootVoucherStore) CountVouchers(_ context.Context, characterID string) (storage.VoucherCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts storage.VoucherCounts
	for _, v := range s.vouchers {
		if v.CharacterID != characterID {
			continue
		}
		counts.Total++
		if v.Used {
			counts.Used++
		} else {
			counts.Unused++
		}
	}
	return counts, nil
}

// filtered returns matching vouchers ordered by award time, newest first.
// Callers must hold at least the read lock.
func (s *LootVoucherStore) filtered(match func(domain.LootVoucher) bool) []domain.LootVoucher {
	var out []domain.LootVoucher
	for _, v := range s.vouchers {
		if match(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AwardedAt.After(out[j].AwardedAt)
	})
	return out
}
