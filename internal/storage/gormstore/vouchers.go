package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/storage"
)

type LootVoucherStore struct {
	db *gorm.DB
}

func (s *LootVoucherStore) CreateVoucher(ctx context.Context, v domain.LootVoucher) error {
	model := voucherFromDomain(v)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("%w: create voucher: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *LootVoucherStore) UpdateVoucher(ctx context.Context, v domain.LootVoucher) error {
	model := voucherFromDomain(v)
	result := s.db.WithContext(ctx).Model(&LootVoucher{}).Where("id = ?", v.ID).
		Select("Name", "Description", "Rarity", "IsUsed", "UsedAt").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("%w: update voucher: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *LootVoucherStore) DeleteVoucher(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&LootVoucher{})
	if result.Error != nil {
		return fmt.Errorf("%w: delete voucher: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *LootVoucherStore) DeleteVouchersByCharacter(ctx context.Context, characterID string) (int, error) {
	result := s.db.WithContext(ctx).Where("character_id = ?", characterID).Delete(&LootVoucher{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: delete vouchers by character: %v", domain.ErrPersistence, result.Error)
	}
	return int(result.RowsAffected), nil
}

func (s *LootVoucherStore) GetVoucher(ctx context.Context, id string) (domain.LootVoucher, error) {
	var model LootVoucher
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return domain.LootVoucher{}, translate(err, "get voucher")
	}
	return voucherToDomain(model), nil
}

func (s *LootVoucherStore) ListVouchers(ctx context.Context) ([]domain.LootVoucher, error) {
	return s.list(ctx, s.db.WithContext(ctx))
}

func (s *LootVoucherStore) ListVouchersByCharacter(ctx context.Context, characterID string) ([]domain.LootVoucher, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("character_id = ?", characterID))
}

func (s *LootVoucherStore) ListVouchersByCharacterUsed(ctx context.Context, characterID string, used bool) ([]domain.LootVoucher, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("character_id = ? AND is_used = ?", characterID, used))
}

func (s *LootVoucherStore) ListVouchersByRarity(ctx context.Context, characterID string, rarity domain.Rarity) ([]domain.LootVoucher, error) {
	return s.list(ctx, s.db.WithContext(ctx).Where("character_id = ? AND rarity = ?", characterID, string(rarity)))
}

func (s *LootVoucherStore) RecentVouchers(ctx context.Context, limit int) ([]domain.LootVoucher, error) {
	return s.list(ctx, s.db.WithContext(ctx).Limit(limit))
}

func (s *LootVoucherStore) CountVouchers(ctx context.Context, characterID string) (storage.VoucherCounts, error) {
	var counts storage.VoucherCounts

	var total, used int64
	err := s.db.WithContext(ctx).Model(&LootVoucher{}).
		Where("character_id = ?", characterID).Count(&total).Error
	if err != nil {
		return counts, fmt.Errorf("%w: count vouchers: %v", domain.ErrPersistence, err)
	}
	err = s.db.WithContext(ctx).Model(&LootVoucher{}).
		Where("character_id = ? AND is_used = ?", characterID, true).Count(&used).Error
	if err != nil {
		return counts, fmt.Errorf("%w: count used vouchers: %v", domain.ErrPersistence, err)
	}

	counts.Total = int(total)
	counts.Used = int(used)
	counts.Unused = int(total - used)
	return counts, nil
}

func (s *LootVoucherStore) list(_ context.Context, tx *gorm.DB) ([]domain.LootVoucher, error) {
	var models []LootVoucher
	if err := tx.Order("awarded_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: list vouchers: %v", domain.ErrPersistence, err)
	}
	var out []domain.LootVoucher
	for _, m := range models {
		out = append(out, voucherToDomain(m))
	}
	return out, nil
}
