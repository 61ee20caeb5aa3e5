package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adventure-league/tracker/internal/domain"
)

type AttendanceStore struct {
	db *gorm.DB
}

func (s *AttendanceStore) CreateToken(ctx context.Context, t domain.AttendanceToken) error {
	model := tokenFromDomain(t)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("%w: create token: %v", domain.ErrPersistence, err)
	}
	return nil
}

// CreateTokens inserts the whole batch in one statement.
func (s *AttendanceStore) CreateTokens(ctx context.Context, tokens []domain.AttendanceToken) error {
	if len(tokens) == 0 {
		return nil
	}
	models := make([]AttendanceToken, 0, len(tokens))
	for _, t := range tokens {
		models = append(models, tokenFromDomain(t))
	}
	if err := s.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("%w: create tokens: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *AttendanceStore) DeleteToken(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&AttendanceToken{})
	if result.Error != nil {
		return fmt.Errorf("%w: delete token: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *AttendanceStore) DeleteTokensByCharacter(ctx context.Context, characterID string) (int, error) {
	result := s.db.WithContext(ctx).Where("character_id = ?", characterID).Delete(&AttendanceToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: delete tokens by character: %v", domain.ErrPersistence, result.Error)
	}
	return int(result.RowsAffected), nil
}

func (s *AttendanceStore) ListTokens(ctx context.Context) ([]domain.AttendanceToken, error) {
	return s.list(s.db.WithContext(ctx).Order("session_date DESC"))
}

func (s *AttendanceStore) ListTokensByCharacter(ctx context.Context, characterID string) ([]domain.AttendanceToken, error) {
	return s.list(s.db.WithContext(ctx).Where("character_id = ?", characterID).Order("session_date DESC"))
}

func (s *AttendanceStore) ListTokensBySession(ctx context.Context, sessionName string) ([]domain.AttendanceToken, error) {
	return s.list(s.db.WithContext(ctx).Where("session_name = ?", sessionName).Order("session_date DESC"))
}

func (s *AttendanceStore) RecentTokens(ctx context.Context, limit int) ([]domain.AttendanceToken, error) {
	return s.list(s.db.WithContext(ctx).Order("awarded_at DESC").Limit(limit))
}

func (s *AttendanceStore) CountTokensByCharacter(ctx context.Context, characterID string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&AttendanceToken{}).
		Where("character_id = ?", characterID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count tokens: %v", domain.ErrPersistence, err)
	}
	return int(count), nil
}

func (s *AttendanceStore) SessionNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&AttendanceToken{}).
		Distinct("session_name").Order("session_name").Pluck("session_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list session names: %v", domain.ErrPersistence, err)
	}
	return names, nil
}

func (s *AttendanceStore) SessionsAttended(ctx context.Context, characterID string) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&AttendanceToken{}).
		Where("character_id = ?", characterID).
		Distinct("session_name").Order("session_name").Pluck("session_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list sessions attended: %v", domain.ErrPersistence, err)
	}
	return names, nil
}

func (s *AttendanceStore) list(tx *gorm.DB) ([]domain.AttendanceToken, error) {
	var models []AttendanceToken
	if err := tx.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: list tokens: %v", domain.ErrPersistence, err)
	}
	var out []domain.AttendanceToken
	for _, m := range models {
		out = append(out, tokenToDomain(m))
	}
	return out, nil
}
