package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adventure-league/tracker/internal/domain"
)

type CharacterStore struct {
	db *gorm.DB
}

func (s *CharacterStore) CreateCharacter(ctx context.Context, ch domain.Character) error {
	model, err := characterFromDomain(ch)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("%w: create character: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *CharacterStore) UpdateCharacter(ctx context.Context, ch domain.Character) error {
	model, err := characterFromDomain(ch)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&Character{}).Where("id = ?", ch.ID).
		Select("Name", "Classes", "Race", "Background", "SourceKind", "SourceURL", "Gold", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("%w: update character: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *CharacterStore) DeleteCharacter(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Character{})
	if result.Error != nil {
		return fmt.Errorf("%w: delete character: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *CharacterStore) GetCharacter(ctx context.Context, id string) (domain.Character, error) {
	var model Character
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return domain.Character{}, translate(err, "get character")
	}
	return characterToDomain(model)
}

func (s *CharacterStore) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	var models []Character
	if err := s.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: list characters: %v", domain.ErrPersistence, err)
	}
	return charactersToDomain(models)
}

func (s *CharacterStore) ListCharactersByPlayer(ctx context.Context, playerID string) ([]domain.Character, error) {
	var models []Character
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).Order("name").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list characters by player: %v", domain.ErrPersistence, err)
	}
	return charactersToDomain(models)
}

func (s *CharacterStore) SearchCharacters(ctx context.Context, query string) ([]domain.Character, error) {
	pattern := "%" + query + "%"

	// classes is jsonb; casting to text lets a class name match the same
	// substring search the other fields get.
	var models []Character
	err := s.db.WithContext(ctx).
		Where("name ILIKE @q OR race ILIKE @q OR classes::text ILIKE @q", map[string]interface{}{"q": pattern}).
		Order("name").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: search characters: %v", domain.ErrPersistence, err)
	}
	return charactersToDomain(models)
}

func charactersToDomain(models []Character) ([]domain.Character, error) {
	var out []domain.Character
	for _, m := range models {
		ch, err := characterToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}
