package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/adventure-league/tracker/internal/domain"
)

type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) CreateUser(ctx context.Context, user domain.User) error {
	model := userFromDomain(user)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("%w: create user: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *UserStore) UpdateUser(ctx context.Context, user domain.User) error {
	model := userFromDomain(user)
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", user.ID).
		Select("Email", "PasswordHash", "Role", "Name", "Active").Updates(model)
	if result.Error != nil {
		return fmt.Errorf("%w: update user: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, id string) (domain.User, error) {
	var model User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return domain.User{}, translate(err, "get user")
	}
	return userToDomain(model), nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var model User
	err := s.db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&model).Error
	if err != nil {
		return domain.User{}, translate(err, "get user by email")
	}
	return userToDomain(model), nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	var models []User
	err := s.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", domain.ErrPersistence, err)
	}
	return usersToDomain(models), nil
}

func (s *UserStore) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var models []User
	err := s.db.WithContext(ctx).
		Where("active = ? AND role = ?", true, string(role)).Order("name").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list users by role: %v", domain.ErrPersistence, err)
	}
	return usersToDomain(models), nil
}

func usersToDomain(models []User) []domain.User {
	var out []domain.User
	for _, m := range models {
		out = append(out, userToDomain(m))
	}
	return out
}

// translate maps a gorm read error onto the domain error kinds.
func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}
