// Package gormstore implements the stores against a relational database.
// Each store operation maps to one statement against its table; the business
// rules stay in the service layer.
package gormstore

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/adventure-league/tracker/internal/domain"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:'player'"`
	Name         string `gorm:"not null"`
	CreatedAt    time.Time
	Active       bool `gorm:"not null;default:true"`

	// Relationships
	Characters []Character `gorm:"foreignKey:PlayerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type Character struct {
	ID         string         `gorm:"primaryKey"`
	PlayerID   string         `gorm:"not null;index"`
	Name       string         `gorm:"not null"`
	Classes    datatypes.JSON `gorm:"type:jsonb;not null"`
	Race       string         `gorm:"not null"`
	Background string         `gorm:"not null"`
	SourceKind string         `gorm:"not null;default:'manual'"`
	SourceURL  string
	Gold       int `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships
	Vouchers []LootVoucher     `gorm:"foreignKey:CharacterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tokens   []AttendanceToken `gorm:"foreignKey:CharacterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type LootVoucher struct {
	ID          string `gorm:"primaryKey"`
	CharacterID string `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	Rarity      string `gorm:"not null"`
	IsUsed      bool   `gorm:"not null;default:false"`
	AwardedBy   string `gorm:"not null"`
	AwardedAt   time.Time
	UsedAt      *time.Time
}

type AttendanceToken struct {
	ID          string    `gorm:"primaryKey"`
	CharacterID string    `gorm:"not null;index"`
	SessionName string    `gorm:"not null"`
	SessionDate time.Time `gorm:"not null"`
	AwardedBy   string    `gorm:"not null"`
	AwardedAt   time.Time
}

func userToDomain(u User) domain.User {
	return domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         domain.Role(u.Role),
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		Active:       u.Active,
	}
}

func userFromDomain(u domain.User) User {
	return User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		Active:       u.Active,
	}
}

func characterToDomain(c Character) (domain.Character, error) {
	var classes []domain.ClassLevel
	if len(c.Classes) > 0 {
		if err := json.Unmarshal(c.Classes, &classes); err != nil {
			return domain.Character{}, fmt.Errorf("decode classes for character %s: %w", c.ID, err)
		}
	}
	return domain.Character{
		ID:         c.ID,
		PlayerID:   c.PlayerID,
		Name:       c.Name,
		Classes:    classes,
		Race:       c.Race,
		Background: c.Background,
		Source:     domain.Source{Kind: domain.SourceKind(c.SourceKind), URL: c.SourceURL},
		Gold:       c.Gold,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, nil
}

func characterFromDomain(c domain.Character) (Character, error) {
	classes, err := json.Marshal(c.Classes)
	if err != nil {
		return Character{}, fmt.Errorf("encode classes for character %s: %w", c.ID, err)
	}
	return Character{
		ID:         c.ID,
		PlayerID:   c.PlayerID,
		Name:       c.Name,
		Classes:    datatypes.JSON(classes),
		Race:       c.Race,
		Background: c.Background,
		SourceKind: string(c.Source.Kind),
		SourceURL:  c.Source.URL,
		Gold:       c.Gold,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, nil
}

func voucherToDomain(v LootVoucher) domain.LootVoucher {
	return domain.LootVoucher{
		ID:          v.ID,
		CharacterID: v.CharacterID,
		Name:        v.Name,
		Description: v.Description,
		Rarity:      domain.Rarity(v.Rarity),
		Used:        v.IsUsed,
		AwardedBy:   v.AwardedBy,
		AwardedAt:   v.AwardedAt,
		UsedAt:      v.UsedAt,
	}
}

func voucherFromDomain(v domain.LootVoucher) LootVoucher {
	return LootVoucher{
		ID:          v.ID,
		CharacterID: v.CharacterID,
		Name:        v.Name,
		Description: v.Description,
		Rarity:      string(v.Rarity),
		IsUsed:      v.Used,
		AwardedBy:   v.AwardedBy,
		AwardedAt:   v.AwardedAt,
		UsedAt:      v.UsedAt,
	}
}

func tokenToDomain(t AttendanceToken) domain.AttendanceToken {
	return domain.AttendanceToken{
		ID:          t.ID,
		CharacterID: t.CharacterID,
		SessionName: t.SessionName,
		SessionDate: t.SessionDate,
		AwardedBy:   t.AwardedBy,
		AwardedAt:   t.AwardedAt,
	}
}

func tokenFromDomain(t domain.AttendanceToken) AttendanceToken {
	return AttendanceToken{
		ID:          t.ID,
		CharacterID: t.CharacterID,
		SessionName: t.SessionName,
		SessionDate: t.SessionDate,
		AwardedBy:   t.AwardedBy,
		AwardedAt:   t.AwardedAt,
	}
}
