// Package storage defines the store contracts shared by the local (key-value)
// and hosted (relational) backends. Business rules live above these
// interfaces so the two backends stay thin query mappings.
package storage

import (
	"context"

	"github.com/adventure-league/tracker/internal/domain"
)

// VoucherCounts aggregates a character's vouchers by used state.
type VoucherCounts struct {
	Total  int `json:"total"`
	Unused int `json:"unused"`
	Used   int `json:"used"`
}

type UserStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	// GetUserByEmail matches active and inactive users alike; callers
	// decide whether an inactive match counts.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	// ListUsers returns active users ordered by name.
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type CharacterStore interface {
	CreateCharacter(ctx context.Context, ch domain.Character) error
	UpdateCharacter(ctx context.Context, ch domain.Character) error
	DeleteCharacter(ctx context.Context, id string) error
	GetCharacter(ctx context.Context, id string) (domain.Character, error)
	// ListCharacters returns every character ordered by name.
	ListCharacters(ctx context.Context) ([]domain.Character, error)
	ListCharactersByPlayer(ctx context.Context, playerID string) ([]domain.Character, error)
	// SearchCharacters matches the query case-insensitively against name,
	// race, and class names.
	SearchCharacters(ctx context.Context, query string) ([]domain.Character, error)
}

type LootVoucherStore interface {
	CreateVoucher(ctx context.Context, v domain.LootVoucher) error
	UpdateVoucher(ctx context.Context, v domain.LootVoucher) error
	DeleteVoucher(ctx context.Context, id string) error
	// DeleteVouchersByCharacter removes every voucher owned by the
	// character and reports how many were removed.
	DeleteVouchersByCharacter(ctx context.Context, characterID string) (int, error)
	GetVoucher(ctx context.Context, id string) (domain.LootVoucher, error)
	// List queries return vouchers ordered by award time, newest first.
	ListVouchers(ctx context.Context) ([]domain.LootVoucher, error)
	ListVouchersByCharacter(ctx context.Context, characterID string) ([]domain.LootVoucher, error)
	ListVouchersByCharacterUsed(ctx context.Context, characterID string, used bool) ([]domain.LootVoucher, error)
	ListVouchersByRarity(ctx context.Context, characterID string, rarity domain.Rarity) ([]domain.LootVoucher, error)
	RecentVouchers(ctx context.Context, limit int) ([]domain.LootVoucher, error)
	CountVouchers(ctx context.Context, characterID string) (VoucherCounts, error)
}

type AttendanceStore interface {
	CreateToken(ctx context.Context, t domain.AttendanceToken) error
	// CreateTokens appends the whole batch atomically: a single durable
	// write, never one per token.
	CreateTokens(ctx context.Context, tokens []domain.AttendanceToken) error
	DeleteToken(ctx context.Context, id string) error
	DeleteTokensByCharacter(ctx context.Context, characterID string) (int, error)
	// ListTokens and ListTokensByCharacter order by session date, newest
	// first; RecentTokens orders by award time.
	ListTokens(ctx context.Context) ([]domain.AttendanceToken, error)
	ListTokensByCharacter(ctx context.Context, characterID string) ([]domain.AttendanceToken, error)
	ListTokensBySession(ctx context.Context, sessionName string) ([]domain.AttendanceToken, error)
	RecentTokens(ctx context.Context, limit int) ([]domain.AttendanceToken, error)
	CountTokensByCharacter(ctx context.Context, characterID string) (int, error)
	// SessionNames returns the distinct session names in alphabetical
	// order.
	SessionNames(ctx context.Context) ([]string, error)
	SessionsAttended(ctx context.Context, characterID string) ([]string, error)
}

// Stores bundles the four stores a backend provides.
type Stores struct {
	Users      UserStore
	Characters CharacterStore
	Vouchers   LootVoucherStore
	Attendance AttendanceStore
}
