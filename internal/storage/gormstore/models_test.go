package gormstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventure-league/tracker/internal/domain"
)

func TestCharacterConversionRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	ch := domain.Character{
		ID:       "char-rt",
		PlayerID: "user-1",
		Name:     "Eldrin the Wise",
		Classes: []domain.ClassLevel{
			{Class: "Wizard", Level: 3},
			{Class: "Cleric", Level: 2},
		},
		Race:       "High Elf",
		Background: "Sage",
		Source:     domain.DNDBeyondSource("https://www.dndbeyond.com/characters/12345"),
		Gold:       180,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	record, err := characterFromDomain(ch)
	require.NoError(t, err)
	assert.Equal(t, "dndbeyond", record.SourceKind)
	assert.JSONEq(t, `[{"class":"Wizard","level":3},{"class":"Cleric","level":2}]`, string(record.Classes))

	back, err := characterToDomain(record)
	require.NoError(t, err)
	assert.Equal(t, ch, back)
}

func TestCharacterToDomainRejectsBadClasses(t *testing.T) {
	record := Character{ID: "char-bad", Classes: []byte("not json")}
	_, err := characterToDomain(record)
	assert.Error(t, err)
}

func TestVoucherConversionPreservesUsedState(t *testing.T) {
	now := time.Now().UTC()
	used := now.Add(time.Hour)
	v := domain.LootVoucher{
		ID:          "loot-rt",
		CharacterID: "char-1",
		Name:        "Flametongue Sword",
		Rarity:      domain.RarityVeryRare,
		Used:        true,
		AwardedBy:   "user-dm-1",
		AwardedAt:   now,
		UsedAt:      &used,
	}

	record := voucherFromDomain(v)
	assert.True(t, record.IsUsed)
	assert.Equal(t, "very_rare", record.Rarity)

	back := voucherToDomain(record)
	assert.Equal(t, v, back)
}

func TestUserAndTokenConversion(t *testing.T) {
	now := time.Now().UTC()

	u := domain.User{ID: "u1", Email: "dm@al.local", PasswordHash: "hash", Role: domain.RoleGameMaster, Name: "Dungeon Master", CreatedAt: now, Active: true}
	assert.Equal(t, u, userToDomain(userFromDomain(u)))

	tok := domain.AttendanceToken{ID: "t1", CharacterID: "char-1", SessionName: "Session Zero", SessionDate: now, AwardedBy: "u1", AwardedAt: now}
	assert.Equal(t, tok, tokenToDomain(tokenFromDomain(tok)))
}
