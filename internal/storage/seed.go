package storage

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/adventure-league/tracker/internal/domain"
)

// FixtureSet is the deterministic seed data loaded into an empty backend.
type FixtureSet struct {
	Users      []domain.User
	Characters []domain.Character
	Vouchers   []domain.LootVoucher
	Tokens     []domain.AttendanceToken
}

// FixtureCredentials documents the seeded logins for local development.
var FixtureCredentials = map[string]string{
	"admin@al.local":   "admin123",
	"dm@al.local":      "dm123",
	"player1@al.local": "player123",
	"player2@al.local": "player123",
	"player3@al.local": "player123",
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// Fixtures builds the seed records: five users, six characters across three
// players, a spread of vouchers, and per-character attendance.
func Fixtures() FixtureSet {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)

	users := []domain.User{
		{ID: "user-admin-1", Email: "admin@al.local", PasswordHash: mustHash("admin123"), Role: domain.RoleAdministrator, Name: "Admin User", CreatedAt: now, Active: true},
		{ID: "user-dm-1", Email: "dm@al.local", PasswordHash: mustHash("dm123"), Role: domain.RoleGameMaster, Name: "Dungeon Master", CreatedAt: now, Active: true},
		{ID: "user-player-1", Email: "player1@al.local", PasswordHash: mustHash("player123"), Role: domain.RolePlayer, Name: "Alice Player", CreatedAt: now, Active: true},
		{ID: "user-player-2", Email: "player2@al.local", PasswordHash: mustHash("player123"), Role: domain.RolePlayer, Name: "Bob Player", CreatedAt: now, Active: true},
		{ID: "user-player-3", Email: "player3@al.local", PasswordHash: mustHash("player123"), Role: domain.RolePlayer, Name: "Charlie Player", CreatedAt: now, Active: true},
	}

	characters := []domain.Character{
		{
			ID: "char-1", PlayerID: "user-player-1", Name: "Thorin Ironshield",
			Classes: []domain.ClassLevel{{Class: "Fighter", Level: 5}},
			Race:    "Dwarf", Background: "Soldier", Source: domain.ManualSource(),
			Gold: 250, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "char-2", PlayerID: "user-player-1", Name: "Eldrin the Wise",
			Classes: []domain.ClassLevel{{Class: "Wizard", Level: 3}, {Class: "Cleric", Level: 2}},
			Race:    "High Elf", Background: "Sage",
			Source: domain.DNDBeyondSource("https://www.dndbeyond.com/characters/12345"),
			Gold:   180, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "char-3", PlayerID: "user-player-2", Name: "Shadow Whisper",
			Classes: []domain.ClassLevel{{Class: "Rogue", Level: 8}},
			Race:    "Halfling", Background: "Criminal", Source: domain.ManualSource(),
			Gold: 450, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "char-4", PlayerID: "user-player-2", Name: "Sir Galahad",
			Classes: []domain.ClassLevel{{Class: "Paladin", Level: 4}},
			Race:    "Human", Background: "Noble",
			Source: domain.PDFSource("/sheets/sir-galahad.pdf"),
			Gold:   320, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "char-5", PlayerID: "user-player-3", Name: "Melody Songweaver",
			Classes: []domain.ClassLevel{{Class: "Bard", Level: 6}, {Class: "Warlock", Level: 1}},
			Race:    "Tiefling", Background: "Entertainer",
			Source: domain.DNDBeyondSource("https://www.dndbeyond.com/characters/67890"),
			Gold:   275, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "char-6", PlayerID: "user-player-3", Name: "Gruk Stonefist",
			Classes: []domain.ClassLevel{{Class: "Barbarian", Level: 3}},
			Race:    "Half-Orc", Background: "Outlander", Source: domain.ManualSource(),
			Gold: 95, CreatedAt: now, UpdatedAt: now,
		},
	}

	vouchers := []domain.LootVoucher{
		{ID: "loot-1", CharacterID: "char-1", Name: "Bag of Holding", Description: "A magical bag that can hold far more than its size suggests", Rarity: domain.RarityUncommon, AwardedBy: "user-dm-1", AwardedAt: lastWeek},
		{ID: "loot-2", CharacterID: "char-1", Name: "Potion of Greater Healing", Description: "Restores 4d4+4 hit points when consumed", Rarity: domain.RarityCommon, Used: true, AwardedBy: "user-dm-1", AwardedAt: lastWeek, UsedAt: &yesterday},
		{ID: "loot-3", CharacterID: "char-1", Name: "Flame Tongue Longsword", Description: "A magical sword that bursts into flames when activated", Rarity: domain.RarityRare, AwardedBy: "user-dm-1", AwardedAt: yesterday},
		{ID: "loot-4", CharacterID: "char-2", Name: "Wand of Magic Missiles", Description: "Can cast Magic Missile spell with charges", Rarity: domain.RarityUncommon, AwardedBy: "user-dm-1", AwardedAt: lastWeek},
		{ID: "loot-5", CharacterID: "char-2", Name: "Scroll of Fireball", Description: "One-time use spell scroll", Rarity: domain.RarityCommon, Used: true, AwardedBy: "user-dm-1", AwardedAt: lastWeek, UsedAt: &yesterday},
		{ID: "loot-6", CharacterID: "char-3", Name: "Cloak of Elvenkind", Description: "Grants advantage on Stealth checks", Rarity: domain.RarityUncommon, AwardedBy: "user-dm-1", AwardedAt: lastWeek},
		{ID: "loot-7", CharacterID: "char-3", Name: "Dagger +1", Description: "A finely crafted magical dagger", Rarity: domain.RarityUncommon, AwardedBy: "user-dm-1", AwardedAt: yesterday},
		{ID: "loot-8", CharacterID: "char-3", Name: "Ring of Invisibility", Description: "Allows the wearer to become invisible", Rarity: domain.RarityLegendary, AwardedBy: "user-dm-1", AwardedAt: now},
		{ID: "loot-9", CharacterID: "char-4", Name: "Plate Armor +1", Description: "Enchanted full plate armor", Rarity: domain.RarityRare, AwardedBy: "user-dm-1", AwardedAt: lastWeek},
		{ID: "loot-10", CharacterID: "char-4", Name: "Holy Avenger", Description: "A legendary paladin weapon", Rarity: domain.RarityLegendary, AwardedBy: "user-dm-1", AwardedAt: yesterday},
		{ID: "loot-11", CharacterID: "char-5", Name: "Instrument of the Bards (Doss Lute)", Description: "A magical musical instrument", Rarity: domain.RarityRare, AwardedBy: "user-dm-1", AwardedAt: lastWeek},
		{ID: "loot-12", CharacterID: "char-5", Name: "Cloak of Protection", Description: "+1 to AC and saving throws", Rarity: domain.RarityUncommon, AwardedBy: "user-dm-1", AwardedAt: yesterday},
		{ID: "loot-13", CharacterID: "char-6", Name: "Greataxe of Warning", Description: "Grants advantage on initiative and prevents surprise", Rarity: domain.RarityUncommon, AwardedBy: "user-dm-1", AwardedAt: now},
	}

	sessions := []string{
		"Dragon of Icespire Peak - Session 1",
		"Dragon of Icespire Peak - Session 2",
		"Dragon of Icespire Peak - Session 3",
		"Waterdeep: Dragon Heist - Session 1",
		"Waterdeep: Dragon Heist - Session 2",
	}
	dates := []time.Time{
		now.AddDate(0, 0, -21),
		now.AddDate(0, 0, -14),
		now.AddDate(0, 0, -7),
		now.AddDate(0, 0, -3),
		now,
	}

	// Each character attended the first few sessions; counts vary so the
	// attendance queries have something uneven to chew on.
	attended := map[string]int{
		"char-1": 5, "char-2": 4, "char-3": 5,
		"char-4": 3, "char-5": 4, "char-6": 3,
	}

	var tokens []domain.AttendanceToken
	for _, ch := range characters {
		for i := 0; i < attended[ch.ID]; i++ {
			tokens = append(tokens, domain.AttendanceToken{
				ID:          fmt.Sprintf("attendance-%s-%d", ch.ID, i+1),
				CharacterID: ch.ID,
				SessionName: sessions[i],
				SessionDate: dates[i],
				AwardedBy:   "user-dm-1",
				AwardedAt:   dates[i],
			})
		}
	}

	return FixtureSet{Users: users, Characters: characters, Vouchers: vouchers, Tokens: tokens}
}
