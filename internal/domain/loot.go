package domain

import "time"

// Rarity is the ordered value tier of a loot voucher.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very_rare"
	RarityLegendary Rarity = "legendary"
)

// Rank orders rarities from common (1) to legendary (5). Unknown rarities
// rank 0.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityVeryRare:
		return 4
	case RarityLegendary:
		return 5
	default:
		return 0
	}
}

func (r Rarity) Valid() bool {
	return r.Rank() > 0
}

// LootVoucher is a reward owned by a character. UsedAt is set exactly when
// Used is true.
type LootVoucher struct {
	ID          string     `json:"id"`
	CharacterID string     `json:"character_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Rarity      Rarity     `json:"rarity"`
	Used        bool       `json:"is_used"`
	AwardedBy   string     `json:"awarded_by"`
	AwardedAt   time.Time  `json:"awarded_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

// VoucherForm carries the fields of an award request.
type VoucherForm struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
}
