package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{name: "player meets player", role: RolePlayer, required: RolePlayer, want: true},
		{name: "player below game master", role: RolePlayer, required: RoleGameMaster, want: false},
		{name: "player below administrator", role: RolePlayer, required: RoleAdministrator, want: false},
		{name: "game master meets player", role: RoleGameMaster, required: RolePlayer, want: true},
		{name: "game master meets game master", role: RoleGameMaster, required: RoleGameMaster, want: true},
		{name: "game master below administrator", role: RoleGameMaster, required: RoleAdministrator, want: false},
		{name: "administrator meets everything", role: RoleAdministrator, required: RoleAdministrator, want: true},
		{name: "administrator meets player", role: RoleAdministrator, required: RolePlayer, want: true},
		{name: "unknown role meets nothing", role: Role("owner"), required: RolePlayer, want: false},
		{name: "empty role meets nothing", role: Role(""), required: RolePlayer, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

func TestRoleRankOrdering(t *testing.T) {
	assert.Less(t, RolePlayer.Rank(), RoleGameMaster.Rank())
	assert.Less(t, RoleGameMaster.Rank(), RoleAdministrator.Rank())
	assert.Equal(t, 0, Role("intruder").Rank())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("game-master")
	require.True(t, ok)
	assert.Equal(t, RoleGameMaster, role)

	_, ok = ParseRole("dungeon-master")
	assert.False(t, ok)
}

func TestRarityRankOrdering(t *testing.T) {
	ordered := []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityLegendary}

	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank())
	}

	assert.False(t, Rarity("artifact").Valid())
	assert.True(t, RarityVeryRare.Valid())
}

func TestSourceValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantErr bool
	}{
		{name: "manual without link", source: ManualSource()},
		{name: "dndbeyond with link", source: DNDBeyondSource("https://www.dndbeyond.com/characters/1")},
		{name: "pdf with link", source: PDFSource("https://files.example.com/sheet.pdf")},
		{name: "manual with link", source: Source{Kind: SourceManual, URL: "https://example.com"}, wantErr: true},
		{name: "unknown kind", source: Source{Kind: "homebrew"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCharacterTotalLevel(t *testing.T) {
	c := Character{Classes: []ClassLevel{{Class: "Wizard", Level: 3}, {Class: "Cleric", Level: 2}}}
	assert.Equal(t, 5, c.TotalLevel())

	assert.Equal(t, 0, Character{}.TotalLevel())
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{Fields: map[string]string{
		"name": "character name is required",
		"gold": "gold cannot be negative",
	}}

	assert.Equal(t, "validation failed: gold: gold cannot be negative; name: character name is required", verr.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}
