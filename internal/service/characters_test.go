package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventure-league/tracker/internal/domain"
)

func validCharacterForm() domain.CharacterForm {
	return domain.CharacterForm{
		Name:       "Aranel Swiftwind",
		Classes:    []domain.ClassLevel{{Class: "Ranger", Level: 6}},
		Race:       "Wood Elf",
		Background: "Outlander",
		Source:     domain.ManualSource(),
		Gold:       75,
	}
}

func TestCreateCharacter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("bound to the acting player", func(t *testing.T) {
		ch, err := f.tracker.CreateCharacter(ctx, f.alice, validCharacterForm())
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, ch.PlayerID)
		assert.NotEmpty(t, ch.ID)
		assert.Equal(t, 6, ch.TotalLevel())
	})

	t.Run("requires an actor", func(t *testing.T) {
		_, err := f.tracker.CreateCharacter(ctx, domain.User{}, validCharacterForm())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("invalid form", func(t *testing.T) {
		form := validCharacterForm()
		form.Classes = []domain.ClassLevel{{Class: "Ranger", Level: 21}}

		_, err := f.tracker.CreateCharacter(ctx, f.alice, form)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "classes")
	})
}

func TestCharacterVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("owner sees own character", func(t *testing.T) {
		ch, err := f.tracker.GetCharacter(ctx, f.alice, "char-1")
		require.NoError(t, err)
		assert.Equal(t, "Thorin Ironshield", ch.Name)
	})

	t.Run("another player gets not found, not forbidden", func(t *testing.T) {
		_, err := f.tracker.GetCharacter(ctx, f.bob, "char-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("game master sees everything", func(t *testing.T) {
		_, err := f.tracker.GetCharacter(ctx, f.dm, "char-1")
		assert.NoError(t, err)
	})

	t.Run("my characters", func(t *testing.T) {
		characters, err := f.tracker.MyCharacters(ctx, f.alice)
		require.NoError(t, err)
		assert.Len(t, characters, 2)
	})

	t.Run("all characters is gated", func(t *testing.T) {
		_, err := f.tracker.AllCharacters(ctx, f.alice)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		characters, err := f.tracker.AllCharacters(ctx, f.dm)
		require.NoError(t, err)
		assert.Len(t, characters, 6)
	})
}

func TestSearchCharacters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("game master searches the whole table", func(t *testing.T) {
		results, err := f.tracker.SearchCharacters(ctx, f.dm, "fighter")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "char-1", results[0].ID)
	})

	t.Run("player search is scoped to own characters", func(t *testing.T) {
		// Shadow Whisper is a rogue owned by Bob; Alice must not see it.
		results, err := f.tracker.SearchCharacters(ctx, f.alice, "rogue")
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = f.tracker.SearchCharacters(ctx, f.bob, "rogue")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "char-3", results[0].ID)
	})
}

func TestUpdateCharacter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("owner updates, identity fields preserved", func(t *testing.T) {
		before, err := f.tracker.GetCharacter(ctx, f.alice, "char-1")
		require.NoError(t, err)

		form := validCharacterForm()
		form.Name = "Thorin the Renamed"
		ch, err := f.tracker.UpdateCharacter(ctx, f.alice, "char-1", form)
		require.NoError(t, err)
		assert.Equal(t, "Thorin the Renamed", ch.Name)
		assert.Equal(t, before.PlayerID, ch.PlayerID)
		assert.Equal(t, before.CreatedAt, ch.CreatedAt)
	})

	t.Run("other player cannot update", func(t *testing.T) {
		_, err := f.tracker.UpdateCharacter(ctx, f.bob, "char-1", validCharacterForm())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteCharacterCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	vouchers, err := f.tracker.CharacterVouchers(ctx, f.alice, "char-1")
	require.NoError(t, err)
	require.NotEmpty(t, vouchers)

	tokens, err := f.tracker.CharacterTokens(ctx, f.alice, "char-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	require.NoError(t, f.tracker.DeleteCharacter(ctx, f.alice, "char-1"))

	_, err = f.tracker.GetCharacter(ctx, f.alice, "char-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The vouchers and tokens are gone with the character.
	remaining, err := f.tracker.AllVouchers(ctx, f.dm)
	require.NoError(t, err)
	for _, v := range remaining {
		assert.NotEqual(t, "char-1", v.CharacterID)
	}

	allTokens, err := f.tracker.AllTokens(ctx, f.dm)
	require.NoError(t, err)
	for _, tok := range allTokens {
		assert.NotEqual(t, "char-1", tok.CharacterID)
	}
}

func TestDeleteCharacterAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("game master cannot delete someone else's character", func(t *testing.T) {
		err := f.tracker.DeleteCharacter(ctx, f.dm, "char-1")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("administrator can", func(t *testing.T) {
		assert.NoError(t, f.tracker.DeleteCharacter(ctx, f.admin, "char-1"))
	})
}

func TestGold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// char-1 starts with 250 gold.
	t.Run("add", func(t *testing.T) {
		ch, err := f.tracker.AddGold(ctx, f.alice, "char-1", 50)
		require.NoError(t, err)
		assert.Equal(t, 300, ch.Gold)
	})

	t.Run("subtract within balance", func(t *testing.T) {
		ch, err := f.tracker.SubtractGold(ctx, f.alice, "char-1", 300)
		require.NoError(t, err)
		assert.Equal(t, 0, ch.Gold)
	})

	t.Run("overspend fails and leaves balance unchanged", func(t *testing.T) {
		_, err := f.tracker.SubtractGold(ctx, f.alice, "char-1", 1)
		assert.ErrorIs(t, err, domain.ErrConstraint)

		ch, err := f.tracker.GetCharacter(ctx, f.alice, "char-1")
		require.NoError(t, err)
		assert.Equal(t, 0, ch.Gold)
	})

	t.Run("negative amounts rejected", func(t *testing.T) {
		_, err := f.tracker.AddGold(ctx, f.alice, "char-1", -5)
		assert.ErrorIs(t, err, domain.ErrConstraint)

		_, err = f.tracker.SubtractGold(ctx, f.alice, "char-1", -5)
		assert.ErrorIs(t, err, domain.ErrConstraint)
	})

	t.Run("set replaces the balance", func(t *testing.T) {
		ch, err := f.tracker.SetGold(ctx, f.alice, "char-1", 500)
		require.NoError(t, err)
		assert.Equal(t, 500, ch.Gold)

		_, err = f.tracker.SetGold(ctx, f.alice, "char-1", -1)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
