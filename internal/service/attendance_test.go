package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventure-league/tracker/internal/domain"
)

func TestAwardToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	form := domain.AttendanceForm{
		CharacterID: "char-1",
		SessionName: "The Sunless Citadel",
		SessionDate: time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC),
	}

	t.Run("player cannot award", func(t *testing.T) {
		_, err := f.tracker.AwardToken(ctx, f.alice, form)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("game master awards", func(t *testing.T) {
		token, err := f.tracker.AwardToken(ctx, f.dm, form)
		require.NoError(t, err)
		assert.Equal(t, f.dm.ID, token.AwardedBy)
		assert.Equal(t, "The Sunless Citadel", token.SessionName)
	})

	t.Run("missing session name", func(t *testing.T) {
		bad := form
		bad.SessionName = ""
		_, err := f.tracker.AwardToken(ctx, f.dm, bad)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "session_name")
	})

	t.Run("missing session date", func(t *testing.T) {
		bad := form
		bad.SessionDate = time.Time{}
		_, err := f.tracker.AwardToken(ctx, f.dm, bad)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "session_date")
	})

	t.Run("unknown character", func(t *testing.T) {
		bad := form
		bad.CharacterID = "char-nobody"
		_, err := f.tracker.AwardToken(ctx, f.dm, bad)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAwardTokensBulk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	date := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)

	t.Run("one token per character, shared timestamp", func(t *testing.T) {
		tokens, err := f.tracker.AwardTokensBulk(ctx, f.dm, []string{"char-1", "char-2", "char-3"}, "Tomb of Annihilation", date)
		require.NoError(t, err)
		require.Len(t, tokens, 3)

		for _, tok := range tokens {
			assert.Equal(t, tokens[0].AwardedAt, tok.AwardedAt)
			assert.Equal(t, "Tomb of Annihilation", tok.SessionName)
			assert.Equal(t, f.dm.ID, tok.AwardedBy)
		}
	})

	t.Run("whole batch is announced once", func(t *testing.T) {
		f.notifier.mu.Lock()
		defer f.notifier.mu.Unlock()
		require.Len(t, f.notifier.batches, 1)
		assert.Len(t, f.notifier.batches[0], 3)
	})

	t.Run("empty character list", func(t *testing.T) {
		_, err := f.tracker.AwardTokensBulk(ctx, f.dm, nil, "Tomb of Annihilation", date)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "character_ids")
	})

	t.Run("one unknown character fails the whole batch", func(t *testing.T) {
		before, err := f.tracker.AllTokens(ctx, f.dm)
		require.NoError(t, err)

		_, err = f.tracker.AwardTokensBulk(ctx, f.dm, []string{"char-1", "char-nobody"}, "Doomed Session", date)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		after, err := f.tracker.AllTokens(ctx, f.dm)
		require.NoError(t, err)
		assert.Equal(t, len(before), len(after))
	})

	t.Run("player cannot bulk award", func(t *testing.T) {
		_, err := f.tracker.AwardTokensBulk(ctx, f.alice, []string{"char-1"}, "Tomb of Annihilation", date)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDeleteToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tokens, err := f.tracker.CharacterTokens(ctx, f.alice, "char-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	id := tokens[0].ID
	assert.ErrorIs(t, f.tracker.DeleteToken(ctx, f.dm, id), domain.ErrForbidden)
	require.NoError(t, f.tracker.DeleteToken(ctx, f.admin, id))
	assert.ErrorIs(t, f.tracker.DeleteToken(ctx, f.admin, id), domain.ErrNotFound)
}

func TestAttendanceQueriesService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("count and sessions respect visibility", func(t *testing.T) {
		count, err := f.tracker.AttendanceCount(ctx, f.alice, "char-1")
		require.NoError(t, err)
		assert.Equal(t, 5, count)

		sessions, err := f.tracker.SessionsAttended(ctx, f.alice, "char-1")
		require.NoError(t, err)
		assert.NotEmpty(t, sessions)

		_, err = f.tracker.AttendanceCount(ctx, f.bob, "char-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("session roster is gated", func(t *testing.T) {
		sessions, err := f.tracker.SessionNames(ctx, f.dm)
		require.NoError(t, err)
		require.NotEmpty(t, sessions)

		roster, err := f.tracker.TokensBySession(ctx, f.dm, sessions[0])
		require.NoError(t, err)
		assert.NotEmpty(t, roster)

		_, err = f.tracker.SessionNames(ctx, f.alice)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("recent tokens capped at ten", func(t *testing.T) {
		recent, err := f.tracker.RecentTokens(ctx, f.dm)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(recent), 10)
	})
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("player sees own characters only", func(t *testing.T) {
		dash, err := f.tracker.Dashboard(ctx, f.alice)
		require.NoError(t, err)
		assert.Len(t, dash.Characters, 2)
		assert.Empty(t, dash.RecentVouchers)
		assert.Empty(t, dash.RecentTokens)

		for _, summary := range dash.Characters {
			assert.Equal(t, f.alice.ID, summary.Character.PlayerID)
			assert.Equal(t, summary.Character.TotalLevel(), summary.TotalLevel)
		}
	})

	t.Run("game master sees the whole table", func(t *testing.T) {
		dash, err := f.tracker.Dashboard(ctx, f.dm)
		require.NoError(t, err)
		assert.Len(t, dash.Characters, 6)
		assert.NotEmpty(t, dash.RecentVouchers)
		assert.NotEmpty(t, dash.RecentTokens)
		assert.NotEmpty(t, dash.Sessions)
	})

	t.Run("requires an actor", func(t *testing.T) {
		_, err := f.tracker.Dashboard(ctx, domain.User{})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestCharacterLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	form := domain.CharacterForm{
		Name:       "Seraphina Dawnbringer",
		Classes:    []domain.ClassLevel{{Class: "Wizard", Level: 3}, {Class: "Cleric", Level: 2}},
		Race:       "Aasimar",
		Background: "Acolyte",
		Source:     domain.ManualSource(),
	}

	ch, err := f.tracker.CreateCharacter(ctx, f.alice, form)
	require.NoError(t, err)
	assert.Equal(t, 5, ch.TotalLevel())

	voucher, err := f.tracker.AwardVoucher(ctx, f.dm, domain.VoucherForm{
		CharacterID: ch.ID,
		Name:        "Wand of the War Mage",
		Rarity:      domain.RarityRare,
	})
	require.NoError(t, err)

	unused, err := f.tracker.UnusedVouchers(ctx, f.alice, ch.ID)
	require.NoError(t, err)
	require.Len(t, unused, 1)

	_, err = f.tracker.UseVoucher(ctx, f.alice, voucher.ID)
	require.NoError(t, err)

	used, err := f.tracker.UsedVouchers(ctx, f.alice, ch.ID)
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.Equal(t, voucher.ID, used[0].ID)
}
