package service

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/storage/memstore"
)

// recordingNotifier captures award notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	vouchers []domain.LootVoucher
	batches  [][]domain.AttendanceToken
}

func (n *recordingNotifier) VoucherAwarded(_ context.Context, v domain.LootVoucher, _ domain.Character, _ domain.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.vouchers = append(n.vouchers, v)
}

func (n *recordingNotifier) AttendanceAwarded(_ context.Context, tokens []domain.AttendanceToken, _ string, _ domain.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, tokens)
}

type fixture struct {
	tracker  *Tracker
	notifier *recordingNotifier
	admin    domain.User
	dm       domain.User
	alice    domain.User
	bob      domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	kv, err := memstore.NewFileKV(t.TempDir())
	require.NoError(t, err)
	stores, err := memstore.Open(ctx, kv, true)
	require.NoError(t, err)

	tokens, err := auth.NewTokens("test-secret")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	tracker := New(stores, tokens, notifier)

	f := &fixture{tracker: tracker, notifier: notifier}

	for id, target := range map[string]*domain.User{
		"user-admin-1":  &f.admin,
		"user-dm-1":     &f.dm,
		"user-player-1": &f.alice,
		"user-player-2": &f.bob,
	} {
		user, err := stores.Users.GetUser(ctx, id)
		require.NoError(t, err)
		*target = user
	}

	return f
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := f.tracker.Login(ctx, "admin@al.local", "admin123")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdministrator, user.Role)
		assert.NotEmpty(t, token)
	})

	t.Run("email is case and space insensitive", func(t *testing.T) {
		user, _, err := f.tracker.Login(ctx, "  ADMIN@al.local ", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "user-admin-1", user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := f.tracker.Login(ctx, "admin@al.local", "wrong")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := f.tracker.Login(ctx, "nobody@al.local", "admin123")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		_, _, errUnknown := f.tracker.Login(ctx, "nobody@al.local", "admin123")
		_, _, errWrong := f.tracker.Login(ctx, "admin@al.local", "wrong")
		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("deactivated account", func(t *testing.T) {
		require.NoError(t, f.tracker.DeactivateUser(ctx, f.admin, "user-player-3"))
		_, _, err := f.tracker.Login(ctx, "player3@al.local", "player123")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("new registrations are players", func(t *testing.T) {
		email := gofakeit.Email()
		user, token, err := f.tracker.Register(ctx, gofakeit.Name(), email, "secret123")
		require.NoError(t, err)
		assert.Equal(t, domain.RolePlayer, user.Role)
		assert.True(t, user.Active)
		assert.NotEmpty(t, token)

		again, _, err := f.tracker.Login(ctx, email, "secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := f.tracker.Register(ctx, "Imposter", "admin@al.local", "secret123")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
	})

	t.Run("short password", func(t *testing.T) {
		_, _, err := f.tracker.Register(ctx, gofakeit.Name(), gofakeit.Email(), "123")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
	})
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.tracker.CurrentUser(ctx, "user-dm-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGameMaster, user.Role)

	_, err = f.tracker.CurrentUser(ctx, "user-nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.tracker.DeactivateUser(ctx, f.admin, "user-player-3"))
	_, err = f.tracker.CurrentUser(ctx, "user-player-3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateUserRequiresAdministrator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	form := domain.UserForm{
		Email:    gofakeit.Email(),
		Password: "secret123",
		Name:     gofakeit.Name(),
		Role:     domain.RoleGameMaster,
	}

	_, err := f.tracker.CreateUser(ctx, f.dm, form)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.tracker.CreateUser(ctx, f.alice, form)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	user, err := f.tracker.CreateUser(ctx, f.admin, form)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGameMaster, user.Role)
}

func TestUpdateUserRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("administrator promotes a player", func(t *testing.T) {
		user, err := f.tracker.UpdateUserRole(ctx, f.admin, "user-player-1", domain.RoleGameMaster)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleGameMaster, user.Role)
	})

	t.Run("game master cannot change roles", func(t *testing.T) {
		_, err := f.tracker.UpdateUserRole(ctx, f.dm, "user-player-2", domain.RoleGameMaster)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := f.tracker.UpdateUserRole(ctx, f.admin, "user-player-2", "overlord")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.tracker.UpdateUserRole(ctx, f.admin, "user-nobody", domain.RolePlayer)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	users, err := f.tracker.ListUsers(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	players, err := f.tracker.ListUsersByRole(ctx, f.admin, domain.RolePlayer)
	require.NoError(t, err)
	assert.Len(t, players, 3)

	_, err = f.tracker.ListUsers(ctx, f.dm)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.tracker.ListUsers(ctx, domain.User{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
