// Package service composes the authenticated actor, the role checks, and the
// stores into the operations the API exposes. Validation and authorization
// always run before any store mutation.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/storage"
	"github.com/adventure-league/tracker/internal/validation"
)

// Notifier is told about awards after they are persisted. Implementations
// must not fail the operation; delivery problems are theirs to log.
type Notifier interface {
	VoucherAwarded(ctx context.Context, v domain.LootVoucher, ch domain.Character, by domain.User)
	AttendanceAwarded(ctx context.Context, tokens []domain.AttendanceToken, sessionName string, by domain.User)
}

// Tracker is the facade over the store set. Construct one per process and
// inject it; there is no ambient global state.
type Tracker struct {
	stores   *storage.Stores
	tokens   *auth.Tokens
	notifier Notifier
}

func New(stores *storage.Stores, tokens *auth.Tokens, notifier Notifier) *Tracker {
	return &Tracker{stores: stores, tokens: tokens, notifier: notifier}
}

// Login checks the credentials and returns the user with a fresh session
// token. Unknown emails, inactive accounts, and wrong passwords all produce
// the same error so nothing is leaked about which one it was.
func (t *Tracker) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := t.stores.Users.GetUserByEmail(ctx, email)
	if err != nil || !user.Active || !auth.CheckPassword(user.PasswordHash, password) {
		return domain.User{}, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	token, err := t.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, token, nil
}

// CurrentUser resolves a verified token's user id to its active account.
func (t *Tracker) CurrentUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := t.stores.Users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if !user.Active {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

// Register creates a self-service account. Registration always yields a
// player; only an administrator can hand out higher roles.
func (t *Tracker) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	user, err := t.createUser(ctx, domain.UserForm{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     domain.RolePlayer,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := t.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, token, nil
}

// CreateUser is the administrator path: any role may be assigned.
func (t *Tracker) CreateUser(ctx context.Context, actor domain.User, form domain.UserForm) (domain.User, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return domain.User{}, err
	}
	return t.createUser(ctx, form)
}

func (t *Tracker) createUser(ctx context.Context, form domain.UserForm) (domain.User, error) {
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	if verr := validation.ValidateUserForm(form); verr != nil {
		return domain.User{}, verr
	}

	if _, err := t.stores.Users.GetUserByEmail(ctx, form.Email); err == nil {
		return domain.User{}, &domain.ValidationError{Fields: map[string]string{"email": "email already exists"}}
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        form.Email,
		PasswordHash: hash,
		Role:         form.Role,
		Name:         strings.TrimSpace(form.Name),
		CreatedAt:    time.Now().UTC(),
		Active:       true,
	}

	if err := t.stores.Users.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUserRole changes a user's role. Administrator only.
func (t *Tracker) UpdateUserRole(ctx context.Context, actor domain.User, userID string, role domain.Role) (domain.User, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return domain.User{}, err
	}
	if !role.Valid() {
		return domain.User{}, &domain.ValidationError{Fields: map[string]string{"role": "role is required"}}
	}

	user, err := t.stores.Users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	user.Role = role
	if err := t.stores.Users.UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// DeactivateUser soft-deletes a user. The record stays so awards keep
// resolving; the account just cannot log in any more.
func (t *Tracker) DeactivateUser(ctx context.Context, actor domain.User, userID string) error {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return err
	}

	user, err := t.stores.Users.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	user.Active = false
	return t.stores.Users.UpdateUser(ctx, user)
}

// ListUsers returns the active users. Administrator only.
func (t *Tracker) ListUsers(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	return t.stores.Users.ListUsers(ctx)
}

// ListUsersByRole returns the active users holding a role. Administrator
// only.
func (t *Tracker) ListUsersByRole(ctx context.Context, actor domain.User, role domain.Role) ([]domain.User, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	return t.stores.Users.ListUsersByRole(ctx, role)
}
