package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/validation"
)

// canView reports whether the actor may see the character: game masters and
// administrators see everything, players only their own.
func canView(actor domain.User, ch domain.Character) bool {
	return actor.Role.AtLeast(domain.RoleGameMaster) || ch.PlayerID == actor.ID
}

// visibleCharacter loads a character the actor is allowed to see. A character
// that exists but is out of reach comes back as ErrNotFound so a player
// cannot probe for other characters' ids.
func (t *Tracker) visibleCharacter(ctx context.Context, actor domain.User, id string) (domain.Character, error) {
	ch, err := t.stores.Characters.GetCharacter(ctx, id)
	if err != nil {
		return domain.Character{}, err
	}
	if !canView(actor, ch) {
		return domain.Character{}, domain.ErrNotFound
	}
	return ch, nil
}

// CreateCharacter binds the new character to the acting player. Any
// authenticated user may create characters for themselves.
func (t *Tracker) CreateCharacter(ctx context.Context, actor domain.User, form domain.CharacterForm) (domain.Character, error) {
	if actor.ID == "" {
		return domain.Character{}, domain.ErrUnauthorized
	}
	if verr := validation.ValidateCharacterForm(form); verr != nil {
		return domain.Character{}, verr
	}

	now := time.Now().UTC()
	ch := domain.Character{
		ID:         uuid.NewString(),
		PlayerID:   actor.ID,
		Name:       strings.TrimSpace(form.Name),
		Classes:    form.Classes,
		Race:       form.Race,
		Background: form.Background,
		Source:     form.Source,
		Gold:       form.Gold,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := t.stores.Characters.CreateCharacter(ctx, ch); err != nil {
		return domain.Character{}, err
	}
	return ch, nil
}

// GetCharacter returns the character when the actor is its owner or holds
// game-master rank or above.
func (t *Tracker) GetCharacter(ctx context.Context, actor domain.User, id string) (domain.Character, error) {
	return t.visibleCharacter(ctx, actor, id)
}

// MyCharacters lists the acting player's own characters.
func (t *Tracker) MyCharacters(ctx context.Context, actor domain.User) ([]domain.Character, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return t.stores.Characters.ListCharactersByPlayer(ctx, actor.ID)
}

// CharactersByPlayer lists another player's characters. Game master and up.
func (t *Tracker) CharactersByPlayer(ctx context.Context, actor domain.User, playerID string) ([]domain.Character, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Characters.ListCharactersByPlayer(ctx, playerID)
}

// AllCharacters lists every character. Game master and up.
func (t *Tracker) AllCharacters(ctx context.Context, actor domain.User) ([]domain.Character, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Characters.ListCharacters(ctx)
}

// SearchCharacters matches name, race, and class names case-insensitively.
// Players search within their own characters only.
func (t *Tracker) SearchCharacters(ctx context.Context, actor domain.User, query string) ([]domain.Character, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	results, err := t.stores.Characters.SearchCharacters(ctx, query)
	if err != nil {
		return nil, err
	}
	if actor.Role.AtLeast(domain.RoleGameMaster) {
		return results, nil
	}

	var own []domain.Character
	for _, ch := range results {
		if ch.PlayerID == actor.ID {
			own = append(own, ch)
		}
	}
	return own, nil
}

// UpdateCharacter replaces the mutable fields. Owner, game master, or
// administrator.
func (t *Tracker) UpdateCharacter(ctx context.Context, actor domain.User, id string, form domain.CharacterForm) (domain.Character, error) {
	ch, err := t.visibleCharacter(ctx, actor, id)
	if err != nil {
		return domain.Character{}, err
	}
	if verr := validation.ValidateCharacterForm(form); verr != nil {
		return domain.Character{}, verr
	}

	ch.Name = strings.TrimSpace(form.Name)
	ch.Classes = form.Classes
	ch.Race = form.Race
	ch.Background = form.Background
	ch.Source = form.Source
	ch.Gold = form.Gold
	ch.UpdatedAt = time.Now().UTC()

	if err := t.stores.Characters.UpdateCharacter(ctx, ch); err != nil {
		return domain.Character{}, err
	}
	return ch, nil
}

// DeleteCharacter removes the character and cascades to its vouchers and
// attendance tokens. Owner or administrator.
func (t *Tracker) DeleteCharacter(ctx context.Context, actor domain.User, id string) error {
	ch, err := t.visibleCharacter(ctx, actor, id)
	if err != nil {
		return err
	}
	if ch.PlayerID != actor.ID && actor.Role != domain.RoleAdministrator {
		return fmt.Errorf("%w: only the owner or an administrator can delete a character", domain.ErrForbidden)
	}

	if _, err := t.stores.Vouchers.DeleteVouchersByCharacter(ctx, id); err != nil {
		return err
	}
	if _, err := t.stores.Attendance.DeleteTokensByCharacter(ctx, id); err != nil {
		return err
	}
	return t.stores.Characters.DeleteCharacter(ctx, id)
}

// AddGold credits gold to the character. Owner, game master, or
// administrator.
func (t *Tracker) AddGold(ctx context.Context, actor domain.User, id string, amount int) (domain.Character, error) {
	if amount < 0 {
		return domain.Character{}, fmt.Errorf("%w: gold cannot be negative", domain.ErrConstraint)
	}
	return t.adjustGold(ctx, actor, id, amount)
}

// SubtractGold debits gold and fails without touching the balance when the
// character cannot afford it.
func (t *Tracker) SubtractGold(ctx context.Context, actor domain.User, id string, amount int) (domain.Character, error) {
	if amount < 0 {
		return domain.Character{}, fmt.Errorf("%w: gold cannot be negative", domain.ErrConstraint)
	}
	return t.adjustGold(ctx, actor, id, -amount)
}

// SetGold replaces the balance outright.
func (t *Tracker) SetGold(ctx context.Context, actor domain.User, id string, gold int) (domain.Character, error) {
	if err := validation.ValidateGold(gold); err != nil {
		return domain.Character{}, &domain.ValidationError{Fields: map[string]string{"gold": err.Error()}}
	}

	ch, err := t.visibleCharacter(ctx, actor, id)
	if err != nil {
		return domain.Character{}, err
	}

	ch.Gold = gold
	ch.UpdatedAt = time.Now().UTC()
	if err := t.stores.Characters.UpdateCharacter(ctx, ch); err != nil {
		return domain.Character{}, err
	}
	return ch, nil
}

func (t *Tracker) adjustGold(ctx context.Context, actor domain.User, id string, delta int) (domain.Character, error) {
	ch, err := t.visibleCharacter(ctx, actor, id)
	if err != nil {
		return domain.Character{}, err
	}

	next := ch.Gold + delta
	if next < 0 {
		return domain.Character{}, fmt.Errorf("%w: insufficient gold", domain.ErrConstraint)
	}

	ch.Gold = next
	ch.UpdatedAt = time.Now().UTC()
	if err := t.stores.Characters.UpdateCharacter(ctx, ch); err != nil {
		return domain.Character{}, err
	}
	return ch, nil
}
