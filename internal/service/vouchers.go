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

// AwardVoucher creates a loot voucher for a character with the acting game
// master recorded as the awarder. Game master and up.
func (t *Tracker) AwardVoucher(ctx context.Context, actor domain.User, form domain.VoucherForm) (domain.LootVoucher, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return domain.LootVoucher{}, err
	}

	fields := make(map[string]string)
	if err := validation.ValidateLootName(form.Name); err != nil {
		fields["name"] = err.Error()
	}
	if !form.Rarity.Valid() {
		fields["rarity"] = "unknown rarity"
	}
	if len(fields) > 0 {
		return domain.LootVoucher{}, &domain.ValidationError{Fields: fields}
	}

	ch, err := t.stores.Characters.GetCharacter(ctx, form.CharacterID)
	if err != nil {
		return domain.LootVoucher{}, err
	}

	voucher := domain.LootVoucher{
		ID:          uuid.NewString(),
		CharacterID: ch.ID,
		Name:        strings.TrimSpace(form.Name),
		Description: form.Description,
		Rarity:      form.Rarity,
		AwardedBy:   actor.ID,
		AwardedAt:   time.Now().UTC(),
	}

	if err := t.stores.Vouchers.CreateVoucher(ctx, voucher); err != nil {
		return domain.LootVoucher{}, err
	}

	if t.notifier != nil {
		t.notifier.VoucherAwarded(ctx, voucher, ch, actor)
	}
	return voucher, nil
}

// UseVoucher marks a voucher used and stamps the use time. Using an
// already-used voucher fails and leaves the voucher untouched.
func (t *Tracker) UseVoucher(ctx context.Context, actor domain.User, id string) (domain.LootVoucher, error) {
	voucher, err := t.visibleVoucher(ctx, actor, id)
	if err != nil {
		return domain.LootVoucher{}, err
	}
	if voucher.Used {
		return domain.LootVoucher{}, fmt.Errorf("%w: voucher already used", domain.ErrConstraint)
	}

	now := time.Now().UTC()
	voucher.Used = true
	voucher.UsedAt = &now

	if err := t.stores.Vouchers.UpdateVoucher(ctx, voucher); err != nil {
		return domain.LootVoucher{}, err
	}
	return voucher, nil
}

// UnuseVoucher undoes a use. Symmetric guard: an unused voucher cannot be
// un-used again.
func (t *Tracker) UnuseVoucher(ctx context.Context, actor domain.User, id string) (domain.LootVoucher, error) {
	voucher, err := t.visibleVoucher(ctx, actor, id)
	if err != nil {
		return domain.LootVoucher{}, err
	}
	if !voucher.Used {
		return domain.LootVoucher{}, fmt.Errorf("%w: voucher is not used", domain.ErrConstraint)
	}

	voucher.Used = false
	voucher.UsedAt = nil

	if err := t.stores.Vouchers.UpdateVoucher(ctx, voucher); err != nil {
		return domain.LootVoucher{}, err
	}
	return voucher, nil
}

// DeleteVoucher removes a voucher outright. Administrator only.
func (t *Tracker) DeleteVoucher(ctx context.Context, actor domain.User, id string) error {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return err
	}
	return t.stores.Vouchers.DeleteVoucher(ctx, id)
}

// CharacterVouchers lists a character's vouchers, newest award first.
func (t *Tracker) CharacterVouchers(ctx context.Context, actor domain.User, characterID string) ([]domain.LootVoucher, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return t.stores.Vouchers.ListVouchersByCharacter(ctx, characterID)
}

// UnusedVouchers lists a character's unused vouchers.
func (t *Tracker) UnusedVouchers(ctx context.Context, actor domain.User, characterID string) ([]domain.LootVoucher, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return t.stores.Vouchers.ListVouchersByCharacterUsed(ctx, characterID, false)
}

// UsedVouchers lists a character's used vouchers.
func (t *Tracker) UsedVouchers(ctx context.Context, actor domain.User, characterID string) ([]domain.LootVoucher, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return t.stores.Vouchers.ListVouchersByCharacterUsed(ctx, characterID, true)
}

// VouchersByRarity lists a character's vouchers of one rarity tier.
func (t *Tracker) VouchersByRarity(ctx context.Context, actor domain.User, characterID string, rarity domain.Rarity) ([]domain.LootVoucher, error) {
	if !rarity.Valid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"rarity": "unknown rarity"}}
	}
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return t.stores.Vouchers.ListVouchersByRarity(ctx, characterID, rarity)
}

// VoucherCounts aggregates a character's vouchers by used state.
func (t *Tracker) VoucherCounts(ctx context.Context, actor domain.User, characterID string) (storage.VoucherCounts, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return storage.VoucherCounts{}, err
	}
	return t.stores.Vouchers.CountVouchers(ctx, characterID)
}

// AllVouchers lists every voucher. Game master and up.
func (t *Tracker) AllVouchers(ctx context.Context, actor domain.User) ([]domain.LootVoucher, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Vouchers.ListVouchers(ctx)
}

// RecentVouchers lists the ten most recently awarded vouchers. Game master
// and up.
func (t *Tracker) RecentVouchers(ctx context.Context, actor domain.User) ([]domain.LootVoucher, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Vouchers.RecentVouchers(ctx, 10)
}

// visibleVoucher loads a voucher whose owning character the actor may see.
func (t *Tracker) visibleVoucher(ctx context.Context, actor domain.User, id string) (domain.LootVoucher, error) {
	voucher, err := t.stores.Vouchers.GetVoucher(ctx, id)
	if err != nil {
		return domain.LootVoucher{}, err
	}
	if _, err := t.visibleCharacter(ctx, actor, voucher.CharacterID); err != nil {
		return domain.LootVoucher{}, domain.ErrNotFound
	}
	return voucher, nil
}
