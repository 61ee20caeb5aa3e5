package service

import (
	"context"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/storage"
)

// CharacterSummary is a character with its aggregates for the dashboard.
type CharacterSummary struct {
	Character  domain.Character      `json:"character"`
	TotalLevel int                   `json:"total_level"`
	Vouchers   storage.VoucherCounts `json:"vouchers"`
	Attendance int                   `json:"attendance"`
}

// Dashboard is the at-a-glance view for the logged-in user. Players get
// their own characters; game masters and administrators additionally get the
// table-wide recent activity.
type Dashboard struct {
	Characters     []CharacterSummary       `json:"characters"`
	RecentVouchers []domain.LootVoucher     `json:"recent_vouchers,omitempty"`
	RecentTokens   []domain.AttendanceToken `json:"recent_tokens,omitempty"`
	Sessions       []string                 `json:"sessions,omitempty"`
}

func (t *Tracker) Dashboard(ctx context.Context, actor domain.User) (Dashboard, error) {
	if actor.ID == "" {
		return Dashboard{}, domain.ErrUnauthorized
	}

	var (
		characters []domain.Character
		err        error
	)
	if actor.Role.AtLeast(domain.RoleGameMaster) {
		characters, err = t.stores.Characters.ListCharacters(ctx)
	} else {
		characters, err = t.stores.Characters.ListCharactersByPlayer(ctx, actor.ID)
	}
	if err != nil {
		return Dashboard{}, err
	}

	dash := Dashboard{Characters: make([]CharacterSummary, 0, len(characters))}
	for _, ch := range characters {
		counts, err := t.stores.Vouchers.CountVouchers(ctx, ch.ID)
		if err != nil {
			return Dashboard{}, err
		}
		attendance, err := t.stores.Attendance.CountTokensByCharacter(ctx, ch.ID)
		if err != nil {
			return Dashboard{}, err
		}
		dash.Characters = append(dash.Characters, CharacterSummary{
			Character:  ch,
			TotalLevel: ch.TotalLevel(),
			Vouchers:   counts,
			Attendance: attendance,
		})
	}

	if actor.Role.AtLeast(domain.RoleGameMaster) {
		if dash.RecentVouchers, err = t.stores.Vouchers.RecentVouchers(ctx, 10); err != nil {
			return Dashboard{}, err
		}
		if dash.RecentTokens, err = t.stores.Attendance.RecentTokens(ctx, 10); err != nil {
			return Dashboard{}, err
		}
		if dash.Sessions, err = t.stores.Attendance.SessionNames(ctx); err != nil {
			return Dashboard{}, err
		}
	}

	return dash, nil
}
