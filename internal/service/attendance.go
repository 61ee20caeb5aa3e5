package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/validation"
)

// AwardToken records one character's attendance for a session. Game master
// and up.
func (t *Tracker) AwardToken(ctx context.Context, actor domain.User, form domain.AttendanceForm) (domain.AttendanceToken, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return domain.AttendanceToken{}, err
	}
	if verr := validateAttendance(form.SessionName, form.SessionDate); verr != nil {
		return domain.AttendanceToken{}, verr
	}

	ch, err := t.stores.Characters.GetCharacter(ctx, form.CharacterID)
	if err != nil {
		return domain.AttendanceToken{}, err
	}

	token := domain.AttendanceToken{
		ID:          uuid.NewString(),
		CharacterID: ch.ID,
		SessionName: form.SessionName,
		SessionDate: form.SessionDate,
		AwardedBy:   actor.ID,
		AwardedAt:   time.Now().UTC(),
	}

	if err := t.stores.Attendance.CreateToken(ctx, token); err != nil {
		return domain.AttendanceToken{}, err
	}

	if t.notifier != nil {
		t.notifier.AttendanceAwarded(ctx, []domain.AttendanceToken{token}, form.SessionName, actor)
	}
	return token, nil
}

// AwardTokensBulk awards one session's attendance to many characters at
// once. All tokens share a single award timestamp and land in one durable
// write. Game master and up.
func (t *Tracker) AwardTokensBulk(ctx context.Context, actor domain.User, characterIDs []string, sessionName string, sessionDate time.Time) ([]domain.AttendanceToken, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	if verr := validateAttendance(sessionName, sessionDate); verr != nil {
		return nil, verr
	}
	if len(characterIDs) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"character_ids": "at least one character is required"}}
	}

	// Every character must resolve before anything is written.
	for _, id := range characterIDs {
		if _, err := t.stores.Characters.GetCharacter(ctx, id); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	tokens := make([]domain.AttendanceToken, 0, len(characterIDs))
	for _, id := range characterIDs {
		tokens = append(tokens, domain.AttendanceToken{
			ID:          uuid.NewString(),
			CharacterID: id,
			SessionName: sessionName,
			SessionDate: sessionDate,
			AwardedBy:   actor.ID,
			AwardedAt:   now,
		})
	}

	if err := t.stores.Attendance.CreateTokens(ctx, tokens); err != nil {
		return nil, err
	}

	if t.notifier != nil {
		t.notifier.AttendanceAwarded(ctx, tokens, sessionName, actor)
	}
	return tokens, nil
}

// DeleteToken hard-deletes an attendance token. Administrator only.
func (t *Tracker) DeleteToken(ctx context.Context, actor domain.User, id string) error {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return err
	}
	return t.stores.Attendance.DeleteToken(ctx, id)
}

// CharacterTokens lists a character's attendance, newest session first.
func (t *Tracker) CharacterTokens(ctx context.Context, actor domain.User, characterID string) ([]domain.AttendanceToken, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return t.stores.Attendance.ListTokensByCharacter(ctx, characterID)
}

// AttendanceCount reports how many sessions a character has attended.
func (t *Tracker) AttendanceCount(ctx context.Context, actor domain.User, characterID string) (int, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return 0, err
	}
	return t.stores.Attendance.CountTokensByCharacter(ctx, characterID)
}

// SessionsAttended lists the distinct sessions a character has attended.
func (t *Tracker) SessionsAttended(ctx context.Context, actor domain.User, characterID string) ([]string, error) {
	if _, err := t.visibleCharacter(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return t.stores.Attendance.SessionsAttended(ctx, characterID)
}

// TokensBySession lists every token awarded for one session. Game master and
// up.
func (t *Tracker) TokensBySession(ctx context.Context, actor domain.User, sessionName string) ([]domain.AttendanceToken, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Attendance.ListTokensBySession(ctx, sessionName)
}

// SessionNames lists the distinct session names alphabetically. Game master
// and up.
func (t *Tracker) SessionNames(ctx context.Context, actor domain.User) ([]string, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Attendance.SessionNames(ctx)
}

// AllTokens lists every attendance token, newest session first. Game master
// and up.
func (t *Tracker) AllTokens(ctx context.Context, actor domain.User) ([]domain.AttendanceToken, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Attendance.ListTokens(ctx)
}

// RecentTokens lists the ten most recently awarded tokens. Game master and
// up.
func (t *Tracker) RecentTokens(ctx context.Context, actor domain.User) ([]domain.AttendanceToken, error) {
	if err := auth.RequireRole(actor, domain.RoleGameMaster); err != nil {
		return nil, err
	}
	return t.stores.Attendance.RecentTokens(ctx, 10)
}

func validateAttendance(sessionName string, sessionDate time.Time) *domain.ValidationError {
	fields := make(map[string]string)
	if err := validation.ValidateSessionName(sessionName); err != nil {
		fields["session_name"] = err.Error()
	}
	if sessionDate.IsZero() {
		fields["session_date"] = "session date is required"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
