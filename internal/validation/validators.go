// Package validation holds the pure field and form validators. Functions here
// have no side effects and touch no store.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/adventure-league/tracker/internal/domain"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dndBeyondRe = regexp.MustCompile(`^https?://(www\.)?dndbeyond\.com/`)
)

// ValidateEmail reports whether the text has a local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

func ValidateCharacterName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("character name is required")
	}
	if len(trimmed) < 2 {
		return errors.New("character name must be at least 2 characters")
	}
	if len(name) > 50 {
		return errors.New("character name must be less than 50 characters")
	}
	return nil
}

func ValidateClassLevel(level int) error {
	if level < 1 {
		return errors.New("level must be at least 1")
	}
	if level > 20 {
		return errors.New("level cannot exceed 20")
	}
	return nil
}

// CalculateTotalLevel sums the level of every class. Pure sum, so the result
// does not depend on class order.
func CalculateTotalLevel(classes []domain.ClassLevel) int {
	total := 0
	for _, cls := range classes {
		total += cls.Level
	}
	return total
}

// ValidateTotalLevel checks the multiclass rules: at least one class, total
// capped at 20, and every class named with a level in bounds. Classes are
// scanned in order and the first failure wins.
func ValidateTotalLevel(classes []domain.ClassLevel) error {
	if len(classes) == 0 {
		return errors.New("at least one class is required")
	}
	if CalculateTotalLevel(classes) > 20 {
		return errors.New("total level cannot exceed 20")
	}
	for _, cls := range classes {
		if strings.TrimSpace(cls.Class) == "" {
			return errors.New("class name cannot be empty")
		}
		if err := ValidateClassLevel(cls.Level); err != nil {
			return err
		}
	}
	return nil
}

func ValidateGold(gold int) error {
	if gold < 0 {
		return errors.New("gold cannot be negative")
	}
	return nil
}

// ValidateDndBeyondLink accepts an empty link (the field is optional) and
// otherwise requires a dndbeyond.com URL.
func ValidateDndBeyondLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return nil
	}
	if !dndBeyondRe.MatchString(link) {
		return errors.New("must be a valid D&D Beyond URL")
	}
	return nil
}

func ValidateLootName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("loot voucher name is required")
	}
	if len(name) > 100 {
		return errors.New("name must be less than 100 characters")
	}
	return nil
}

func ValidateSessionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("session name is required")
	}
	if len(name) > 100 {
		return errors.New("session name must be less than 100 characters")
	}
	return nil
}

// ValidateCharacterForm aggregates the character field validators into a
// field-to-message mapping. A nil result means the form is valid.
func ValidateCharacterForm(form domain.CharacterForm) *domain.ValidationError {
	fields := make(map[string]string)

	if err := ValidateCharacterName(form.Name); err != nil {
		fields["name"] = err.Error()
	}

	if err := ValidateTotalLevel(form.Classes); err != nil {
		fields["classes"] = err.Error()
	}

	if strings.TrimSpace(form.Race) == "" {
		fields["race"] = "race is required"
	}

	if strings.TrimSpace(form.Background) == "" {
		fields["background"] = "background is required"
	}

	if err := ValidateGold(form.Gold); err != nil {
		fields["gold"] = err.Error()
	}

	if err := form.Source.Validate(); err != nil {
		fields["source"] = err.Error()
	}
	if form.Source.Kind == domain.SourceDNDBeyond {
		if err := ValidateDndBeyondLink(form.Source.URL); err != nil {
			fields["source"] = err.Error()
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// ValidateUserForm aggregates the user field validators. A nil result means
// the form is valid.
func ValidateUserForm(form domain.UserForm) *domain.ValidationError {
	fields := make(map[string]string)

	if !ValidateEmail(form.Email) {
		fields["email"] = "invalid email address"
	}

	if err := ValidatePassword(form.Password); err != nil {
		fields["password"] = err.Error()
	}

	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = "name is required"
	}

	if !form.Role.Valid() {
		fields["role"] = "role is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}
