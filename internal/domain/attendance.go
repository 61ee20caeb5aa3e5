package domain

import "time"

// AttendanceToken records that a character played a session. Tokens are
// hard-deleted by an administrator, never soft-deleted.
type AttendanceToken struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"character_id"`
	SessionName string    `json:"session_name"`
	SessionDate time.Time `json:"session_date"`
	AwardedBy   string    `json:"awarded_by"`
	AwardedAt   time.Time `json:"awarded_at"`
}

// AttendanceForm carries the fields of a single-token award request.
type AttendanceForm struct {
	CharacterID string    `json:"character_id"`
	SessionName string    `json:"session_name"`
	SessionDate time.Time `json:"session_date"`
}
