package domain

import "time"

// SourceKind identifies where a character sheet lives.
type SourceKind string

const (
	SourceManual    SourceKind = "manual"
	SourceDNDBeyond SourceKind = "dndbeyond"
	SourcePDF       SourceKind = "pdf"
)

func (k SourceKind) Valid() bool {
	switch k {
	case SourceManual, SourceDNDBeyond, SourcePDF:
		return true
	}
	return false
}

// Source pairs a sheet kind with its link. The URL is only meaningful for
// linked kinds; use the constructors so the pairing cannot go wrong.
type Source struct {
	Kind SourceKind `json:"kind"`
	URL  string     `json:"url,omitempty"`
}

func ManualSource() Source {
	return Source{Kind: SourceManual}
}

func DNDBeyondSource(url string) Source {
	return Source{Kind: SourceDNDBeyond, URL: url}
}

func PDFSource(url string) Source {
	return Source{Kind: SourcePDF, URL: url}
}

// Validate rejects unknown kinds and a URL attached to a manual sheet.
func (s Source) Validate() error {
	if !s.Kind.Valid() {
		return &FieldError{Field: "source", Message: "unknown character source"}
	}
	if s.Kind == SourceManual && s.URL != "" {
		return &FieldError{Field: "source", Message: "manual characters cannot have a sheet link"}
	}
	return nil
}

// ClassLevel is one class a character has taken levels in.
type ClassLevel struct {
	Class string `json:"class"`
	Level int    `json:"level"`
}

// Character belongs to exactly one player. Classes is ordered to support
// multiclassing; the sum of levels is capped at 20.
type Character struct {
	ID         string       `json:"id"`
	PlayerID   string       `json:"player_id"`
	Name       string       `json:"name"`
	Classes    []ClassLevel `json:"classes"`
	Race       string       `json:"race"`
	Background string       `json:"background"`
	Source     Source       `json:"source"`
	Gold       int          `json:"gold"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// TotalLevel is the sum of levels across all classes.
func (c Character) TotalLevel() int {
	total := 0
	for _, cls := range c.Classes {
		total += cls.Level
	}
	return total
}

// CharacterForm carries the mutable character fields from a request.
type CharacterForm struct {
	Name       string       `json:"name"`
	Classes    []ClassLevel `json:"classes"`
	Race       string       `json:"race"`
	Background string       `json:"background"`
	Source     Source       `json:"source"`
	Gold       int          `json:"gold"`
}
