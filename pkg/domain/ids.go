package domain

import (
	"github.com/google/uuid"

	dErrors "cleanslate/pkg/domain-errors"
)

// Typed IDs keep the compiler from mixing up identifiers across features.
// IDs must be valid, non-nil UUIDs; parsing enforces that at trust boundaries.
type (
	UserID         uuid.UUID
	SourceRecordID uuid.UUID
	TemplateID     uuid.UUID
	PetitionID     uuid.UUID
)

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid uuid")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil uuid")
	}
	return parsed, nil
}

// ParseUserID validates and converts a string to a UserID.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseSourceRecordID validates and converts a string to a SourceRecordID.
func ParseSourceRecordID(s string) (SourceRecordID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return SourceRecordID{}, err
	}
	return SourceRecordID(parsed), nil
}

// ParseTemplateID validates and converts a string to a TemplateID.
func ParseTemplateID(s string) (TemplateID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return TemplateID{}, err
	}
	return TemplateID(parsed), nil
}

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id SourceRecordID) String() string { return uuid.UUID(id).String() }
func (id TemplateID) String() string     { return uuid.UUID(id).String() }
func (id PetitionID) String() string     { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id SourceRecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TemplateID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewSourceRecordID returns a fresh random SourceRecordID.
func NewSourceRecordID() SourceRecordID { return SourceRecordID(uuid.New()) }

// NewTemplateID returns a fresh random TemplateID.
func NewTemplateID() TemplateID { return TemplateID(uuid.New()) }

// NewPetitionID returns a fresh random PetitionID.
func NewPetitionID() PetitionID { return PetitionID(uuid.New()) }
