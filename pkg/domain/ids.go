// Package domain holds typed identifiers shared across the review module.
//
// Each identifier is a distinct named uuid.UUID so the compiler refuses to mix a
// cycle id with a user id. Parse functions are the trust boundary for ids that
// arrive as strings: they reject malformed and nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "calibra/pkg/domain-errors"
)

type (
	UserID               uuid.UUID
	CycleID              uuid.UUID
	FinalScoreID         uuid.UUID
	NominationID         uuid.UUID
	AdjustmentRequestID  uuid.UUID
	CalibrationSessionID uuid.UUID
	ReviewID             uuid.UUID
)

func (id UserID) String() string               { return uuid.UUID(id).String() }
func (id CycleID) String() string              { return uuid.UUID(id).String() }
func (id FinalScoreID) String() string         { return uuid.UUID(id).String() }
func (id NominationID) String() string         { return uuid.UUID(id).String() }
func (id AdjustmentRequestID) String() string  { return uuid.UUID(id).String() }
func (id CalibrationSessionID) String() string { return uuid.UUID(id).String() }
func (id ReviewID) String() string             { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool               { return uuid.UUID(id) == uuid.Nil }
func (id CycleID) IsNil() bool              { return uuid.UUID(id) == uuid.Nil }
func (id FinalScoreID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id NominationID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id AdjustmentRequestID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CalibrationSessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReviewID) IsNil() bool             { return uuid.UUID(id) == uuid.Nil }

// Text encoding makes ids render as canonical strings in JSON and cache payloads.
func (id UserID) MarshalText() ([]byte, error)               { return uuid.UUID(id).MarshalText() }
func (id CycleID) MarshalText() ([]byte, error)              { return uuid.UUID(id).MarshalText() }
func (id FinalScoreID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id NominationID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id AdjustmentRequestID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id CalibrationSessionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ReviewID) MarshalText() ([]byte, error)             { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CycleID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FinalScoreID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NominationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AdjustmentRequestID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
func (id *CalibrationSessionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
func (id *ReviewID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseCycleID(s string) (CycleID, error) {
	u, err := parseUUID(s, "cycle ID")
	return CycleID(u), err
}

func ParseFinalScoreID(s string) (FinalScoreID, error) {
	u, err := parseUUID(s, "final score ID")
	return FinalScoreID(u), err
}

func ParseNominationID(s string) (NominationID, error) {
	u, err := parseUUID(s, "nomination ID")
	return NominationID(u), err
}

func ParseAdjustmentRequestID(s string) (AdjustmentRequestID, error) {
	u, err := parseUUID(s, "adjustment request ID")
	return AdjustmentRequestID(u), err
}

func ParseCalibrationSessionID(s string) (CalibrationSessionID, error) {
	u, err := parseUUID(s, "calibration session ID")
	return CalibrationSessionID(u), err
}

func ParseReviewID(s string) (ReviewID, error) {
	u, err := parseUUID(s, "review ID")
	return ReviewID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
