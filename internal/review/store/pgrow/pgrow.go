// Package pgrow holds the column codecs shared by the review postgres adapters.
package pgrow

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"calibra/internal/platform/postgres"
	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// PillarsJSON encodes pillar scores for a JSONB column.
func PillarsJSON(s models.PillarScores) ([]byte, error) {
	b, err := json.Marshal(s.ToObject())
	if err != nil {
		return nil, fmt.Errorf("marshal pillar scores: %w", err)
	}
	return b, nil
}

// ParsePillars decodes a JSONB column and re-validates the bounds.
func ParsePillars(raw []byte) (models.PillarScores, error) {
	var p models.Pillars
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.PillarScores{}, fmt.Errorf("unmarshal pillar scores: %w", err)
	}
	return models.NewPillarScores(p)
}

func NullUser(u *id.UserID) uuid.NullUUID {
	if u == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*u), Valid: true}
}

func UserPtr(n uuid.NullUUID) *id.UserID {
	if !n.Valid {
		return nil
	}
	u := id.UserID(n.UUID)
	return &u
}

func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func TimePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time.UTC()
	return &t
}

// WriteError tags unique violations with sentinel.ErrConflict.
func WriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ReadError tags sql.ErrNoRows with sentinel.ErrNotFound.
func ReadError(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s not found: %w", what, sentinel.ErrNotFound)
	}
	return fmt.Errorf("find %s: %w", what, err)
}
