package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"calibra/internal/review/models"
	"calibra/internal/review/store/pgrow"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/tx"
)

const sessionColumns = `id, cycle_id, name, facilitator_id, participant_ids, scheduled_at, status,
	notes, created_at, started_at, completed_at`

// PostgresStore keeps participants in a UUID[] column, bound through pq.Array
// so the adapter works with either registered driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, sessionID id.CalibrationSessionID) (*models.CalibrationSession, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM calibration_sessions WHERE id = $1`, uuid.UUID(sessionID))
	cs, err := scanSession(row)
	if err != nil {
		return nil, pgrow.ReadError("calibration session", err)
	}
	return cs, nil
}

func (s *PostgresStore) FindByCycle(ctx context.Context, cycleID id.CycleID) ([]*models.CalibrationSession, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM calibration_sessions WHERE cycle_id = $1 ORDER BY scheduled_at`,
		uuid.UUID(cycleID))
	if err != nil {
		return nil, fmt.Errorf("list calibration sessions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.CalibrationSession, 0)
	for rows.Next() {
		cs, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calibration session: %w", err)
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calibration sessions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, cs *models.CalibrationSession) error {
	participants := make([]string, len(cs.ParticipantIDs))
	for i, p := range cs.ParticipantIDs {
		participants[i] = p.String()
	}
	_, err := tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO calibration_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5::uuid[], $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			participant_ids = EXCLUDED.participant_ids,
			scheduled_at = EXCLUDED.scheduled_at,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at`,
		uuid.UUID(cs.ID), uuid.UUID(cs.CycleID), cs.Name, uuid.UUID(cs.FacilitatorID),
		pq.Array(participants), cs.ScheduledAt, string(cs.Status), cs.Notes, cs.CreatedAt,
		pgrow.NullTime(cs.StartedAt), pgrow.NullTime(cs.CompletedAt),
	)
	return pgrow.WriteError("save calibration session", err)
}

func scanSession(row pgrow.Scanner) (*models.CalibrationSession, error) {
	var (
		cs                   models.CalibrationSession
		sessionID, cycleID   uuid.UUID
		facilitator          uuid.UUID
		participants         []string
		status               string
		startedAt, completed sql.NullTime
	)
	if err := row.Scan(&sessionID, &cycleID, &cs.Name, &facilitator, pq.Array(&participants), &cs.ScheduledAt,
		&status, &cs.Notes, &cs.CreatedAt, &startedAt, &completed); err != nil {
		return nil, err
	}
	cs.ParticipantIDs = make([]id.UserID, 0, len(participants))
	for _, p := range participants {
		u, err := uuid.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("calibration session %s participant: %w", sessionID, err)
		}
		cs.ParticipantIDs = append(cs.ParticipantIDs, id.UserID(u))
	}
	cs.ID = id.CalibrationSessionID(sessionID)
	cs.CycleID = id.CycleID(cycleID)
	cs.FacilitatorID = id.UserID(facilitator)
	cs.Status = models.SessionStatus(status)
	cs.StartedAt = pgrow.TimePtr(startedAt)
	cs.CompletedAt = pgrow.TimePtr(completed)
	return &cs, nil
}
