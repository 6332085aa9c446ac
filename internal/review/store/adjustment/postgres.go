package adjustment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"calibra/internal/review/models"
	"calibra/internal/review/store/pgrow"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/tx"
)

const requestColumns = `id, cycle_id, employee_id, requester_id, reason, status, proposed_scores,
	requested_at, reviewed_by, reviewed_at, review_note`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, requestID id.AdjustmentRequestID) (*models.ScoreAdjustmentRequest, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM score_adjustment_requests WHERE id = $1`, uuid.UUID(requestID))
	r, err := scanRequest(row)
	if err != nil {
		return nil, pgrow.ReadError("score adjustment request", err)
	}
	return r, nil
}

func (s *PostgresStore) FindPending(ctx context.Context) ([]*models.ScoreAdjustmentRequest, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM score_adjustment_requests
		WHERE status = $1 ORDER BY requested_at`, string(models.AdjustmentPending))
}

func (s *PostgresStore) FindByEmployee(ctx context.Context, employeeID id.UserID) ([]*models.ScoreAdjustmentRequest, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM score_adjustment_requests
		WHERE employee_id = $1 ORDER BY requested_at DESC`, uuid.UUID(employeeID))
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.ScoreAdjustmentRequest, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list score adjustment requests: %w", err)
	}
	defer rows.Close()

	out := make([]*models.ScoreAdjustmentRequest, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan score adjustment request: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score adjustment requests: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, r *models.ScoreAdjustmentRequest) error {
	proposed, err := pgrow.PillarsJSON(r.ProposedScores)
	if err != nil {
		return err
	}
	_, err = tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO score_adjustment_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			reviewed_by = EXCLUDED.reviewed_by,
			reviewed_at = EXCLUDED.reviewed_at,
			review_note = EXCLUDED.review_note`,
		uuid.UUID(r.ID), uuid.UUID(r.CycleID), uuid.UUID(r.EmployeeID), uuid.UUID(r.RequesterID),
		r.Reason, string(r.Status), proposed, r.RequestedAt,
		pgrow.NullUser(r.ReviewedBy), pgrow.NullTime(r.ReviewedAt), r.ReviewNote,
	)
	return pgrow.WriteError("save score adjustment request", err)
}

func scanRequest(row pgrow.Scanner) (*models.ScoreAdjustmentRequest, error) {
	var (
		r                                       models.ScoreAdjustmentRequest
		requestID, cycleID, employee, requester uuid.UUID
		status                                  string
		proposed                                []byte
		reviewedBy                              uuid.NullUUID
		reviewedAt                              sql.NullTime
	)
	if err := row.Scan(&requestID, &cycleID, &employee, &requester, &r.Reason, &status, &proposed,
		&r.RequestedAt, &reviewedBy, &reviewedAt, &r.ReviewNote); err != nil {
		return nil, err
	}
	scores, err := pgrow.ParsePillars(proposed)
	if err != nil {
		return nil, fmt.Errorf("score adjustment request %s: %w", requestID, err)
	}
	r.ID = id.AdjustmentRequestID(requestID)
	r.CycleID = id.CycleID(cycleID)
	r.EmployeeID = id.UserID(employee)
	r.RequesterID = id.UserID(requester)
	r.Status = models.AdjustmentStatus(status)
	r.ProposedScores = scores
	r.ReviewedBy = pgrow.UserPtr(reviewedBy)
	r.ReviewedAt = pgrow.TimePtr(reviewedAt)
	return &r, nil
}
