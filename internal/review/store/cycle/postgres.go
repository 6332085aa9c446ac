package cycle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"calibra/internal/review/models"
	"calibra/internal/review/store/pgrow"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
	"calibra/pkg/platform/tx"
)

const cycleColumns = `id, name, year, status, self_review_deadline, peer_feedback_deadline,
	manager_evaluation_deadline, calibration_deadline, feedback_delivery_deadline,
	start_date, end_date, created_at, updated_at`

// PostgresStore persists review cycles in the review_cycles table. The partial
// unique index review_cycles_single_active backs the one-active-cycle rule.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, cycleID id.CycleID) (*models.ReviewCycle, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+cycleColumns+` FROM review_cycles WHERE id = $1`, uuid.UUID(cycleID))
	c, err := scanCycle(row)
	if err != nil {
		return nil, pgrow.ReadError("review cycle", err)
	}
	return c, nil
}

func (s *PostgresStore) FindActive(ctx context.Context) (*models.ReviewCycle, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+cycleColumns+` FROM review_cycles WHERE status = $1`, string(models.CycleStatusActive))
	c, err := scanCycle(row)
	if err != nil {
		return nil, pgrow.ReadError("active review cycle", err)
	}
	return c, nil
}

func (s *PostgresStore) FindByYear(ctx context.Context, year int) ([]*models.ReviewCycle, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx,
		`SELECT `+cycleColumns+` FROM review_cycles WHERE year = $1 ORDER BY start_date`, year)
	if err != nil {
		return nil, fmt.Errorf("list review cycles: %w", err)
	}
	defer rows.Close()

	out := make([]*models.ReviewCycle, 0)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review cycle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review cycles: %w", err)
	}
	return out, nil
}

// Save upserts the cycle. A second ACTIVE cycle surfaces as sentinel.ErrConflict.
func (s *PostgresStore) Save(ctx context.Context, c *models.ReviewCycle) error {
	d := c.Deadlines.ToObject()
	_, err := tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO review_cycles (`+cycleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			year = EXCLUDED.year,
			status = EXCLUDED.status,
			self_review_deadline = EXCLUDED.self_review_deadline,
			peer_feedback_deadline = EXCLUDED.peer_feedback_deadline,
			manager_evaluation_deadline = EXCLUDED.manager_evaluation_deadline,
			calibration_deadline = EXCLUDED.calibration_deadline,
			feedback_delivery_deadline = EXCLUDED.feedback_delivery_deadline,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at`,
		uuid.UUID(c.ID), c.Name, c.Year, string(c.Status),
		d.SelfReview, d.PeerFeedback, d.ManagerEvaluation, d.Calibration, d.FeedbackDelivery,
		c.StartDate, pgrow.NullTime(c.EndDate), c.CreatedAt, c.UpdatedAt,
	)
	return pgrow.WriteError("save review cycle", err)
}

func (s *PostgresStore) Delete(ctx context.Context, cycleID id.CycleID) error {
	res, err := tx.Pick(ctx, s.db).ExecContext(ctx, `DELETE FROM review_cycles WHERE id = $1`, uuid.UUID(cycleID))
	if err != nil {
		return fmt.Errorf("delete review cycle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review cycle: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("review cycle not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func scanCycle(row pgrow.Scanner) (*models.ReviewCycle, error) {
	var (
		c       models.ReviewCycle
		cycleID uuid.UUID
		status  string
		d       models.DeadlineDates
		endDate sql.NullTime
	)
	if err := row.Scan(&cycleID, &c.Name, &c.Year, &status,
		&d.SelfReview, &d.PeerFeedback, &d.ManagerEvaluation, &d.Calibration, &d.FeedbackDelivery,
		&c.StartDate, &endDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	deadlines, err := models.NewCycleDeadlines(d)
	if err != nil {
		return nil, fmt.Errorf("review cycle %s: %w", cycleID, err)
	}
	c.ID = id.CycleID(cycleID)
	c.Status = models.CycleStatus(status)
	c.Deadlines = deadlines
	c.EndDate = pgrow.TimePtr(endDate)
	return &c, nil
}
