package reviews

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

// PostgresStore reads and writes the self_reviews, peer_feedback and
// manager_evaluations tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUserAndCycle(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.SelfReview, error) {
	var (
		r           models.SelfReview
		reviewID    uuid.UUID
		status      string
		scores      []byte
		submittedAt sql.NullTime
	)
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, status, pillar_scores, narrative, submitted_at
		FROM self_reviews WHERE user_id = $1 AND cycle_id = $2`,
		uuid.UUID(userID), uuid.UUID(cycleID),
	).Scan(&reviewID, &status, &scores, &r.Narrative, &submittedAt)
	if err != nil {
		return nil, pgrow.ReadError("self review", err)
	}
	if r.Scores, err = pgrow.ParsePillars(scores); err != nil {
		return nil, fmt.Errorf("self review %s: %w", reviewID, err)
	}
	r.ID = id.ReviewID(reviewID)
	r.UserID = userID
	r.CycleID = cycleID
	r.Status = models.ReviewStatus(status)
	r.SubmittedAt = pgrow.TimePtr(submittedAt)
	return &r, nil
}

func (s *PostgresStore) FindByEmployeeAndCycle(ctx context.Context, employeeID id.UserID, cycleID id.CycleID) (*models.ManagerEvaluation, error) {
	var (
		e           models.ManagerEvaluation
		evalID      uuid.UUID
		managerID   uuid.UUID
		status      string
		scores      []byte
		submittedAt sql.NullTime
	)
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, manager_id, status, pillar_scores, narrative, submitted_at
		FROM manager_evaluations WHERE employee_id = $1 AND cycle_id = $2`,
		uuid.UUID(employeeID), uuid.UUID(cycleID),
	).Scan(&evalID, &managerID, &status, &scores, &e.Narrative, &submittedAt)
	if err != nil {
		return nil, pgrow.ReadError("manager evaluation", err)
	}
	if e.Scores, err = pgrow.ParsePillars(scores); err != nil {
		return nil, fmt.Errorf("manager evaluation %s: %w", evalID, err)
	}
	e.ID = id.ReviewID(evalID)
	e.EmployeeID = employeeID
	e.ManagerID = id.UserID(managerID)
	e.CycleID = cycleID
	e.Status = models.ReviewStatus(status)
	e.SubmittedAt = pgrow.TimePtr(submittedAt)
	return &e, nil
}

func (s *PostgresStore) FindByRevieweeAndCycle(ctx context.Context, revieweeID id.UserID, cycleID id.CycleID) ([]*models.PeerFeedback, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, `
		SELECT id, reviewer_id, pillar_scores, strengths, growth_areas, submitted_at
		FROM peer_feedback WHERE reviewee_id = $1 AND cycle_id = $2 ORDER BY submitted_at`,
		uuid.UUID(revieweeID), uuid.UUID(cycleID))
	if err != nil {
		return nil, fmt.Errorf("list peer feedback: %w", err)
	}
	defer rows.Close()

	out := make([]*models.PeerFeedback, 0)
	for rows.Next() {
		var (
			f                    models.PeerFeedback
			feedbackID, reviewer uuid.UUID
			scores               []byte
		)
		if err := rows.Scan(&feedbackID, &reviewer, &scores, &f.Strengths, &f.GrowthAreas, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan peer feedback: %w", err)
		}
		if f.Scores, err = pgrow.ParsePillars(scores); err != nil {
			return nil, fmt.Errorf("peer feedback %s: %w", feedbackID, err)
		}
		f.ID = id.ReviewID(feedbackID)
		f.ReviewerID = id.UserID(reviewer)
		f.RevieweeID = revieweeID
		f.CycleID = cycleID
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate peer feedback: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SaveSelfReview(ctx context.Context, r *models.SelfReview) error {
	scores, err := pgrow.PillarsJSON(r.Scores)
	if err != nil {
		return err
	}
	_, err = tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO self_reviews (id, cycle_id, user_id, status, pillar_scores, narrative, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			pillar_scores = EXCLUDED.pillar_scores,
			narrative = EXCLUDED.narrative,
			submitted_at = EXCLUDED.submitted_at`,
		uuid.UUID(r.ID), uuid.UUID(r.CycleID), uuid.UUID(r.UserID), string(r.Status), scores, r.Narrative,
		pgrow.NullTime(r.SubmittedAt))
	return pgrow.WriteError("save self review", err)
}

func (s *PostgresStore) SaveManagerEvaluation(ctx context.Context, e *models.ManagerEvaluation) error {
	scores, err := pgrow.PillarsJSON(e.Scores)
	if err != nil {
		return err
	}
	_, err = tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO manager_evaluations (id, cycle_id, employee_id, manager_id, status, pillar_scores, narrative, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			pillar_scores = EXCLUDED.pillar_scores,
			narrative = EXCLUDED.narrative,
			submitted_at = EXCLUDED.submitted_at`,
		uuid.UUID(e.ID), uuid.UUID(e.CycleID), uuid.UUID(e.EmployeeID), uuid.UUID(e.ManagerID),
		string(e.Status), scores, e.Narrative, pgrow.NullTime(e.SubmittedAt))
	return pgrow.WriteError("save manager evaluation", err)
}

func (s *PostgresStore) SavePeerFeedback(ctx context.Context, f *models.PeerFeedback) error {
	scores, err := pgrow.PillarsJSON(f.Scores)
	if err != nil {
		return err
	}
	_, err = tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO peer_feedback (id, cycle_id, reviewee_id, reviewer_id, pillar_scores, strengths, growth_areas, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			pillar_scores = EXCLUDED.pillar_scores,
			strengths = EXCLUDED.strengths,
			growth_areas = EXCLUDED.growth_areas`,
		uuid.UUID(f.ID), uuid.UUID(f.CycleID), uuid.UUID(f.RevieweeID), uuid.UUID(f.ReviewerID),
		scores, f.Strengths, f.GrowthAreas, f.SubmittedAt)
	return pgrow.WriteError("save peer feedback", err)
}
