package finalscore

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

const scoreColumns = `id, cycle_id, user_id, pillar_scores, weighted_score, final_level,
	peer_average_scores, peer_feedback_count, locked, locked_at, feedback_delivered,
	feedback_delivered_at, delivered_at, delivered_by, feedback_notes, calculated_at, updated_at`

// percentageExpr mirrors WeightedScore.Percentage so tier filtering agrees with the domain.
const percentageExpr = `(weighted_score / 4.0 * 100)`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUserAndCycle(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.FinalScore, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+scoreColumns+` FROM final_scores WHERE user_id = $1 AND cycle_id = $2`,
		uuid.UUID(userID), uuid.UUID(cycleID))
	f, err := scanScore(row)
	if err != nil {
		return nil, pgrow.ReadError("final score", err)
	}
	return f, nil
}

func (s *PostgresStore) FindByCycle(ctx context.Context, cycleID id.CycleID) ([]*models.FinalScore, error) {
	return s.list(ctx,
		`SELECT `+scoreColumns+` FROM final_scores WHERE cycle_id = $1 ORDER BY weighted_score DESC`,
		uuid.UUID(cycleID))
}

func (s *PostgresStore) FindByBonusTier(ctx context.Context, cycleID id.CycleID, tier models.BonusTier) ([]*models.FinalScore, error) {
	lower, upper, err := tierBounds(tier)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, `SELECT `+scoreColumns+` FROM final_scores
		WHERE cycle_id = $1
		  AND ($2::float8 IS NULL OR `+percentageExpr+` >= $2)
		  AND ($3::float8 IS NULL OR `+percentageExpr+` < $3)
		ORDER BY weighted_score DESC`,
		uuid.UUID(cycleID), lower, upper)
}

// tierBounds returns the half-open percentage range [lower, upper) of a tier.
func tierBounds(tier models.BonusTier) (lower, upper sql.NullFloat64, err error) {
	switch tier {
	case models.BonusTierExceeds:
		return sql.NullFloat64{Float64: models.ExceedsThreshold, Valid: true}, sql.NullFloat64{}, nil
	case models.BonusTierMeets:
		return sql.NullFloat64{Float64: models.MeetsThreshold, Valid: true},
			sql.NullFloat64{Float64: models.ExceedsThreshold, Valid: true}, nil
	case models.BonusTierBelow:
		return sql.NullFloat64{}, sql.NullFloat64{Float64: models.MeetsThreshold, Valid: true}, nil
	}
	_, err = models.ParseBonusTier(string(tier))
	return lower, upper, err
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.FinalScore, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list final scores: %w", err)
	}
	defer rows.Close()

	out := make([]*models.FinalScore, 0)
	for rows.Next() {
		f, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan final score: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate final scores: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, f *models.FinalScore) error {
	pillars, err := pgrow.PillarsJSON(f.PillarScores)
	if err != nil {
		return err
	}
	var peer []byte
	if f.PeerAverageScores != nil {
		if peer, err = pgrow.PillarsJSON(*f.PeerAverageScores); err != nil {
			return err
		}
	}
	var notes sql.NullString
	if f.FeedbackNotes != nil {
		notes = sql.NullString{String: *f.FeedbackNotes, Valid: true}
	}

	_, err = tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO final_scores (`+scoreColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			pillar_scores = EXCLUDED.pillar_scores,
			weighted_score = EXCLUDED.weighted_score,
			final_level = EXCLUDED.final_level,
			peer_average_scores = EXCLUDED.peer_average_scores,
			peer_feedback_count = EXCLUDED.peer_feedback_count,
			locked = EXCLUDED.locked,
			locked_at = EXCLUDED.locked_at,
			feedback_delivered = EXCLUDED.feedback_delivered,
			feedback_delivered_at = EXCLUDED.feedback_delivered_at,
			delivered_at = EXCLUDED.delivered_at,
			delivered_by = EXCLUDED.delivered_by,
			feedback_notes = EXCLUDED.feedback_notes,
			updated_at = EXCLUDED.updated_at`,
		uuid.UUID(f.ID), uuid.UUID(f.CycleID), uuid.UUID(f.UserID),
		pillars, f.WeightedScore.Value(), string(f.FinalLevel),
		peer, f.PeerFeedbackCount, f.Locked, pgrow.NullTime(f.LockedAt), f.FeedbackDelivered,
		pgrow.NullTime(f.FeedbackDeliveredAt), pgrow.NullTime(f.DeliveredAt), pgrow.NullUser(f.DeliveredBy),
		notes, f.CalculatedAt, f.UpdatedAt,
	)
	return pgrow.WriteError("save final score", err)
}

func (s *PostgresStore) Delete(ctx context.Context, scoreID id.FinalScoreID) error {
	res, err := tx.Pick(ctx, s.db).ExecContext(ctx, `DELETE FROM final_scores WHERE id = $1`, uuid.UUID(scoreID))
	if err != nil {
		return fmt.Errorf("delete final score: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete final score: %w", err)
	} else if n == 0 {
		return fmt.Errorf("final score not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func scanScore(row pgrow.Scanner) (*models.FinalScore, error) {
	var (
		f                        models.FinalScore
		scoreID, cycleID, userID uuid.UUID
		pillars, peer            []byte
		weighted                 float64
		level                    string
		lockedAt, deliveredAt    sql.NullTime
		feedbackAt               sql.NullTime
		deliveredBy              uuid.NullUUID
		notes                    sql.NullString
	)
	if err := row.Scan(&scoreID, &cycleID, &userID, &pillars, &weighted, &level,
		&peer, &f.PeerFeedbackCount, &f.Locked, &lockedAt, &f.FeedbackDelivered,
		&feedbackAt, &deliveredAt, &deliveredBy, &notes, &f.CalculatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if f.PillarScores, err = pgrow.ParsePillars(pillars); err != nil {
		return nil, fmt.Errorf("final score %s: %w", scoreID, err)
	}
	if f.WeightedScore, err = models.NewWeightedScore(weighted); err != nil {
		return nil, fmt.Errorf("final score %s: %w", scoreID, err)
	}
	if peer != nil {
		avg, err := pgrow.ParsePillars(peer)
		if err != nil {
			return nil, fmt.Errorf("final score %s peer averages: %w", scoreID, err)
		}
		f.PeerAverageScores = &avg
	}
	if notes.Valid {
		n := notes.String
		f.FeedbackNotes = &n
	}
	f.ID = id.FinalScoreID(scoreID)
	f.CycleID = id.CycleID(cycleID)
	f.UserID = id.UserID(userID)
	f.FinalLevel = models.EngineerLevel(level)
	f.LockedAt = pgrow.TimePtr(lockedAt)
	f.FeedbackDeliveredAt = pgrow.TimePtr(feedbackAt)
	f.DeliveredAt = pgrow.TimePtr(deliveredAt)
	f.DeliveredBy = pgrow.UserPtr(deliveredBy)
	return &f, nil
}
