package nomination

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

const nominationColumns = `id, cycle_id, nominator_id, nominee_id, status, nominated_at, responded_at`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, nominationID id.NominationID) (*models.PeerNomination, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+nominationColumns+` FROM peer_nominations WHERE id = $1`, uuid.UUID(nominationID))
	n, err := scanNomination(row)
	if err != nil {
		return nil, pgrow.ReadError("nomination", err)
	}
	return n, nil
}

func (s *PostgresStore) FindByNominatorAndCycle(ctx context.Context, nominatorID id.UserID, cycleID id.CycleID) ([]*models.PeerNomination, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx,
		`SELECT `+nominationColumns+` FROM peer_nominations
		WHERE nominator_id = $1 AND cycle_id = $2 ORDER BY nominated_at, id`,
		uuid.UUID(nominatorID), uuid.UUID(cycleID))
	if err != nil {
		return nil, fmt.Errorf("list nominations: %w", err)
	}
	defer rows.Close()

	out := make([]*models.PeerNomination, 0)
	for rows.Next() {
		n, err := scanNomination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nomination: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nominations: %w", err)
	}
	return out, nil
}

// Save upserts; only status and responded_at change after creation.
func (s *PostgresStore) Save(ctx context.Context, n *models.PeerNomination) error {
	_, err := tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO peer_nominations (`+nominationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			responded_at = EXCLUDED.responded_at`,
		uuid.UUID(n.ID), uuid.UUID(n.CycleID), uuid.UUID(n.NominatorID), uuid.UUID(n.NomineeID),
		string(n.Status), n.NominatedAt, pgrow.NullTime(n.RespondedAt),
	)
	return pgrow.WriteError("save nomination", err)
}

func scanNomination(row pgrow.Scanner) (*models.PeerNomination, error) {
	var (
		n                                     models.PeerNomination
		nominationID, cycleID, nominator, nom uuid.UUID
		status                                string
		respondedAt                           sql.NullTime
	)
	if err := row.Scan(&nominationID, &cycleID, &nominator, &nom, &status, &n.NominatedAt, &respondedAt); err != nil {
		return nil, err
	}
	n.ID = id.NominationID(nominationID)
	n.CycleID = id.CycleID(cycleID)
	n.NominatorID = id.UserID(nominator)
	n.NomineeID = id.UserID(nom)
	n.Status = models.NominationStatus(status)
	n.RespondedAt = pgrow.TimePtr(respondedAt)
	return &n, nil
}
