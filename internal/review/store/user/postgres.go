package user

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

const userColumns = `id, name, email, level, manager_id`

type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (s *PostgresDirectory) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(userID))
	u, err := scanUser(row)
	if err != nil {
		return nil, pgrow.ReadError("user", err)
	}
	return u, nil
}

func (s *PostgresDirectory) FindByManagerID(ctx context.Context, managerID id.UserID) ([]*models.User, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE manager_id = $1 ORDER BY name, id`, uuid.UUID(managerID))
	if err != nil {
		return nil, fmt.Errorf("list direct reports: %w", err)
	}
	defer rows.Close()

	out := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (s *PostgresDirectory) Save(ctx context.Context, u *models.User) error {
	var level sql.NullString
	if u.Level != "" {
		level = sql.NullString{String: string(u.Level), Valid: true}
	}
	var manager uuid.NullUUID
	if u.HasManager() {
		manager = uuid.NullUUID{UUID: uuid.UUID(u.ManagerID), Valid: true}
	}
	_, err := tx.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			level = EXCLUDED.level,
			manager_id = EXCLUDED.manager_id`,
		uuid.UUID(u.ID), u.Name, u.Email, level, manager,
	)
	return pgrow.WriteError("save user", err)
}

func scanUser(row pgrow.Scanner) (*models.User, error) {
	var (
		u       models.User
		userID  uuid.UUID
		level   sql.NullString
		manager uuid.NullUUID
	)
	if err := row.Scan(&userID, &u.Name, &u.Email, &level, &manager); err != nil {
		return nil, err
	}
	u.ID = id.UserID(userID)
	u.Level = models.EngineerLevel(level.String)
	if manager.Valid {
		u.ManagerID = id.UserID(manager.UUID)
	}
	return &u, nil
}
