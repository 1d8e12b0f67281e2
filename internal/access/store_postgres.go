package access

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkruglov/chitalka/internal/platform/dberr"
)

// PostgresRepository persists the approval registries in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) IsApproved(ctx context.Context, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM approved_users WHERE user_id = $1)`

	var approved bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&approved); err != nil {
		return false, dberr.Wrap(err, "check approved user")
	}
	return approved, nil
}

func (r *PostgresRepository) Approve(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO approved_users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name`

	_, err := r.pool.Exec(ctx, query, user.ID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		return dberr.Wrap(err, "approve user")
	}
	return nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, userID int64) (bool, error) {
	const query = `DELETE FROM approved_users WHERE user_id = $1`

	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return false, dberr.Wrap(err, "revoke user")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) ListApproved(ctx context.Context) ([]*User, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, approved_at
		FROM approved_users
		ORDER BY user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list approved users")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.ApprovedAt); err != nil {
			return nil, dberr.Wrap(err, "scan approved user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate approved users")
	}
	return users, nil
}

func (r *PostgresRepository) CountApproved(ctx context.Context) (int, error) {
	const query = `SELECT count(*) FROM approved_users`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count approved users")
	}
	return count, nil
}

func (r *PostgresRepository) AddPending(ctx context.Context, user *PendingUser) (bool, error) {
	const query = `
		INSERT INTO pending_users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query, user.ID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		return false, dberr.Wrap(err, "add pending user")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) GetPending(ctx context.Context, userID int64) (*PendingUser, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, requested_at
		FROM pending_users
		WHERE user_id = $1`

	var user PendingUser
	err := r.pool.QueryRow(ctx, query, userID).
		Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.RequestedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get pending user")
	}
	return &user, nil
}

func (r *PostgresRepository) RemovePending(ctx context.Context, userID int64) (bool, error) {
	const query = `DELETE FROM pending_users WHERE user_id = $1`

	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return false, dberr.Wrap(err, "remove pending user")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*PendingUser, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, requested_at
		FROM pending_users
		ORDER BY requested_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list pending users")
	}
	defer rows.Close()

	var users []*PendingUser
	for rows.Next() {
		var user PendingUser
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.RequestedAt); err != nil {
			return nil, dberr.Wrap(err, "scan pending user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate pending users")
	}
	return users, nil
}
