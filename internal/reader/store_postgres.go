package reader

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkruglov/chitalka/internal/platform/apperr"
	"github.com/pkruglov/chitalka/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	maxBooks int
}

// NewPostgresRepository creates the PostgreSQL session repository with the
// given per-user session cap.
func NewPostgresRepository(pool *pgxpool.Pool, maxBooks int) *PostgresRepository {
	return &PostgresRepository{pool: pool, maxBooks: maxBooks}
}

func (repository *PostgresRepository) Save(ctx context.Context, session *Session) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_save_session")
	}
	defer tx.Rollback(ctx)

	// Serialize per-user writers so the count-then-insert capacity check
	// cannot be raced past by two concurrent ingestions.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, session.UserID); err != nil {
		return dberr.Wrap(err, "lock_user_sessions")
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reading_sessions WHERE user_id = $1 AND book_id = $2)`,
		session.UserID, session.BookID,
	).Scan(&exists)
	if err != nil {
		return dberr.Wrap(err, "check_session_exists")
	}

	if !exists {
		var count int
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM reading_sessions WHERE user_id = $1`,
			session.UserID,
		).Scan(&count)
		if err != nil {
			return dberr.Wrap(err, "count_user_sessions")
		}
		if count >= repository.maxBooks {
			return apperr.CapacityExceeded(repository.maxBooks, count)
		}
	}

	const query = `
		INSERT INTO reading_sessions (
			user_id, book_id, title, author, series, series_number,
			content, current_page, total_pages, page_size, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (user_id, book_id) DO UPDATE SET
			title         = EXCLUDED.title,
			author        = EXCLUDED.author,
			series        = EXCLUDED.series,
			series_number = EXCLUDED.series_number,
			content       = EXCLUDED.content,
			current_page  = EXCLUDED.current_page,
			total_pages   = EXCLUDED.total_pages,
			page_size     = EXCLUDED.page_size,
			updated_at    = now()`

	_, err = tx.Exec(ctx, query,
		session.UserID, session.BookID, session.Title, session.Author,
		session.Series, session.SeriesNumber, session.Content,
		session.CurrentPage, session.TotalPages, session.PageSize,
	)
	if err != nil {
		return dberr.Wrap(err, "save_session")
	}

	return dberr.Wrap(tx.Commit(ctx), "commit_save_session")
}

func (repository *PostgresRepository) Get(ctx context.Context, userID int64, bookID string) (*Session, error) {
	const query = `
		SELECT user_id, book_id, title, author, series, series_number,
		       content, current_page, total_pages, page_size, updated_at
		FROM reading_sessions
		WHERE user_id = $1 AND book_id = $2`

	session := &Session{}
	err := repository.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&session.UserID, &session.BookID, &session.Title, &session.Author,
		&session.Series, &session.SeriesNumber, &session.Content,
		&session.CurrentPage, &session.TotalPages, &session.PageSize,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_session")
	}
	return session, nil
}

func (repository *PostgresRepository) SetPage(ctx context.Context, userID int64, bookID string, page int) error {
	const query = `
		UPDATE reading_sessions
		SET current_page = $3, updated_at = now()
		WHERE user_id = $1 AND book_id = $2`

	cmd, err := repository.pool.Exec(ctx, query, userID, bookID, page)
	if err != nil {
		return dberr.Wrap(err, "set_session_page")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}
	return nil
}

func (repository *PostgresRepository) ResolveShortID(ctx context.Context, userID int64, shortID string) (string, error) {
	if !isHexPrefix(shortID) {
		return "", dberr.ErrNoRows
	}

	const query = `
		SELECT book_id FROM reading_sessions
		WHERE user_id = $1 AND book_id LIKE $2 || '%'
		LIMIT 1`

	var bookID string
	if err := repository.pool.QueryRow(ctx, query, userID, shortID).Scan(&bookID); err != nil {
		return "", dberr.Wrap(err, "resolve_short_id")
	}
	return bookID, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Summary, error) {
	const query = `
		SELECT book_id, title, author, series, series_number, current_page, total_pages
		FROM reading_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(&s.BookID, &s.Title, &s.Author, &s.Series,
			&s.SeriesNumber, &s.CurrentPage, &s.TotalPages); err != nil {
			return nil, dberr.Wrap(err, "scan_session_summary")
		}
		summaries = append(summaries, s)
	}
	return summaries, dberr.Wrap(rows.Err(), "iterate_sessions")
}

func (repository *PostgresRepository) Delete(ctx context.Context, userID int64, bookID string) error {
	const query = `DELETE FROM reading_sessions WHERE user_id = $1 AND book_id = $2`

	// Absence is not an error: deletion is idempotent.
	_, err := repository.pool.Exec(ctx, query, userID, bookID)
	return dberr.Wrap(err, "delete_session")
}

func (repository *PostgresRepository) Count(ctx context.Context, userID int64) (int, error) {
	var count int
	err := repository.pool.QueryRow(ctx,
		`SELECT count(*) FROM reading_sessions WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_sessions")
	}
	return count, nil
}

// isHexPrefix reports whether s looks like a book-identity prefix. Short ids
// travel through callback payloads, so they are validated before reaching a
// LIKE pattern.
func isHexPrefix(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

var _ Repository = (*PostgresRepository)(nil)
