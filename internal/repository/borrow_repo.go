package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"library_backend/internal/models"
)

type BorrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

var _ Borrows = (*BorrowRepository)(nil)

// SQLite TIMESTAMP format, matching how the driver round-trips time values.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	// The count subquery and the insert run as one statement, so two
	// concurrent borrows cannot both pass the cap. The count deliberately
	// includes returned borrows: the original rule charges every borrow ever
	// made against the limit.
	insertBorrowWithinLimitSQL = `
		INSERT INTO borrows (user_id, book_id, borrow_date)
		SELECT ?, ?, ?
		WHERE (SELECT COUNT(*) FROM borrows WHERE user_id = ?) < ?
	`

	selectBorrowSQL  = `SELECT id, user_id, book_id, borrow_date, return_date FROM borrows WHERE id = ?`
	updateReturnSQL  = `UPDATE borrows SET return_date = ? WHERE id = ?`
	countBorrowsSQL  = `SELECT COUNT(*), COALESCE(SUM(CASE WHEN return_date IS NULL THEN 1 ELSE 0 END), 0) FROM borrows`
	borrowedBooksSQL = `
		SELECT DISTINCT b.id, b.isbn, b.title, b.author, b.published_year, b.quantity, b.genre
		FROM borrows br
		JOIN books b ON b.id = br.book_id
		WHERE br.user_id = ?
	`
)

// CreateWithinLimit inserts a borrow row unless the user already has limit
// borrow records. Returns (nil, nil) when the cap blocked the insert.
func (r *BorrowRepository) CreateWithinLimit(ctx context.Context, userID, bookID int64, at time.Time, limit int) (*models.Borrow, error) {
	at = at.UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, insertBorrowWithinLimitSQL,
		userID, bookID, at.Format(sqliteTimeLayout), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("insert borrow user=%d book=%d: %w", userID, bookID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for borrow user=%d: %w", userID, err)
	}
	if n == 0 {
		return nil, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for borrow user=%d: %w", userID, err)
	}
	return &models.Borrow{
		ID:         id,
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: at,
	}, nil
}

// GetByID fetches a borrow record by id. Returns (nil, nil) if not found.
func (r *BorrowRepository) GetByID(ctx context.Context, id int64) (*models.Borrow, error) {
	var (
		br         models.Borrow
		returnDate sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectBorrowSQL, id).
		Scan(&br.ID, &br.UserID, &br.BookID, &br.BorrowDate, &returnDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select borrow id=%d: %w", id, err)
	}
	br.BorrowDate = br.BorrowDate.UTC()
	if returnDate.Valid {
		t := returnDate.Time.UTC()
		br.ReturnDate = &t
	}
	return &br, nil
}

// SetReturned stamps the return date and yields the updated record. An
// already-set return date is overwritten. Returns (nil, nil) if not found.
func (r *BorrowRepository) SetReturned(ctx context.Context, id int64, at time.Time) (*models.Borrow, error) {
	at = at.UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, updateReturnSQL, at.Format(sqliteTimeLayout), id)
	if err != nil {
		return nil, fmt.Errorf("update borrow id=%d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// BorrowedBooks returns the distinct books the user has ever borrowed,
// returned or not.
func (r *BorrowRepository) BorrowedBooks(ctx context.Context, userID int64) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, borrowedBooksSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select borrowed books user=%d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 8)
	for rows.Next() {
		b, err := scanBookRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Counts returns the total and outstanding borrow counts.
func (r *BorrowRepository) Counts(ctx context.Context) (int, int, error) {
	var total, outstanding int
	if err := r.db.QueryRowContext(ctx, countBorrowsSQL).Scan(&total, &outstanding); err != nil {
		return 0, 0, fmt.Errorf("count borrows: %w", err)
	}
	return total, outstanding, nil
}
