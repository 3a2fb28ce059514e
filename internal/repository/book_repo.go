package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"library_backend/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ Books = (*BookRepository)(nil)

const (
	insertBookSQL = `INSERT INTO books (isbn, title, author, published_year, quantity, genre) VALUES (?, ?, ?, ?, ?, ?)`
	selectBookSQL = `SELECT id, isbn, title, author, published_year, quantity, genre FROM books`
	deleteBookSQL = `DELETE FROM books WHERE id = ?`
	countBooksSQL = `SELECT COUNT(*) FROM books`
)

// Create inserts a new book and returns its ID. A taken ISBN yields
// ErrDuplicate.
func (r *BookRepository) Create(ctx context.Context, b models.Book) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBookSQL,
		b.ISBN, b.Title, b.Author, b.PublishedYear, b.Quantity, nullable(b.Genre))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert book isbn=%q: %w", b.ISBN, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert book isbn=%q: %w", b.ISBN, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for book isbn=%q: %w", b.ISBN, err)
	}
	return lastID, nil
}

// GetByID fetches a book by id. Returns (nil, nil) if not found.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	row := r.db.QueryRowContext(ctx, selectBookSQL+" WHERE id = ?", id)
	b, err := scanBookRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book id=%d: %w", id, err)
	}
	return b, nil
}

// Update applies the non-nil patch fields and returns the updated record.
// Returns (nil, nil) if no row matched.
func (r *BookRepository) Update(ctx context.Context, id int64, patch models.BookPatch) (*models.Book, error) {
	var (
		sets []string
		args []any
	)
	if patch.ISBN != nil {
		sets = append(sets, "isbn = ?")
		args = append(args, *patch.ISBN)
	}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *patch.Author)
	}
	if patch.PublishedYear != nil {
		sets = append(sets, "published_year = ?")
		args = append(args, *patch.PublishedYear)
	}
	if patch.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Genre != nil {
		sets = append(sets, "genre = ?")
		args = append(args, nullable(*patch.Genre))
	}

	if len(sets) > 0 {
		q := "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		args = append(args, id)
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("update book id=%d: %w", id, ErrDuplicate)
			}
			return nil, fmt.Errorf("update book id=%d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, nil
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a book by id.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteBookSQL, id); err != nil {
		return fmt.Errorf("delete book id=%d: %w", id, err)
	}
	return nil
}

// List returns every catalog record. Order is whatever the engine yields.
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	return r.queryBooks(ctx, selectBookSQL)
}

// Search filters by case-insensitive substring on title/author and exact
// ISBN. Empty arguments are skipped.
func (r *BookRepository) Search(ctx context.Context, title, author, isbn string) ([]models.Book, error) {
	var (
		conds []string
		args  []any
	)
	if title != "" {
		conds = append(conds, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(title)+"%")
	}
	if author != "" {
		conds = append(conds, "LOWER(author) LIKE ?")
		args = append(args, "%"+strings.ToLower(author)+"%")
	}
	if isbn != "" {
		conds = append(conds, "isbn = ?")
		args = append(args, isbn)
	}

	q := selectBookSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	return r.queryBooks(ctx, q, args...)
}

// ByAuthorsExcluding returns up to limit books written by any of the given
// authors, skipping the excluded ids.
func (r *BookRepository) ByAuthorsExcluding(ctx context.Context, authors []string, excludeIDs []int64, limit int) ([]models.Book, error) {
	if len(authors) == 0 {
		return []models.Book{}, nil
	}

	q := selectBookSQL + " WHERE author IN (" + placeholders(len(authors)) + ")"
	args := make([]any, 0, len(authors)+len(excludeIDs)+1)
	for _, a := range authors {
		args = append(args, a)
	}
	if len(excludeIDs) > 0 {
		q += " AND id NOT IN (" + placeholders(len(excludeIDs)) + ")"
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}
	q += " LIMIT ?"
	args = append(args, limit)

	return r.queryBooks(ctx, q, args...)
}

// Count returns the number of catalog records.
func (r *BookRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countBooksSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

func (r *BookRepository) queryBooks(ctx context.Context, q string, args ...any) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Book, 0, 16)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookRow(row rowScanner) (*models.Book, error) {
	var (
		b     models.Book
		genre sql.NullString
	)
	if err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublishedYear, &b.Quantity, &genre); err != nil {
		return nil, err
	}
	if genre.Valid {
		b.Genre = genre.String
	}
	return &b, nil
}

// nullable maps an empty string to NULL so optional columns stay NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// placeholders builds "?, ?, ?" for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
