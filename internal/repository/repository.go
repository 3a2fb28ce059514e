package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"library_backend/internal/models"
)

// ErrDuplicate reports a violated UNIQUE constraint (users.email, books.isbn).
var ErrDuplicate = errors.New("duplicate value for unique column")

// isUniqueViolation detects a UNIQUE constraint failure from the sqlite
// driver. modernc.org/sqlite exposes no typed error for this, so the message
// text is the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type Users interface {
	Create(name, email, passwordHash string, isAdmin bool) (int64, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}

type Books interface {
	Create(ctx context.Context, b models.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Update(ctx context.Context, id int64, patch models.BookPatch) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Book, error)
	Search(ctx context.Context, title, author, isbn string) ([]models.Book, error)
	ByAuthorsExcluding(ctx context.Context, authors []string, excludeIDs []int64, limit int) ([]models.Book, error)
	Count(ctx context.Context) (int, error)
}

type Borrows interface {
	// CreateWithinLimit inserts a borrow row only while the user holds fewer
	// than limit borrow records. The check and the insert are one statement,
	// so concurrent requests cannot both slip past the cap.
	CreateWithinLimit(ctx context.Context, userID, bookID int64, at time.Time, limit int) (*models.Borrow, error)
	GetByID(ctx context.Context, id int64) (*models.Borrow, error)
	SetReturned(ctx context.Context, id int64, at time.Time) (*models.Borrow, error)
	BorrowedBooks(ctx context.Context, userID int64) ([]models.Book, error)
	Counts(ctx context.Context) (total, outstanding int, err error)
}

type Repository struct {
	Users   Users
	Books   Books
	Borrows Borrows
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(db),
		Books:   NewBookRepository(db),
		Borrows: NewBorrowRepository(db),
	}
}
