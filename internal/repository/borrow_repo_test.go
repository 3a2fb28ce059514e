package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockBorrowRepo(t *testing.T) (*BorrowRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewBorrowRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestBorrowRepository_CreateWithinLimit(t *testing.T) {
	at := time.Date(2025, time.August, 1, 10, 30, 0, 0, time.UTC)

	t.Run("inserted", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertBorrowWithinLimitSQL)).
			WithArgs(int64(5), int64(9), "2025-08-01 10:30:00", int64(5), 3).
			WillReturnResult(sqlmock.NewResult(1, 1))

		br, err := repo.CreateWithinLimit(context.Background(), 5, 9, at, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br == nil || br.ID != 1 || br.UserID != 5 || br.BookID != 9 {
			t.Fatalf("unexpected borrow: %+v", br)
		}
		if !br.BorrowDate.Equal(at) {
			t.Fatalf("borrow date=%v, want %v", br.BorrowDate, at)
		}
		if br.ReturnDate != nil {
			t.Fatalf("new borrow must be outstanding")
		}
	})

	t.Run("blocked by cap", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertBorrowWithinLimitSQL)).
			WithArgs(int64(5), int64(9), "2025-08-01 10:30:00", int64(5), 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		br, err := repo.CreateWithinLimit(context.Background(), 5, 9, at, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br != nil {
			t.Fatalf("expected nil when blocked, got %+v", br)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertBorrowWithinLimitSQL)).
			WithArgs(int64(5), int64(9), "2025-08-01 10:30:00", int64(5), 3).
			WillReturnError(errors.New("db exec failed"))

		if _, err := repo.CreateWithinLimit(context.Background(), 5, 9, at, 3); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestBorrowRepository_GetByID(t *testing.T) {
	borrowColumns := []string{"id", "user_id", "book_id", "borrow_date", "return_date"}
	borrowedAt := time.Date(2025, time.August, 1, 10, 30, 0, 0, time.UTC)
	returnedAt := time.Date(2025, time.August, 2, 9, 0, 0, 0, time.UTC)

	t.Run("outstanding", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectBorrowSQL)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(borrowColumns).
				AddRow(1, 5, 9, borrowedAt, nil))

		br, err := repo.GetByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br == nil || br.ReturnDate != nil {
			t.Fatalf("expected outstanding borrow, got %+v", br)
		}
	})

	t.Run("returned", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectBorrowSQL)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(borrowColumns).
				AddRow(2, 5, 9, borrowedAt, returnedAt))

		br, err := repo.GetByID(context.Background(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br == nil || br.ReturnDate == nil || !br.ReturnDate.Equal(returnedAt) {
			t.Fatalf("expected returned borrow, got %+v", br)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectBorrowSQL)).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		br, err := repo.GetByID(context.Background(), 404)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br != nil {
			t.Fatalf("expected nil, got %+v", br)
		}
	})
}

func TestBorrowRepository_SetReturned(t *testing.T) {
	at := time.Date(2025, time.August, 2, 9, 0, 0, 0, time.UTC)
	borrowColumns := []string{"id", "user_id", "book_id", "borrow_date", "return_date"}

	t.Run("success reloads the record", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateReturnSQL)).
			WithArgs("2025-08-02 09:00:00", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(selectBorrowSQL)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(borrowColumns).
				AddRow(3, 5, 9, at.Add(-24*time.Hour), at))

		br, err := repo.SetReturned(context.Background(), 3, at)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br == nil || br.ReturnDate == nil || !br.ReturnDate.Equal(at) {
			t.Fatalf("unexpected borrow: %+v", br)
		}
	})

	t.Run("missing row yields nil", func(t *testing.T) {
		repo, mock, cleanup := newMockBorrowRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateReturnSQL)).
			WithArgs("2025-08-02 09:00:00", int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		br, err := repo.SetReturned(context.Background(), 404, at)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if br != nil {
			t.Fatalf("expected nil, got %+v", br)
		}
	})
}

func TestBorrowRepository_Counts(t *testing.T) {
	repo, mock, cleanup := newMockBorrowRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(countBorrowsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "outstanding"}).AddRow(7, 2))

	total, outstanding, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 || outstanding != 2 {
		t.Fatalf("counts=(%d,%d), want (7,2)", total, outstanding)
	}
}

func TestBorrowRepository_BorrowedBooks(t *testing.T) {
	repo, mock, cleanup := newMockBorrowRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(borrowedBooksSQL)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookColumns).
			AddRow(1, "X1", "T1", "A", 2020, 1, nil).
			AddRow(2, "X2", "T2", "B", 2021, 1, "sci-fi"))

	books, err := repo.BorrowedBooks(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 2 || books[1].Genre != "sci-fi" {
		t.Fatalf("unexpected books: %+v", books)
	}
}
