package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"library_backend/internal/models"
)

// fakeBorrowRepo satisfies repository.Borrows.
type fakeBorrowRepo struct {
	createResp *models.Borrow
	createErr  error
	gotUserID  int64
	gotBookID  int64
	gotLimit   int

	returnResp *models.Borrow
	returnErr  error
	gotSetID   int64

	borrowed    []models.Book
	borrowedErr error
}

func (f *fakeBorrowRepo) CreateWithinLimit(ctx context.Context, userID, bookID int64, at time.Time, limit int) (*models.Borrow, error) {
	f.gotUserID = userID
	f.gotBookID = bookID
	f.gotLimit = limit
	return f.createResp, f.createErr
}

func (f *fakeBorrowRepo) GetByID(ctx context.Context, id int64) (*models.Borrow, error) {
	return nil, nil
}

func (f *fakeBorrowRepo) SetReturned(ctx context.Context, id int64, at time.Time) (*models.Borrow, error) {
	f.gotSetID = id
	return f.returnResp, f.returnErr
}

func (f *fakeBorrowRepo) BorrowedBooks(ctx context.Context, userID int64) ([]models.Book, error) {
	return f.borrowed, f.borrowedErr
}

func (f *fakeBorrowRepo) Counts(ctx context.Context) (int, int, error) {
	return len(f.borrowed), 0, nil
}

// fakeBookRepo satisfies repository.Books.
type fakeBookRepo struct {
	byID    map[int64]*models.Book
	byIDErr error

	byAuthorsResp []models.Book
	byAuthorsErr  error
	gotAuthors    []string
	gotExclude    []int64
	gotLimit      int
}

func (f *fakeBookRepo) Create(ctx context.Context, b models.Book) (int64, error) { return 0, nil }

func (f *fakeBookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID[id], nil
}

func (f *fakeBookRepo) Update(ctx context.Context, id int64, patch models.BookPatch) (*models.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeBookRepo) List(ctx context.Context) ([]models.Book, error) { return nil, nil }

func (f *fakeBookRepo) Search(ctx context.Context, title, author, isbn string) ([]models.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) ByAuthorsExcluding(ctx context.Context, authors []string, excludeIDs []int64, limit int) ([]models.Book, error) {
	f.gotAuthors = authors
	f.gotExclude = excludeIDs
	f.gotLimit = limit
	return f.byAuthorsResp, f.byAuthorsErr
}

func (f *fakeBookRepo) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

func TestLendingService_Borrow(t *testing.T) {
	ctx := context.Background()
	book := &models.Book{ID: 9, ISBN: "X1", Title: "T", Author: "A"}

	tests := []struct {
		name    string
		books   *fakeBookRepo
		borrows *fakeBorrowRepo
		wantErr error
	}{
		{
			name:  "success",
			books: &fakeBookRepo{byID: map[int64]*models.Book{9: book}},
			borrows: &fakeBorrowRepo{
				createResp: &models.Borrow{ID: 1, UserID: 5, BookID: 9, BorrowDate: time.Now().UTC()},
			},
		},
		{
			name:    "unknown book",
			books:   &fakeBookRepo{byID: map[int64]*models.Book{}},
			borrows: &fakeBorrowRepo{},
			wantErr: ErrNotFound,
		},
		{
			name:    "cap reached",
			books:   &fakeBookRepo{byID: map[int64]*models.Book{9: book}},
			borrows: &fakeBorrowRepo{createResp: nil}, // conditional insert blocked
			wantErr: ErrBorrowLimit,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLendingService(tt.borrows, tt.books)
			br, err := svc.Borrow(ctx, 5, 9)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err=%v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if br.UserID != 5 || br.BookID != 9 {
				t.Fatalf("unexpected borrow: %+v", br)
			}
			if tt.borrows.gotLimit != maxBorrowsPerUser {
				t.Fatalf("limit=%d, want %d", tt.borrows.gotLimit, maxBorrowsPerUser)
			}
		})
	}
}

func TestLendingService_Return(t *testing.T) {
	ctx := context.Background()
	returnedAt := time.Now().UTC()

	// unknown borrow id
	svc := NewLendingService(&fakeBorrowRepo{returnResp: nil}, &fakeBookRepo{})
	if _, err := svc.Return(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}

	// success sets the stamp; the repo overwrites any previous stamp, so a
	// second call is equally fine
	repo := &fakeBorrowRepo{returnResp: &models.Borrow{ID: 3, ReturnDate: &returnedAt}}
	svc = NewLendingService(repo, &fakeBookRepo{})
	for i := 0; i < 2; i++ {
		br, err := svc.Return(ctx, 3)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if br.ReturnDate == nil {
			t.Fatalf("call %d: return date not set", i+1)
		}
	}
	if repo.gotSetID != 3 {
		t.Fatalf("SetReturned id=%d, want 3", repo.gotSetID)
	}
}

func TestLendingService_Recommend(t *testing.T) {
	ctx := context.Background()

	// no history → no recommendations, catalog never queried
	books := &fakeBookRepo{}
	svc := NewLendingService(&fakeBorrowRepo{}, books)
	recs, err := svc.Recommend(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %+v", recs)
	}
	if books.gotLimit != 0 {
		t.Fatalf("catalog queried for a user without history")
	}

	// duplicate authors collapse, borrowed ids excluded, cap forwarded
	borrowed := []models.Book{
		{ID: 1, Author: "Dewdney"},
		{ID: 2, Author: "Knuth"},
		{ID: 3, Author: "Dewdney"},
	}
	books = &fakeBookRepo{byAuthorsResp: []models.Book{{ID: 7, Author: "Knuth"}}}
	svc = NewLendingService(&fakeBorrowRepo{borrowed: borrowed}, books)

	recs, err = svc.Recommend(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != 7 {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
	if len(books.gotAuthors) != 2 {
		t.Fatalf("authors not deduplicated: %v", books.gotAuthors)
	}
	if len(books.gotExclude) != 3 {
		t.Fatalf("exclusions=%v, want the 3 borrowed ids", books.gotExclude)
	}
	for _, id := range books.gotExclude {
		for _, r := range recs {
			if r.ID == id {
				t.Fatalf("recommended an already borrowed book: %d", id)
			}
		}
	}
	if books.gotLimit != maxRecommendations {
		t.Fatalf("limit=%d, want %d", books.gotLimit, maxRecommendations)
	}
}
