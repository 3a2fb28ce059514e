package service

import (
	"context"
	"time"

	"library_backend/internal/models"
	"library_backend/internal/repository"
)

const (
	// Every borrow record a user has ever made counts toward the cap,
	// returned or not. That is the historical rule this service inherits;
	// change it only together with the product owners.
	maxBorrowsPerUser = 3

	maxRecommendations = 5
)

// LendingService implements the borrow ledger: taking books out, returning
// them, and author-based recommendations.
type LendingService struct {
	borrows repository.Borrows
	books   repository.Books
}

func NewLendingService(borrows repository.Borrows, books repository.Books) *LendingService {
	return &LendingService{borrows: borrows, books: books}
}

// Borrow records a new borrow for the user unless the cap is reached. The
// limit check and the insert are a single conditional write in the
// repository, so concurrent requests cannot exceed the cap.
func (s *LendingService) Borrow(ctx context.Context, userID, bookID int64) (models.Borrow, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return models.Borrow{}, err
	}
	if book == nil {
		return models.Borrow{}, ErrNotFound
	}

	br, err := s.borrows.CreateWithinLimit(ctx, userID, bookID, time.Now().UTC(), maxBorrowsPerUser)
	if err != nil {
		return models.Borrow{}, err
	}
	if br == nil {
		return models.Borrow{}, ErrBorrowLimit
	}
	return *br, nil
}

// Return stamps the return date on a borrow record. Returning twice is not
// an error; the timestamp is simply overwritten.
func (s *LendingService) Return(ctx context.Context, borrowID int64) (models.Borrow, error) {
	br, err := s.borrows.SetReturned(ctx, borrowID, time.Now().UTC())
	if err != nil {
		return models.Borrow{}, err
	}
	if br == nil {
		return models.Borrow{}, ErrNotFound
	}
	return *br, nil
}

// Recommend suggests up to five books by authors the user has already read,
// excluding everything the user has ever borrowed. Returned and outstanding
// borrows feed the author set alike.
func (s *LendingService) Recommend(ctx context.Context, userID int64) ([]models.Book, error) {
	borrowed, err := s.borrows.BorrowedBooks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(borrowed) == 0 {
		return []models.Book{}, nil
	}

	seenAuthors := make(map[string]struct{}, len(borrowed))
	var (
		authors    []string
		excludeIDs []int64
	)
	for _, b := range borrowed {
		if _, ok := seenAuthors[b.Author]; !ok {
			seenAuthors[b.Author] = struct{}{}
			authors = append(authors, b.Author)
		}
		excludeIDs = append(excludeIDs, b.ID)
	}

	return s.books.ByAuthorsExcluding(ctx, authors, excludeIDs, maxRecommendations)
}
