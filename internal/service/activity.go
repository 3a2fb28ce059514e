package service

import (
	"context"
	"time"

	"library_backend/internal/models"
	"library_backend/internal/repository"
)

// ActivityService builds usage snapshots for the stats endpoint and the
// WebSocket feed.
type ActivityService struct {
	books   repository.Books
	borrows repository.Borrows
}

func NewActivityService(books repository.Books, borrows repository.Borrows) *ActivityService {
	return &ActivityService{books: books, borrows: borrows}
}

// Snapshot returns current catalog and ledger counts.
func (s *ActivityService) Snapshot(ctx context.Context) (models.ActivitySnapshot, error) {
	totalBooks, err := s.books.Count(ctx)
	if err != nil {
		return models.ActivitySnapshot{}, err
	}
	totalBorrows, outstanding, err := s.borrows.Counts(ctx)
	if err != nil {
		return models.ActivitySnapshot{}, err
	}
	return models.ActivitySnapshot{
		TotalBooks:         totalBooks,
		TotalBorrows:       totalBorrows,
		OutstandingBorrows: outstanding,
		GeneratedAt:        time.Now().UTC(),
	}, nil
}
