package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library_backend/internal/models"
	"library_backend/internal/repository"
)

// CatalogService implements book CRUD and search over the Books repository.
type CatalogService struct {
	books repository.Books
}

func NewCatalogService(books repository.Books) *CatalogService {
	return &CatalogService{books: books}
}

// Create validates the payload and inserts a new catalog record.
func (s *CatalogService) Create(ctx context.Context, input BookInput) (models.Book, error) {
	if err := validateBookInput(input); err != nil {
		return models.Book{}, err
	}

	b := models.Book{
		ISBN:          strings.TrimSpace(input.ISBN),
		Title:         strings.TrimSpace(input.Title),
		Author:        strings.TrimSpace(input.Author),
		PublishedYear: input.PublishedYear,
		Quantity:      *input.Quantity,
		Genre:         strings.TrimSpace(input.Genre),
	}

	id, err := s.books.Create(ctx, b)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Book{}, ErrDuplicateISBN
		}
		return models.Book{}, err
	}
	b.ID = id
	return b, nil
}

// Update merges the non-nil patch fields into an existing record.
func (s *CatalogService) Update(ctx context.Context, id int64, patch models.BookPatch) (models.Book, error) {
	updated, err := s.books.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Book{}, ErrDuplicateISBN
		}
		return models.Book{}, err
	}
	if updated == nil {
		return models.Book{}, ErrNotFound
	}
	return *updated, nil
}

// Delete removes a book and returns the removed record.
func (s *CatalogService) Delete(ctx context.Context, id int64) (models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if b == nil {
		return models.Book{}, ErrNotFound
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return models.Book{}, err
	}
	return *b, nil
}

// List returns every catalog record.
func (s *CatalogService) List(ctx context.Context) ([]models.Book, error) {
	return s.books.List(ctx)
}

// Search filters the catalog. An empty filter is rejected, and zero matches
// surface as ErrNotFound so the handler can answer 404.
func (s *CatalogService) Search(ctx context.Context, f SearchFilter) ([]models.Book, error) {
	title := strings.TrimSpace(f.Title)
	author := strings.TrimSpace(f.Author)
	isbn := strings.TrimSpace(f.ISBN)
	if title == "" && author == "" && isbn == "" {
		return nil, fmt.Errorf("%w: provide at least one of title, author, isbn", ErrValidation)
	}

	books, err := s.books.Search(ctx, title, author, isbn)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNotFound
	}
	return books, nil
}

func validateBookInput(input BookInput) error {
	var missing []string
	if strings.TrimSpace(input.ISBN) == "" {
		missing = append(missing, "isbn")
	}
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Author) == "" {
		missing = append(missing, "author")
	}
	if input.PublishedYear == 0 {
		missing = append(missing, "published_year")
	}
	if input.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if *input.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return nil
}
