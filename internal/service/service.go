package service

import (
	"context"

	"library_backend/internal/models"
	"library_backend/internal/repository"
)

type Authorization interface {
	SignUp(name, email, password string) (int64, error)
	GenerateToken(email, password string) (string, error)
	ParseToken(accessToken string) (int64, error)
	UserByID(id int64) (*models.User, error)
}

// Catalog exposes book CRUD and free-text search.
type Catalog interface {
	Create(ctx context.Context, input BookInput) (models.Book, error)
	Update(ctx context.Context, id int64, patch models.BookPatch) (models.Book, error)
	Delete(ctx context.Context, id int64) (models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Search(ctx context.Context, f SearchFilter) ([]models.Book, error)
}

// Lending tracks borrow/return activity and produces recommendations.
type Lending interface {
	Borrow(ctx context.Context, userID, bookID int64) (models.Borrow, error)
	Return(ctx context.Context, borrowID int64) (models.Borrow, error)
	Recommend(ctx context.Context, userID int64) ([]models.Book, error)
}

// Activity exposes read-only usage statistics.
type Activity interface {
	Snapshot(ctx context.Context) (models.ActivitySnapshot, error)
}

type Service struct {
	Catalog
	Lending
	Activity
	Authorization
}

func NewService(repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Catalog:       NewCatalogService(repos.Books),
		Lending:       NewLendingService(repos.Borrows, repos.Books),
		Activity:      NewActivityService(repos.Books, repos.Borrows),
		Authorization: NewAuthService(repos.Users, signingKey),
	}
}

// BookInput is the payload for creating a catalog record.
type BookInput struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	Quantity      *int   `json:"quantity"` // pointer so a missing field is distinguishable from 0
	Genre         string `json:"genre"`
}

// SearchFilter selects books by title/author substring and/or exact ISBN.
type SearchFilter struct {
	Title  string
	Author string
	ISBN   string
}
