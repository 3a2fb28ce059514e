package handlers

import (
	"context"
	"net/http"

	"library_backend/internal/models"
	"library_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service mocks ----

type mockAuth struct {
	signUpID      int64
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int64
	parseErr      error
	user          *models.User
	userErr       error

	lastSignUpName  string
	lastSignUpEmail string
	lastGenEmail    string
	lastParseToken  string
}

func (m *mockAuth) SignUp(name, email, password string) (int64, error) {
	m.lastSignUpName = name
	m.lastSignUpEmail = email
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(email, password string) (string, error) {
	m.lastGenEmail = email
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) UserByID(id int64) (*models.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: id, Name: "user", Email: "user@example.com"}, nil
}

type mockCatalog struct {
	createBook models.Book
	createErr  error
	updateBook models.Book
	updateErr  error
	deleteBook models.Book
	deleteErr  error
	listBooks  []models.Book
	listErr    error
	searchResp []models.Book
	searchErr  error

	lastCreate service.BookInput
	lastPatch  models.BookPatch
	lastID     int64
	lastFilter service.SearchFilter
}

func (m *mockCatalog) Create(ctx context.Context, input service.BookInput) (models.Book, error) {
	m.lastCreate = input
	return m.createBook, m.createErr
}

func (m *mockCatalog) Update(ctx context.Context, id int64, patch models.BookPatch) (models.Book, error) {
	m.lastID = id
	m.lastPatch = patch
	return m.updateBook, m.updateErr
}

func (m *mockCatalog) Delete(ctx context.Context, id int64) (models.Book, error) {
	m.lastID = id
	return m.deleteBook, m.deleteErr
}

func (m *mockCatalog) List(ctx context.Context) ([]models.Book, error) {
	return m.listBooks, m.listErr
}

func (m *mockCatalog) Search(ctx context.Context, f service.SearchFilter) ([]models.Book, error) {
	m.lastFilter = f
	return m.searchResp, m.searchErr
}

type mockLending struct {
	borrowResp    models.Borrow
	borrowErr     error
	returnResp    models.Borrow
	returnErr     error
	recommendResp []models.Book
	recommendErr  error

	lastBorrowUser   int64
	lastBorrowBook   int64
	lastReturnID     int64
	lastRecommendFor int64
}

func (m *mockLending) Borrow(ctx context.Context, userID, bookID int64) (models.Borrow, error) {
	m.lastBorrowUser = userID
	m.lastBorrowBook = bookID
	return m.borrowResp, m.borrowErr
}

func (m *mockLending) Return(ctx context.Context, borrowID int64) (models.Borrow, error) {
	m.lastReturnID = borrowID
	return m.returnResp, m.returnErr
}

func (m *mockLending) Recommend(ctx context.Context, userID int64) ([]models.Book, error) {
	m.lastRecommendFor = userID
	return m.recommendResp, m.recommendErr
}

type mockActivity struct {
	snap models.ActivitySnapshot
	err  error
}

func (m *mockActivity) Snapshot(ctx context.Context) (models.ActivitySnapshot, error) {
	return m.snap, m.err
}

// ---- Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
