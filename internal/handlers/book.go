package handlers

import (
	"net/http"
	"strconv"

	"library_backend/internal/models"
	"library_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter, answering 400 on
// garbage. Returns false if the request was already handled.
func (h *Handler) parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return id, true
}

// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body  service.BookInput  true  "Book fields"
// @Success      201  {object}  models.Book
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/book [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var input service.BookInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	book, err := h.services.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// @Summary      Update a book
// @Description  Partial update; absent fields are left untouched.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "Book ID"
// @Param        body  body  models.BookPatch  true  "Fields to change"
// @Success      201  {object}  models.Book
// @Failure      404  {object}  map[string]string
// @Router       /api/book/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch models.BookPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}

	book, err := h.services.Catalog.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	// 201 on update is odd but it is the contract clients already rely on.
	c.JSON(http.StatusCreated, book)
}

// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      201  {object}  models.Book  "the removed record"
// @Failure      404  {object}  map[string]string
// @Router       /api/book/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := h.services.Catalog.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {array}  models.Book
// @Router       /api/book [get]
// @Security     BearerAuth
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Search books
// @Description  title/author are case-insensitive substring matches, isbn is exact.
// @Tags         books
// @Produce      json
// @Param        title   query  string  false  "Title fragment"
// @Param        author  query  string  false  "Author fragment"
// @Param        isbn    query  string  false  "Exact ISBN"
// @Success      200  {array}   models.Book
// @Failure      404  {object}  map[string]string  "no matches"
// @Router       /api/book/search [get]
func (h *Handler) searchBooks(c *gin.Context) {
	books, err := h.services.Catalog.Search(c.Request.Context(), service.SearchFilter{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		ISBN:   c.Query("isbn"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Recommend books
// @Description  Up to 5 unread books by authors the user has borrowed before.
// @Tags         books
// @Produce      json
// @Success      200  {array}  models.Book
// @Failure      401  {object}  map[string]string
// @Router       /api/book/recommend [get]
// @Security     BearerAuth
func (h *Handler) recommendBooks(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithMessage(c, http.StatusUnauthorized, "missing authentication token")
		return
	}

	books, err := h.services.Lending.Recommend(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}
