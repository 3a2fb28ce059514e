package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Borrow a book
// @Tags         borrow
// @Produce      json
// @Param        bookId  path  int  true  "Book ID"
// @Success      201  {object}  models.Borrow
// @Failure      400  {object}  map[string]string  "borrow limit reached"
// @Failure      404  {object}  map[string]string
// @Router       /api/borrow/{bookId} [post]
// @Security     BearerAuth
func (h *Handler) borrowBook(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithMessage(c, http.StatusUnauthorized, "missing authentication token")
		return
	}
	bookID, ok := h.parseIDParam(c, "bookId")
	if !ok {
		return
	}

	borrow, err := h.services.Lending.Borrow(c.Request.Context(), user.ID, bookID)
	if err != nil {
		if h.log != nil {
			h.log.Infow("borrow_rejected", "user_id", user.ID, "book_id", bookID, "err", err)
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, borrow)
}

// @Summary      Return a borrowed book
// @Description  Stamps the return date. Returning twice overwrites the stamp.
// @Tags         borrow
// @Produce      json
// @Param        borrowId  path  int  true  "Borrow record ID"
// @Success      200  {object}  models.Borrow
// @Failure      404  {object}  map[string]string
// @Router       /api/borrow/return/{borrowId} [post]
// @Security     BearerAuth
func (h *Handler) returnBook(c *gin.Context) {
	borrowID, ok := h.parseIDParam(c, "borrowId")
	if !ok {
		return
	}

	borrow, err := h.services.Lending.Return(c.Request.Context(), borrowID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrow)
}

// @Summary      Library activity snapshot
// @Tags         activity
// @Produce      json
// @Success      200  {object}  models.ActivitySnapshot
// @Router       /api/activity [get]
// @Security     BearerAuth
func (h *Handler) getActivity(c *gin.Context) {
	snap, err := h.services.Activity.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
