package handlers

import (
	"errors"
	"net/http"

	"library_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const msgInternal = "internal server error"

// respondError maps a domain error to an HTTP status and a {message} body.
// Handlers never translate errors themselves; everything funnels through
// here so the taxonomy stays in one place.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := msgInternal

	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrBorrowLimit):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, service.ErrDuplicateISBN),
		errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
		msg = err.Error()
	default:
		if h.log != nil {
			h.log.Errorw("request_failed", "path", c.FullPath(), "err", err)
		}
	}

	c.JSON(status, gin.H{"message": msg})
}

// abortWithMessage writes a {message} body and stops the handler chain.
func abortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// bindJSONOrBadRequest binds the request body into dst, answering 400 on
// malformed input. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body: " + err.Error()})
		return false
	}
	return true
}
