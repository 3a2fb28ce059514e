package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Cookie lifetime mirrors the token TTL.
const tokenCookieMaxAge = 24 * 60 * 60

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signUpRequest  true  "Account details"
// @Success      201  {object}  map[string]int64  "id"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(input.Name, input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("sign_up_failed", "email", input.Email, "err", err)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Sign in
// @Description  Issues a JWT, returned in the body and set as an httpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signInRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "token"
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("sign_in_failed", "email", input.Email, "err", err)
		}
		h.respondError(c, err)
		return
	}

	// httpOnly + SameSite=Strict keeps the token away from scripts and
	// cross-site requests. Secure is off so local HTTP development works.
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(tokenCookieName, token, tokenCookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"token": token})
}
