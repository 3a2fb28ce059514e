package handlers

import (
	"net/http"

	"library_backend/internal/logger"
	"library_backend/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Live activity feed (HTTP upgrade) on the same port.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		book := api.Group("/book")
		{
			// Search is the only open catalog endpoint.
			book.GET("/search", h.searchBooks)
			book.GET("/recommend", h.authenticate, h.recommendBooks)

			book.GET("", h.authenticate, h.listBooks)
			book.POST("", h.authenticate, h.admin, h.createBook)
			book.PATCH("/:id", h.authenticate, h.admin, h.updateBook)
			book.DELETE("/:id", h.authenticate, h.admin, h.deleteBook)
		}

		borrow := api.Group("/borrow", h.authenticate)
		{
			borrow.POST("/:bookId", h.borrowBook)
			borrow.POST("/return/:borrowId", h.returnBook)
		}

		api.GET("/activity", h.authenticate, h.getActivity)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
