package handlers

import (
	"net/http"
	"time"

	"postboard/internal/logger"
	"postboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultAuthHeader = "x-auth-token"
	rootBanner        = "postboard api"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	authHeader   string
	authScheme   string
	feedInterval time.Duration
}

type Option func(*Handler)

// WithTokenTransport sets the request header that carries the session token.
// A non-empty scheme (e.g. "Bearer") requires the value "<scheme> <token>".
func WithTokenTransport(header, scheme string) Option {
	return func(h *Handler) {
		if header != "" {
			h.authHeader = header
		}
		h.authScheme = scheme
	}
}

// WithFeedInterval sets the default push interval of the posts feed.
func WithFeedInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.feedInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	registerValidators()
	h := &Handler{
		services:     services,
		log:          log,
		authHeader:   defaultAuthHeader,
		feedInterval: defaultInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/api/users", h.register)
	r.POST("/api/login", h.login)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api", h.authMiddleware)
	{
		api.GET("/auth", h.whoami)
		h.registerPostRoutes(api)
	}
}

func (h *Handler) registerPostRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/feed", h.wsFeed)
		posts.GET("/:id", h.getPost)
		posts.PUT("/:id", h.updatePost)
		posts.DELETE("/:id", h.deletePost)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, rootBanner)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
