package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"community-directory/internal/auth"
	"community-directory/internal/domain"
	"community-directory/internal/obs"
	"community-directory/internal/repository"
	"community-directory/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth     service.AuthService
	listings service.ListingService
	cookies  *auth.CookieManager
	logger   *logrus.Logger
	origins  []string
}

func NewHandler(authSvc service.AuthService, listings service.ListingService, cookies *auth.CookieManager, logger *logrus.Logger, allowedOrigins []string) *Handler {
	return &Handler{
		auth:     authSvc,
		listings: listings,
		cookies:  cookies,
		logger:   logger,
		origins:  allowedOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.origins))
	router.Use(obs.Instrument())
	router.Use(h.sessionResolver())

	router.GET("/metrics", obs.Handler())

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signUp)
		authGroup.POST("/signin", h.signIn)
		authGroup.POST("/signout", h.signOut)
		authGroup.GET("/me", h.requireSession(), h.me)
	}

	api := router.Group("/api")
	{
		api.POST("/listings", h.createListing)
		api.GET("/listings", h.listListings)
		api.GET("/listings/:id", h.getListing)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.auth.SignUp(c.Request.Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		obs.RecordAuth("signup", "failure")
		h.writeAuthError(c, err)
		return
	}

	obs.RecordAuth("signup", "success")
	h.cookies.Attach(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		obs.RecordAuth("signin", "failure")
		h.writeAuthError(c, err)
		return
	}

	obs.RecordAuth("signin", "success")
	h.cookies.Attach(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) signOut(c *gin.Context) {
	h.cookies.Clear(c)
	obs.RecordAuth("signout", "success")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	subject, _ := currentSubject(c)
	user, err := h.auth.GetByID(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// valid token but no matching record, treat as signed out
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// writeAuthError maps the auth error taxonomy onto status codes. Unknown
// failures are logged server-side and surfaced as an opaque 500.
func (h *Handler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
	case errors.Is(err, auth.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
	case errors.Is(err, auth.ErrStorageUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service temporarily unavailable"})
	default:
		h.logger.WithError(err).Error("auth request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type createListingRequest struct {
	Category    string `json:"category" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
}

// ListingResponse is the wire form of a directory entry.
type ListingResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Contact     string    `json:"contact"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Handler) createListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing := &domain.Listing{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Contact:     req.Contact,
	}
	// creation stays open to anonymous callers; attribute when a session exists
	if subject, ok := currentSubject(c); ok {
		listing.CreatedBy = subject
	}

	created, err := h.listings.Create(c.Request.Context(), listing)
	if err != nil {
		if errors.Is(err, service.ErrListingInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, listingToResponse(*created))
}

func (h *Handler) listListings(c *gin.Context) {
	listings, err := h.listings.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.WithError(err).Error("list listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]ListingResponse, len(listings))
	for i := range listings {
		resp[i] = listingToResponse(listings[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getListing(c *gin.Context) {
	listing, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		h.logger.WithError(err).Error("get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, listingToResponse(*listing))
}

func listingToResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Category:    l.Category,
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Contact:     l.Contact,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
	}
}
