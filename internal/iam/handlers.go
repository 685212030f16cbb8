package iam

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/types"
)

// Handlers contains HTTP handlers for authentication and user management
type Handlers struct {
	service *Service
	logger  *logger.Logger
}

// NewHandlers creates new IAM HTTP handlers
func NewHandlers(service *Service, log *logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes registers IAM routes with the router
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Login)
		}

		users := v1.Group("/users")
		users.Use(h.AuthMiddleware())
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
		}
	}
}

// Login handles user authentication
func (h *Handlers) Login(c *gin.Context) {
	var credentials types.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	token, user, err := h.service.Login(&credentials)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"role":        user.Role,
			"full_name":   user.FullName,
			"permissions": Permissions(user.Role),
		},
	})
}

// ListUsers returns every user without password fields
func (h *Handlers) ListUsers(c *gin.Context) {
	users := h.service.ListUsers()
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// GetUser returns one user by id
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AuthMiddleware validates the bearer token and stores its claims in the
// request context
func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		claims, err := h.service.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequirePermission gates a route on the role permission matrix
func (h *Handlers) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		if !HasPermission(role.(types.UserRole), permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}

		c.Next()
	}
}

// handleError maps service errors to HTTP responses
func (h *Handlers) handleError(c *gin.Context, err error) {
	if mcErr, ok := err.(*types.MentcareError); ok {
		switch mcErr.Type {
		case types.ErrorTypeAuthentication:
			c.JSON(http.StatusUnauthorized, gin.H{"error": mcErr.Message})
		case types.ErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": mcErr.Message})
		case types.ErrorTypeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": mcErr.Message})
		default:
			h.logger.WithError(err).Error("Internal error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	h.logger.WithError(err).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
