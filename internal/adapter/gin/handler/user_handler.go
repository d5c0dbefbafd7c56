package handler

import (
	"errors"
	"net/http"

	"decorator-user-service/internal/usecase/user"
	pkgerrors "decorator-user-service/pkg/errors"
	"decorator-user-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RegisterRoutes mounts the user endpoints on rg.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("/:id", h.GetUser)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithContext(ctx, h.log)

	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		// Non-UUID ids never match the route, same as an unknown id.
		log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}

	u, err := h.uc.GetUser(ctx, id)
	if err != nil {
		h.handleError(c, log, err)
		return
	}
	if u == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	})
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, log *zap.Logger, err error) {
	code := pkgerrors.Code(err)

	var statuser pkgerrors.GRPCStatuser
	message := "An internal error occurred"
	if errors.As(err, &statuser) && code != codes.Internal {
		message = statuser.GRPCStatus().Message()
	}

	switch code {
	case codes.InvalidArgument:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: message})
	case codes.Canceled:
		// Client went away; nothing useful to write.
		log.Info("request canceled", zap.Error(err))
		c.Status(499)
	case codes.DeadlineExceeded:
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "timeout", Message: "The request timed out"})
	default:
		log.Error("Gin GetUser failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "An internal error occurred"})
	}
}
