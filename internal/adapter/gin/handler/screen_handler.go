package handler

import (
	"net/http"

	"user-admin-service/internal/controller"
	"user-admin-service/internal/domain/user"
	apperrors "user-admin-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScreenHandler exposes the users-screen state over HTTP. It is the
// view-layer binding for the UserListController: reads return the current
// screen state, mutations drive the controller so they produce toasts and
// a wholesale list refresh.
type ScreenHandler struct {
	ctrl *controller.UserListController
	log  *zap.Logger
}

// NewScreenHandler creates a new ScreenHandler instance
func NewScreenHandler(ctrl *controller.UserListController, log *zap.Logger) *ScreenHandler {
	return &ScreenHandler{ctrl: ctrl, log: log}
}

// NotificationResponse is the active toast in screen state responses.
type NotificationResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// ScreenStateResponse is the full users-screen state.
type ScreenStateResponse struct {
	Users        []UserResponse        `json:"users"`
	Notification *NotificationResponse `json:"notification"`
}

// State handles GET /v1/screen/users
func (h *ScreenHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

// Refresh handles POST /v1/screen/users/refresh
func (h *ScreenHandler) Refresh(c *gin.Context) {
	if err := h.ctrl.Refresh(c.Request.Context()); err != nil {
		h.screenError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.state())
}

// Create handles POST /v1/screen/users
func (h *ScreenHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid screen create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.ctrl.Create(c.Request.Context(), user.User{Name: req.Name, Email: req.Email}); err != nil {
		h.screenError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.state())
}

// Edit handles PUT /v1/screen/users/:id
func (h *ScreenHandler) Edit(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid screen edit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	u := user.User{ID: c.Param("id"), Name: req.Name, Email: req.Email}
	if err := h.ctrl.Edit(c.Request.Context(), u); err != nil {
		h.screenError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.state())
}

// Delete handles DELETE /v1/screen/users/:id
func (h *ScreenHandler) Delete(c *gin.Context) {
	if err := h.ctrl.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.screenError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.state())
}

// state snapshots the controller into the response shape.
func (h *ScreenHandler) state() ScreenStateResponse {
	users := h.ctrl.Users()
	resp := ScreenStateResponse{
		Users: make([]UserResponse, len(users)),
	}
	for i, u := range users {
		resp.Users[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}
	if n := h.ctrl.Notification(); n != nil {
		resp.Notification = &NotificationResponse{
			Message: n.Message,
			Kind:    string(n.Kind),
		}
	}
	return resp
}

// screenError maps controller errors onto HTTP responses.
func (h *ScreenHandler) screenError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		h.log.Error("screen operation failed", zap.Error(err))
	}
	c.JSON(status, ErrorResponse{
		Error:   "screen_error",
		Message: err.Error(),
	})
}
