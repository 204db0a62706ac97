package branch

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	branchsvc "github.com/careaxis/hms-api/internal/service/branch"
	"github.com/careaxis/hms-api/internal/service/session"
)

type Handler struct {
	branches *branchsvc.Service
	sessions *session.Service
}

func NewHandler(branches *branchsvc.Service, sessions *session.Service) *Handler {
	return &Handler{branches: branches, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/branches", auth.Authenticate())
	{
		grp.GET("", h.List)
		grp.GET("/current", h.Current)
		grp.POST("/switch", h.Switch)
	}
}

func (h *Handler) List(c *gin.Context) {
	branches, err := h.branches.Branches()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, handler.NewErrorResponse("branch catalog not loaded"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(branches))
}

func (h *Handler) Current(c *gin.Context) {
	current, err := h.branches.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, handler.NewErrorResponse("branch catalog not loaded"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(current))
}

// Switch changes the active branch and rescopes the caller's session to
// it. Every subscriber is notified so open pages refetch their data.
func (h *Handler) Switch(c *gin.Context) {
	var req model.SwitchBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.branches.Switch(c.Request.Context(), req.BranchID); err != nil {
		switch {
		case errors.Is(err, branchsvc.ErrUnknownBranch):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown branch"))
		case errors.Is(err, branchsvc.ErrNotInitialized):
			c.JSON(http.StatusServiceUnavailable, handler.NewErrorResponse("branch catalog not loaded"))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to switch branch"))
		}
		return
	}

	token := c.GetString(middleware.ContextToken)
	if err := h.sessions.SwitchLocation(c.Request.Context(), token, req.BranchID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update session location"))
		return
	}

	current, _ := h.branches.Current()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(current))
}
