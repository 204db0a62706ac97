package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/session"
)

type Handler struct {
	svc *session.Service
}

func NewHandler(svc *session.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/auth")
	{
		grp.POST("/login", h.Login)
		grp.POST("/forgot-password", h.ForgotPassword)
		grp.POST("/reset-password", h.ResetPassword)

		grp.POST("/logout", auth.Authenticate(), h.Logout)
		grp.GET("/me", auth.Authenticate(), h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrAccountLocked) {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("logged out successfully"))
}

// Me returns the session's user, menu and active location so a client
// can rebuild its state after a reload.
func (h *Handler) Me(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no session"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"user":      sess.User,
		"menu":      sess.Menu,
		"branch_id": sess.BranchID,
	}))
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		// Same response either way so the endpoint does not reveal
		// which emails exist.
		c.JSON(http.StatusOK, handler.NewSuccessResponse("if the email exists, a reset link will be sent"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("if the email exists, a reset link will be sent"))
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("password reset successfully"))
}
