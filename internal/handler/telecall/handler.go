package telecall

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/telecall"
	"github.com/careaxis/hms-api/pkg/httputil"
)

const (
	modulePath = "telecaller/callhistory"
	// mynumbersPath is on the guard's allow-list: any authenticated
	// user may view their own assigned numbers.
	mynumbersPath = "telecaller/mynumbers"
)

type Handler struct {
	svc *telecall.Service
}

func NewHandler(svc *telecall.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/telecalling", auth.Authenticate())
	{
		grp.GET("/calls", auth.RequireModule(modulePath, model.ActionView), h.CallHistory)
		grp.POST("/calls", auth.RequireModule(modulePath, model.ActionAdd), h.RecordCall)
		grp.GET("/my-numbers", auth.RequireModule(mynumbersPath, model.ActionView), h.MyNumbers)
	}
}

func (h *Handler) CallHistory(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	page, limit := httputil.PageParams(c)
	records, total, err := h.svc.CallHistory(c.Request.Context(), branchID, c.Query("search"), limit, httputil.Offset(page, limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to fetch call history"))
		return
	}

	c.JSON(http.StatusOK, httputil.NewPage(records, page, limit, total))
}

func (h *Handler) RecordCall(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	branchID, ok := middleware.BranchScope(c)
	if sess == nil || !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request scope"))
		return
	}

	var req model.CreateCallRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.svc.RecordCall(c.Request.Context(), branchID, sess.User.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to record call"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) MyNumbers(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no session"))
		return
	}

	page, limit := httputil.PageParams(c)
	numbers, total, err := h.svc.MyNumbers(c.Request.Context(), sess.User.ID, limit, httputil.Offset(page, limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to fetch assigned numbers"))
		return
	}

	c.JSON(http.StatusOK, httputil.NewPage(numbers, page, limit, total))
}
