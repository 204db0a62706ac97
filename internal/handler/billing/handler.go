package billing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/billing"
	"github.com/careaxis/hms-api/pkg/httputil"
)

const modulePath = "admin/collections"

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/collections", auth.Authenticate())
	{
		grp.GET("", auth.RequireModule(modulePath, model.ActionView), h.List)
		grp.GET("/:id", auth.RequireModule(modulePath, model.ActionView), h.Get)
		grp.GET("/day-total", auth.RequireModule(modulePath, model.ActionView), h.DayTotal)
		grp.POST("", auth.RequireModule(modulePath, model.ActionAdd), h.Create)
	}
}

func (h *Handler) List(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	page, limit := httputil.PageParams(c)
	list, total, err := h.svc.List(c.Request.Context(), branchID, c.Query("search"), limit, httputil.Offset(page, limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to fetch collections"))
		return
	}

	c.JSON(http.StatusOK, httputil.NewPage(list, page, limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid collection id"))
		return
	}

	col, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("collection not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(col))
}

func (h *Handler) Create(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	var req model.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	col, err := h.svc.Create(c.Request.Context(), branchID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to record collection"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(col))
}

func (h *Handler) DayTotal(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	total, err := h.svc.DayTotal(c.Request.Context(), branchID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to total collections"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"date": day.Format("2006-01-02"), "total": total}))
}
