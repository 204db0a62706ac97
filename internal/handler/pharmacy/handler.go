package pharmacy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/pharmacy"
	"github.com/careaxis/hms-api/pkg/httputil"
)

const modulePath = "admin/pharmacy"

type Handler struct {
	svc *pharmacy.Service
}

func NewHandler(svc *pharmacy.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/prescriptions", auth.Authenticate())
	{
		grp.GET("", auth.RequireModule(modulePath, model.ActionView), h.List)
		grp.GET("/:id", auth.RequireModule(modulePath, model.ActionView), h.Get)
		grp.POST("", auth.RequireModule(modulePath, model.ActionAdd), h.Create)
		grp.POST("/:id/dispense", auth.RequireModule(modulePath, model.ActionEdit), h.Dispense)
		grp.POST("/:id/cancel", auth.RequireModule(modulePath, model.ActionDelete), h.Cancel)
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
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to fetch prescriptions"))
		return
	}

	c.JSON(http.StatusOK, httputil.NewPage(list, page, limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription id"))
		return
	}

	rx, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("prescription not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rx))
}

func (h *Handler) Create(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rx, err := h.svc.Create(c.Request.Context(), branchID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create prescription"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rx))
}

func (h *Handler) Dispense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription id"))
		return
	}

	if err := h.svc.Dispense(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("prescription dispensed"))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription id"))
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to cancel prescription"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("prescription cancelled"))
}
