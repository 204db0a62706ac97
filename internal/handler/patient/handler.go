package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/patient"
	"github.com/careaxis/hms-api/pkg/httputil"
)

const modulePath = "admin/patients"

type Handler struct {
	svc *patient.Service
}

func NewHandler(svc *patient.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/patients", auth.Authenticate())
	{
		grp.GET("", auth.RequireModule(modulePath, model.ActionView), h.List)
		grp.GET("/:id", auth.RequireModule(modulePath, model.ActionView), h.Get)
		grp.POST("", auth.RequireModule(modulePath, model.ActionAdd), h.Create)
		grp.PUT("/:id", auth.RequireModule(modulePath, model.ActionEdit), h.Update)
		grp.DELETE("/:id", auth.RequireModule(modulePath, model.ActionDelete), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	page, limit := httputil.PageParams(c)
	patients, total, err := h.svc.List(c.Request.Context(), branchID, c.Query("search"), limit, httputil.Offset(page, limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to fetch patients"))
		return
	}

	c.JSON(http.StatusOK, httputil.NewPage(patients, page, limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient id"))
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	branchID, ok := middleware.BranchScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid locationId"))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), branchID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to register patient"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient id"))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update patient"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to delete patient"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("patient deleted"))
}
