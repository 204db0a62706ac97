package lab

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/middleware"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/lab"
	"github.com/careaxis/hms-api/pkg/httputil"
)

const modulePath = "admin/labtestmaster"

type Handler struct {
	svc *lab.Service
}

func NewHandler(svc *lab.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	grp := r.Group("/lab-tests", auth.Authenticate())
	{
		grp.GET("", auth.RequireModule(modulePath, model.ActionView), h.List)
		grp.GET("/:id", auth.RequireModule(modulePath, model.ActionView), h.Get)
		grp.POST("", auth.RequireModule(modulePath, model.ActionAdd), h.Create)
		grp.PUT("/:id", auth.RequireModule(modulePath, model.ActionEdit), h.Update)
		grp.DELETE("/:id", auth.RequireModule(modulePath, model.ActionDelete), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, limit := httputil.PageParams(c)
	tests, total, err := h.svc.List(c.Request.Context(), c.Query("search"), limit, httputil.Offset(page, limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to fetch lab tests"))
		return
	}

	c.JSON(http.StatusOK, httputil.NewPage(tests, page, limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lab test id"))
		return
	}

	test, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("lab test not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(test))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	test, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create lab test"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(test))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lab test id"))
		return
	}

	var req model.UpdateLabTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	test, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update lab test"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(test))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lab test id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to delete lab test"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("lab test deleted"))
}
