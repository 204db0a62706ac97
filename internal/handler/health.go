package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck answers liveness probes. It reports process health only;
// database and redis problems surface through the request paths that
// use them, not here.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"status": "healthy"}))
}
