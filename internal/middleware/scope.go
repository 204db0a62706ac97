package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchScope resolves the branch a request's data is scoped to: an
// explicit locationId query parameter wins, otherwise the session's
// selected branch applies.
func BranchScope(c *gin.Context) (uuid.UUID, bool) {
	if raw := c.Query("locationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}

	sess := SessionFromContext(c)
	if sess == nil {
		return uuid.Nil, false
	}
	return sess.BranchID, true
}
