package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/careaxis/hms-api/internal/handler"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/service/access"
	"github.com/careaxis/hms-api/internal/service/session"
)

const (
	ContextSession = "session"
	ContextToken   = "token"

	loginRoute     = "/login"
	dashboardRoute = "/dashboard"
)

// AuthMiddleware is the route guard: it authenticates the bearer token
// and gates each module route on the session's permission menu.
type AuthMiddleware struct {
	sessions *session.Service
	checker  *access.Checker
	// Decisions are deterministic per (token, path, action), so they
	// are cached for the life of the session.
	decisions *cache.Cache
}

func NewAuthMiddleware(sessions *session.Service, checker *access.Checker, decisionTTL, cleanupInterval time.Duration) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:  sessions,
		checker:   checker,
		decisions: cache.New(decisionTTL, cleanupInterval),
	}
}

// Authenticate verifies the bearer token and loads the session into the
// request context. A missing or invalid token yields 401 with a
// redirect hint to the login route; nothing protected is rendered.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			m.redirectToLogin(c, "missing authorization header")
			return
		}

		sess, err := m.sessions.Session(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to load session"))
			c.Abort()
			return
		}
		if sess == nil {
			m.redirectToLogin(c, "invalid or expired token")
			return
		}

		c.Set(ContextToken, token)
		c.Set(ContextSession, sess)
		c.Next()
	}
}

// RequireModule gates a route on (module path, action). Must run after
// Authenticate. The decision reads only already-loaded session state.
func (m *AuthMiddleware) RequireModule(path string, action model.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			m.redirectToLogin(c, "no session")
			return
		}

		key := fmt.Sprintf("%s|%s|%s", sess.Token, path, action)
		if cached, found := m.decisions.Get(key); found {
			if cached.(bool) {
				c.Next()
			} else {
				m.denied(c)
			}
			return
		}

		decision := m.checker.Check(sess, path, action)
		m.decisions.Set(key, decision.Allowed, cache.DefaultExpiration)

		if !decision.Allowed {
			m.denied(c)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) redirectToLogin(c *gin.Context, msg string) {
	c.Header("Location", loginRoute)
	c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(msg))
	c.Abort()
}

func (m *AuthMiddleware) denied(c *gin.Context) {
	c.JSON(http.StatusForbidden, handler.NewAccessDeniedResponse(dashboardRoute))
	c.Abort()
}

// SessionFromContext returns the session Authenticate stored, or nil.
func SessionFromContext(c *gin.Context) *model.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, ok := v.(*model.Session)
	if !ok {
		return nil
	}
	return sess
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
