package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/careaxis/hms-api/internal/model"
	redisstore "github.com/careaxis/hms-api/internal/repository/redis"
	"github.com/careaxis/hms-api/internal/service/access"
	"github.com/careaxis/hms-api/internal/service/session"
	"github.com/careaxis/hms-api/pkg/auth"
)

type stubUserRepo struct {
	user *model.User
}

func (r *stubUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, errors.New("user not found")
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, errors.New("user not found")
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (r *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

type stubMenuRepo struct {
	menu model.Menu
}

func (r *stubMenuRepo) MenuForRole(ctx context.Context, roleName string) (model.Menu, error) {
	return r.menu, nil
}

type noopEmail struct{}

func (noopEmail) SendPasswordReset(ctx context.Context, email, token string) error { return nil }
func (noopEmail) SendWelcome(ctx context.Context, email, name string) error        { return nil }
func (noopEmail) SendCustom(ctx context.Context, to, subject, content string) error {
	return nil
}

type guardEnv struct {
	mw    *AuthMiddleware
	token string
}

// newGuardEnv logs the given user in against a real session service
// backed by miniredis and returns a guard ready to wire into routes.
func newGuardEnv(t *testing.T, user *model.User, menu model.Menu) *guardEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redisstore.NewStoreFromClient(client, time.Hour, zerolog.Nop())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user.PasswordHash = string(hash)
	user.Status = model.UserStatusActive

	sessions := session.NewService(
		&stubUserRepo{user: user},
		&stubMenuRepo{menu: menu},
		store,
		store,
		auth.NewJWTService("test-secret", time.Hour, "hms-api"),
		noopEmail{},
		func(ctx context.Context) (uuid.UUID, error) { return uuid.New(), nil },
		zerolog.Nop(),
		nil,
	)

	resp, err := sessions.Login(context.Background(), user.Username, "password123")
	require.NoError(t, err)

	checker := access.NewChecker([]string{"telecaller/mynumbers"}, nil, zerolog.Nop(), nil)
	mw := NewAuthMiddleware(sessions, checker, time.Minute, time.Minute)
	return &guardEnv{mw: mw, token: resp.AccessToken}
}

func guardedRouter(mw *AuthMiddleware) *gin.Engine {
	r := gin.New()
	grp := r.Group("/", mw.Authenticate())
	grp.GET("/patients", mw.RequireModule("admin/patients", model.ActionView), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	grp.DELETE("/patients", mw.RequireModule("admin/patients", model.ActionDelete), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	grp.GET("/my-numbers", mw.RequireModule("telecaller/mynumbers", model.ActionView), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func staffUser() *model.User {
	return &model.User{
		Base:     model.Base{ID: uuid.New()},
		Username: "drsmith",
		RoleName: "Staff",
	}
}

func staffMenu() model.Menu {
	return model.Menu{
		{Path: "admin/patients", Actions: model.Actions{View: true, Add: true, Edit: true}},
	}
}

func TestAuthenticateNoToken(t *testing.T) {
	env := newGuardEnv(t, staffUser(), staffMenu())
	r := guardedRouter(env.mw)

	w := doRequest(r, http.MethodGet, "/patients", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthenticateBadToken(t *testing.T) {
	env := newGuardEnv(t, staffUser(), staffMenu())
	r := guardedRouter(env.mw)

	w := doRequest(r, http.MethodGet, "/patients", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireModuleGranted(t *testing.T) {
	env := newGuardEnv(t, staffUser(), staffMenu())
	r := guardedRouter(env.mw)

	w := doRequest(r, http.MethodGet, "/patients", env.token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireModuleDenied(t *testing.T) {
	env := newGuardEnv(t, staffUser(), staffMenu())
	r := guardedRouter(env.mw)

	w := doRequest(r, http.MethodDelete, "/patients", env.token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The denial body carries a route the client can fall back to.
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/dashboard", body["fallback"])
}

func TestRequireModuleAdminBypass(t *testing.T) {
	admin := staffUser()
	admin.Username = "root"
	admin.RoleName = "Administrator"
	// No menu at all: the bypass must not consult it.
	env := newGuardEnv(t, admin, nil)
	r := guardedRouter(env.mw)

	w := doRequest(r, http.MethodDelete, "/patients", env.token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireModuleAllowList(t *testing.T) {
	env := newGuardEnv(t, staffUser(), staffMenu())
	r := guardedRouter(env.mw)

	w := doRequest(r, http.MethodGet, "/my-numbers", env.token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireModuleCachesDecision(t *testing.T) {
	env := newGuardEnv(t, staffUser(), staffMenu())
	r := guardedRouter(env.mw)

	for i := 0; i < 3; i++ {
		w := doRequest(r, http.MethodGet, "/patients", env.token)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	for i := 0; i < 3; i++ {
		w := doRequest(r, http.MethodDelete, "/patients", env.token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}
