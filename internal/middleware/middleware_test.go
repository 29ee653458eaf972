package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	autherrors "go-directory/internal/auth/errors"
	"go-directory/internal/config"
	"go-directory/internal/domain"
	"go-directory/internal/middleware"
	"go-directory/internal/shared/contextutil"
	"go-directory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeParser struct {
	principal domain.Principal
	err       error
	gotDomain config.SigningDomain
}

func (f *fakeParser) Parse(_ string, d config.SigningDomain) (domain.Principal, error) {
	f.gotDomain = d
	return f.principal, f.err
}

type fakeRBAC struct {
	allowed map[string]bool
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.allowed[string(req.Role)+":"+req.Resource+":"+req.Action], nil
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.ApiEnvelope {
	t.Helper()
	var env response.ApiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthenticate(t *testing.T) {
	companyID := uuid.New()
	p := domain.Principal{SubjectID: uuid.New(), Role: domain.RoleCompanyAdmin, CompanyID: &companyID}

	t.Run("missing bearer", func(t *testing.T) {
		r := setupRouter()
		r.GET("/x", middleware.Authenticate(&fakeParser{}, config.DomainAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, decode(t, w).Ok)
	})

	t.Run("expired token", func(t *testing.T) {
		r := setupRouter()
		r.GET("/x", middleware.Authenticate(&fakeParser{err: autherrors.ErrTokenExpired}, config.DomainAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), autherrors.ErrTokenExpired.Message)
	})

	t.Run("valid token attaches principal", func(t *testing.T) {
		parser := &fakeParser{principal: p}
		r := setupRouter()
		r.GET("/x", middleware.Authenticate(parser, config.DomainEmployee), func(c *gin.Context) {
			got, ok := middleware.PrincipalFrom(c)
			assert.True(t, ok)
			assert.Equal(t, p, got)

			fromCtx, ok := contextutil.GetPrincipal(c.Request.Context())
			assert.True(t, ok)
			assert.Equal(t, p, fromCtx)
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, config.DomainEmployee, parser.gotDomain)
	})
}

func TestRBACAuthorize(t *testing.T) {
	rbac := &fakeRBAC{allowed: map[string]bool{"superAdmin:tenant:create": true}}

	run := func(role domain.Role) int {
		r := setupRouter()
		r.POST("/tenants",
			middleware.Authenticate(&fakeParser{principal: domain.Principal{SubjectID: uuid.New(), Role: role}}, config.DomainAdmin),
			middleware.RBACAuthorize(rbac, domain.ResourceTenant, domain.ActionCreate),
			func(c *gin.Context) { c.Status(http.StatusCreated) },
		)
		req := httptest.NewRequest(http.MethodPost, "/tenants", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, run(domain.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, run(domain.RoleCompanyAdmin))
}

func TestRequestIDAndContextLogger(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) {
		assert.Equal(t, "rid-1", contextutil.GetRequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-1", w.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.GET("/x", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIdempotency(t *testing.T) {
	const ttl = time.Hour
	cacheKey := "idemp:/tenants:anonymous:key-1"
	lockKey := cacheKey + ":lock"

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/tenants", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		return req
	}

	t.Run("first call runs and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.Regexp().ExpectSet(cacheKey, `.*`, ttl).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		calls := 0
		r := setupRouter()
		r.POST("/tenants", middleware.Idempotency(rdb, ttl), func(c *gin.Context) {
			calls++
			response.Success(c, http.StatusCreated, gin.H{"id": "c-1"}, nil)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		stored, _ := json.Marshal(map[string]any{
			"status":       http.StatusCreated,
			"content_type": "application/json",
			"body":         []byte(`{"ok":true,"data":{"id":"c-1"}}`),
		})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		r := setupRouter()
		r.POST("/tenants", middleware.Idempotency(rdb, ttl), func(c *gin.Context) {
			t.Fatal("handler must not run on replay")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"c-1"}}`, w.Body.String())
	})

	t.Run("concurrent duplicate rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		r := setupRouter()
		r.POST("/tenants", middleware.Idempotency(rdb, ttl), func(c *gin.Context) {
			t.Fatal("handler must not run while locked")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})

	t.Run("failed call is not stored", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectDel(lockKey).SetVal(1)

		r := setupRouter()
		r.POST("/tenants", middleware.Idempotency(rdb, ttl), func(c *gin.Context) {
			c.Status(http.StatusConflict)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
