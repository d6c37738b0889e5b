package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"elysee/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, secret, role, typ string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "3f2a9c10-0000-4000-8000-000000000001",
		"email":   "gerant@elysee.tn",
		"role":    role,
		"typ":     typ,
		"exp":     time.Now().Add(dur).Unix(),
		"iat":     time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func ginTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	r.GET("/admin", middleware.RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := ginTestRouter()
	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"sans token", "", http.StatusUnauthorized},
		{"access valide", signToken(t, testSecret, "secretaire", "access", time.Hour), http.StatusOK},
		{"refresh refusé", signToken(t, testSecret, "admin", "refresh", time.Hour), http.StatusUnauthorized},
		{"expiré", signToken(t, testSecret, "admin", "access", -time.Minute), http.StatusUnauthorized},
		{"mauvaise clé", signToken(t, "autre-secret", "admin", "access", time.Hour), http.StatusUnauthorized},
		{"illisible", "abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, get(r, "/protected", tc.token).Code)
		})
	}
}

func TestJWTAuth_ClaimsExposees(t *testing.T) {
	w := get(ginTestRouter(), "/protected", signToken(t, testSecret, "collaborateur", "access", time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"3f2a9c10-0000-4000-8000-000000000001","role":"collaborateur"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := ginTestRouter()
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", signToken(t, testSecret, "secretaire", "access", time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", signToken(t, testSecret, "", "access", time.Hour)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", signToken(t, testSecret, "admin", "access", time.Hour)).Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RequestIDKey)) })

	w := get(r, "/", "")
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ouvert := gin.New()
	ouvert.Use(middleware.CORS(nil))
	ouvert.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, "*", get(ouvert, "/", "").Header().Get("Access-Control-Allow-Origin"))

	r := gin.New()
	r.Use(middleware.CORS([]string{"https://app.elysee.tn"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, want := range map[string]string{
		"https://app.elysee.tn": "https://app.elysee.tn",
		"https://evil.example":  "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
	}

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/", func(c *gin.Context) { panic("boum") })

	w := get(r, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boum")
}

func appels(r http.Handler, n int, prepare func(*http.Request)) []int {
	codes := make([]int, n)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.42.0.7:5555"
		if prepare != nil {
			prepare(req)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	return codes
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimiter(2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, appels(r, 3, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.42.0.7:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_LimiteNulleDesactive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimiter(0, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, code := range appels(r, 50, nil) {
		require.Equal(t, http.StatusOK, code)
	}
}

func TestLimiteurs_CompteursSepares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.LoginRateLimiter(1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r2 := gin.New()
	r2.Use(middleware.LoginRateLimiter(1))
	r2.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, appels(r, 2, nil))
	assert.Equal(t, []int{http.StatusOK}, appels(r2, 1, nil))
}

func TestImportRateLimiter_ParUtilisateur(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.JWTAuth(testSecret), middleware.ImportRateLimiter(1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	avec := func(token string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }
	}
	gerant := signToken(t, testSecret, "admin", "access", time.Hour)
	autre, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "3f2a9c10-0000-4000-8000-000000000002",
		"role":    "admin",
		"typ":     "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// same IP, two users: each has its own hourly quota
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, appels(r, 2, avec(gerant)))
	assert.Equal(t, []int{http.StatusOK}, appels(r, 1, avec(autre)))
}

func TestLimiteur_Purger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := middleware.NewLimiteur("test", 5, time.Minute, middleware.ParIP, "stop")
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	appels(r, 1, nil)
	require.Equal(t, 1, l.Taille())
	assert.Equal(t, 0, l.Purger(time.Now()))
	assert.Equal(t, 1, l.Purger(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, l.Taille())
}
