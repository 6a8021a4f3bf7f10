package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockpitforge/internal/config"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
)

func newSessionTestEngine(authService *service.AuthService) (*gin.Engine, *struct {
	userID    uint
	sessionID string
}) {
	gin.SetMode(gin.TestMode)
	captured := &struct {
		userID    uint
		sessionID string
	}{}
	engine := gin.New()
	engine.Use(SessionMiddleware(authService))
	engine.GET("/probe", func(c *gin.Context) {
		if v, ok := c.Get("user_id"); ok {
			captured.userID, _ = v.(uint)
		}
		if v, ok := c.Get("session_id"); ok {
			captured.sessionID, _ = v.(string)
		}
		c.Status(http.StatusOK)
	})
	return engine, captured
}

func TestSessionMiddlewareMintsGuestSession(t *testing.T) {
	engine, captured := newSessionTestEngine(nil)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest("GET", "/probe", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", recorder.Code)
	}
	echoed := recorder.Header().Get("X-Session-ID")
	if echoed == "" {
		t.Fatalf("minted session id must be echoed in the response header")
	}
	if captured.sessionID != echoed {
		t.Fatalf("context session %q differs from echoed %q", captured.sessionID, echoed)
	}
}

func TestSessionMiddlewareKeepsProvidedSession(t *testing.T) {
	engine, captured := newSessionTestEngine(nil)

	request := httptest.NewRequest("GET", "/probe", nil)
	request.Header.Set("X-Session-ID", "guest-abc")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	if captured.sessionID != "guest-abc" {
		t.Fatalf("session want guest-abc got %q", captured.sessionID)
	}
	if recorder.Header().Get("X-Session-ID") != "guest-abc" {
		t.Fatalf("provided session id must be echoed unchanged")
	}
}

func TestSessionMiddlewareRejectsBadBearer(t *testing.T) {
	authService := service.NewAuthService(nil,
		config.JWTConfig{SecretKey: "admin-secret-admin-secret-admin-se"},
		config.JWTConfig{SecretKey: "user-secret-user-secret-user-secre"},
	)
	engine, captured := newSessionTestEngine(authService)

	request := httptest.NewRequest("GET", "/probe", nil)
	request.Header.Set("Authorization", "Bearer not-a-real-token")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", recorder.Code)
	}
	if captured.userID != 0 || captured.sessionID != "" {
		t.Fatalf("aborted request must not set identity")
	}

	request = httptest.NewRequest("GET", "/probe", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("non bearer scheme want 401 got %d", recorder.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest("GET", "/probe", nil))
	if recorder.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id must be generated when absent")
	}

	request := httptest.NewRequest("GET", "/probe", nil)
	request.Header.Set("X-Request-ID", "fixed-id")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)
	if recorder.Header().Get("X-Request-ID") != "fixed-id" {
		t.Fatalf("provided request id must be kept")
	}
}
