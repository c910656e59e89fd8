package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	r := gin.New()
	r.Use(RequestID(), StructuredLogger(logger), ErrorHandler(logger), Recovery(logger))
	return r
}

func TestRequestIDIsGeneratedAndEchoed(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(&buf)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
	if !strings.Contains(buf.String(), "request_id=abc-123") {
		t.Errorf("access log is missing the request id: %s", buf.String())
	}
}

func TestErrorHandlerHidesDetails(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(&buf)
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("error detail leaked to client: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Internal server error") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if !strings.Contains(buf.String(), "password authentication failed") {
		t.Errorf("error was not logged: %s", buf.String())
	}
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(&buf)
	r.GET("/partial", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": false})
		_ = c.Error(errors.New("late failure"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("status %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestRecoveryLogsPanicWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(&buf)
	r.GET("/panic", func(c *gin.Context) {
		panic("index out of range [3] with length 2")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Internal server error"`) ||
		!strings.Contains(w.Body.String(), `"request_id":"req-42"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "index out of range") {
		t.Errorf("panic detail leaked to client: %s", w.Body.String())
	}

	logs := buf.String()
	if !strings.Contains(logs, "Recovered from panic") || !strings.Contains(logs, "index out of range") {
		t.Errorf("panic was not logged: %s", logs)
	}
	if !strings.Contains(logs, "request_id=req-42") || !strings.Contains(logs, "status=500") {
		t.Errorf("access log is missing the request id or status: %s", logs)
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut) {
		t.Errorf("PUT not allowed: %q", w.Header().Get("Access-Control-Allow-Methods"))
	}
}
