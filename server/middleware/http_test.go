package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/funcroute/auth"
	"github.com/kbukum/funcroute/logger"
	"github.com/kbukum/funcroute/server/middleware"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_NoPanic(t *testing.T) {
	handler := middleware.Recovery(logger.Nop())(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRecovery_Panic(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.Recovery(logger.NewWriter(&buf, "test"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/test", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Fatalf("unexpected error message: %s", body["error"])
	}
	if !strings.Contains(buf.String(), "test panic") {
		t.Errorf("expected panic to be logged, got %s", buf.String())
	}
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID_GeneratesID(t *testing.T) {
	var seen, fromCtx string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.HeaderRequestID)
		fromCtx = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if seen == "" {
		t.Fatal("expected X-Request-Id in request headers")
	}
	if fromCtx != seen {
		t.Errorf("expected context request ID %q, got %q", seen, fromCtx)
	}
	if rr.Header().Get(middleware.HeaderRequestID) != seen {
		t.Error("expected the same X-Request-Id on the response")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(okHandler))

	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("X-Request-Id", "existing-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-Id"); got != "existing-id" {
		t.Errorf("expected existing-id, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORS(t *testing.T) {
	cfg := middleware.CORSConfig{
		AllowedOrigins:   []string{"https://app.example.com"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
	}

	tests := []struct {
		name        string
		method      string
		origin      string
		reqMethod   string
		wantStatus  int
		wantOrigin  string
		wantMethods string
	}{
		{"allowed origin", "GET", "https://app.example.com", "", http.StatusOK, "https://app.example.com", ""},
		{"preflight", "OPTIONS", "https://app.example.com", "POST", http.StatusNoContent, "https://app.example.com", "POST"},
		{"preflight for a disallowed method", "OPTIONS", "https://app.example.com", "DELETE", http.StatusNoContent, "", ""},
		{"disallowed origin", "GET", "https://evil.example.com", "", http.StatusOK, "", ""},
		{"no origin", "GET", "", "", http.StatusOK, "", ""},
		{"options without request method", "OPTIONS", "https://app.example.com", "", http.StatusOK, "https://app.example.com", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := middleware.CORS(cfg)(http.HandlerFunc(okHandler))
			req := httptest.NewRequest(tc.method, "/", http.NoBody)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.reqMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tc.reqMethod)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			h := rr.Header()
			if got := h.Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Errorf("expected allow-origin %q, got %q", tc.wantOrigin, got)
			}
			if got := h.Get("Access-Control-Allow-Methods"); got != tc.wantMethods {
				t.Errorf("expected allow-methods %q, got %q", tc.wantMethods, got)
			}
			if tc.wantOrigin != "" && h.Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("expected credentials header")
			}
			if tc.wantOrigin != "" && tc.reqMethod == "" && h.Get("Access-Control-Expose-Headers") != "X-Request-Id" {
				t.Errorf("expected exposed headers, got %q", h.Get("Access-Control-Expose-Headers"))
			}
		})
	}
}

func TestCORS_PreflightMaxAge(t *testing.T) {
	handler := middleware.CORS(middleware.CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 600})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest("OPTIONS", "/", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Max-Age") != "600" {
		t.Errorf("expected max age on preflight, got %q", rr.Header().Get("Access-Control-Max-Age"))
	}

	req = httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Max-Age") != "" {
		t.Error("max age belongs on preflight answers only")
	}
	if rr.Header().Get("Vary") != "Origin" {
		t.Errorf("expected Vary: Origin, got %q", rr.Header().Get("Vary"))
	}
}

func TestCORS_Wildcard(t *testing.T) {
	handler := middleware.CORS(middleware.CORSConfig{AllowedOrigins: []string{"*"}})(http.HandlerFunc(okHandler))
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Origin", "https://any.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("wildcard should allow any origin, got %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORS_PreflightSkipsRoutes(t *testing.T) {
	reached := false
	handler := middleware.CORS(middleware.CORSConfig{AllowedOrigins: []string{"*"}})(
		middleware.Auth(middleware.AuthConfig{Checker: auth.BearerToken("t")})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})),
	)

	req := httptest.NewRequest("OPTIONS", "/api/hello", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent || reached {
		t.Errorf("expected 204 before auth, got %d reached=%v", rr.Code, reached)
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestAuth(t *testing.T) {
	mw := middleware.Auth(middleware.AuthConfig{
		Checker:   auth.BearerToken("s3cret"),
		SkipPaths: []string{"/health"},
	})
	handler := mw(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid token", "/api", "Bearer s3cret", http.StatusOK},
		{"missing token", "/api", "", http.StatusUnauthorized},
		{"skipped path", "/health", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
			if tc.want == http.StatusUnauthorized {
				var body map[string]any
				if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if body["code"] != "UNAUTHORIZED" || body["message"] != "Unauthorized" {
					t.Errorf("unexpected body: %v", body)
				}
			}
		})
	}
}

func TestAuth_RejectionWithoutErrorPasses(t *testing.T) {
	silent := auth.CheckerFunc(func(auth.Request) auth.AuthResult {
		return auth.AuthResult{IsAuthorized: false}
	})
	handler := middleware.Auth(middleware.AuthConfig{Checker: silent})(http.HandlerFunc(okHandler))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Errorf("expected the request to reach the handler, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.RequestLogger(logger.NewWriter(&buf, "test"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/hello", http.NoBody))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q", buf.String())
	}
	if line["level"] != "warn" || line["status"] != float64(401) || line["path"] != "/api/hello" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestRequestLogger_ImplicitOKAndBytes(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.RequestLogger(logger.NewWriter(&buf, "test"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/hello", http.NoBody))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q", buf.String())
	}
	if line["status"] != float64(200) || line["bytes"] != float64(5) {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestRequestLogger_SkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	called := false
	handler := middleware.RequestLogger(logger.NewWriter(&buf, "test"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", http.NoBody))

	if !called {
		t.Error("handler should still be called for health endpoints")
	}
	if buf.Len() != 0 {
		t.Errorf("health requests should not be logged, got %s", buf.String())
	}
}

// ---------------------------------------------------------------------------
// BodySizeLimit
// ---------------------------------------------------------------------------

func TestBodySizeLimit(t *testing.T) {
	var readErr error
	called := false
	handler := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("under the limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("a", 512))))
		if rr.Code != http.StatusOK || readErr != nil {
			t.Errorf("expected readable body, got %d err=%v", rr.Code, readErr)
		}
	})

	t.Run("declared length over the limit", func(t *testing.T) {
		called = false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("a", 2048))))
		if called {
			t.Error("handler should not run for an oversized body")
		}
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rr.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body["code"] != "PAYLOAD_TOO_LARGE" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("unknown length over the limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("a", 2048)))
		req.ContentLength = -1
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if readErr == nil {
			t.Error("expected an error reading a body over the limit")
		}
	})
}

// ---------------------------------------------------------------------------
// Chain / GinWrap
// ---------------------------------------------------------------------------

func TestChain_Order(t *testing.T) {
	var order []string
	trace := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		}
	}

	handler := middleware.Chain(trace("m1"), trace("m2"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", http.NoBody))

	expected := []string{"m1-before", "m2-before", "handler", "m2-after", "m1-after"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, order)
	}
}

func TestGinWrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.GinWrap(middleware.RequestID()))
	engine.Use(middleware.GinWrap(middleware.Auth(middleware.AuthConfig{Checker: auth.BearerToken("t")})))

	reached := false
	engine.GET("/x", func(c *gin.Context) {
		reached = true
		if logger.RequestIDFromContext(c.Request.Context()) == "" {
			t.Error("request ID should be propagated to gin's request")
		}
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/x", http.NoBody))
	if rr.Code != http.StatusUnauthorized || reached {
		t.Fatalf("expected rejection before the handler, got %d reached=%v", rr.Code, reached)
	}

	req := httptest.NewRequest("GET", "/x", http.NoBody)
	req.Header.Set("Authorization", "Bearer t")
	rr = httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !reached {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// responseRecorder
// ---------------------------------------------------------------------------

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestRequestLogger_DelegatesFlush(t *testing.T) {
	fr := &flushRecorder{ResponseWriter: httptest.NewRecorder()}

	handler := middleware.RequestLogger(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(fr, httptest.NewRequest("GET", "/stream", http.NoBody))

	if !fr.flushed {
		t.Error("expected Flush to be delegated to underlying writer")
	}
}
