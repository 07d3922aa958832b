package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/gin-gonic/gin"
)

func runRequest(t *testing.T, handler gin.HandlerFunc, headers map[string]string, inspect gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler)
	r.GET("/", inspect)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCorrelationIdMiddleware_AdoptsCallerHeader(t *testing.T) {
	var got string
	w := runRequest(t, CorrelationIdMiddleware(),
		map[string]string{"x-correlation-id": "run-77"},
		func(c *gin.Context) {
			got, _ = utils.GetCorrelationIdFromContext(c.Request.Context())
			c.Status(http.StatusNoContent)
		})
	if got != "run-77" {
		t.Errorf("correlation id in context = %q, want run-77", got)
	}
	if w.Header().Get("x-correlation-id") != "run-77" {
		t.Errorf("response header = %q, want run-77", w.Header().Get("x-correlation-id"))
	}
}

func TestCorrelationIdMiddleware_GeneratesWhenAbsent(t *testing.T) {
	var got string
	w := runRequest(t, CorrelationIdMiddleware(), nil,
		func(c *gin.Context) {
			got, _ = utils.GetCorrelationIdFromContext(c.Request.Context())
			c.Status(http.StatusNoContent)
		})
	if got == "" {
		t.Error("no correlation id generated")
	}
	if w.Header().Get("x-correlation-id") != got {
		t.Errorf("response header %q does not echo context id %q", w.Header().Get("x-correlation-id"), got)
	}
}

func TestOfficerIdMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		wantId int
		wantOk bool
	}{
		{"valid id", "42", 42, true},
		{"absent", "", 0, false},
		{"not a number", "chief", 0, false},
		{"non-positive", "0", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			headers := map[string]string{}
			if c.header != "" {
				headers["x-officer-id"] = c.header
			}
			runRequest(t, OfficerIdMiddleware(), headers, func(gc *gin.Context) {
				id, ok := utils.GetOfficerIdFromContext(gc.Request.Context())
				if ok != c.wantOk || id != c.wantId {
					t.Errorf("officer id = (%d, %v), want (%d, %v)", id, ok, c.wantId, c.wantOk)
				}
				gc.Status(http.StatusNoContent)
			})
		})
	}
}
