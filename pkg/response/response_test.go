package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "test"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusOK)
	}
	resp := parseResponse(t, w)
	if resp.Code != 0 || resp.Message != "ok" {
		t.Errorf("envelope = %d/%q, expected 0/\"ok\"", resp.Code, resp.Message)
	}
}

func TestCreatedEnvelope(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusCreated)
	}
	if resp := parseResponse(t, w); resp.Code != 0 {
		t.Errorf("code = %d, expected 0", resp.Code)
	}
}

func TestFailureHelpers(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(*gin.Context, string)
		status int
	}{
		{"bad request", BadRequest, http.StatusBadRequest},
		{"unauthorized", Unauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden, http.StatusForbidden},
		{"not found", NotFound, http.StatusNotFound},
		{"conflict", Conflict, http.StatusConflict},
		{"too many requests", TooManyRequests, http.StatusTooManyRequests},
		{"server error", ServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(func(c *gin.Context) {
				tt.fn(c, "boom")
			})

			if w.Code != tt.status {
				t.Errorf("status = %d, expected %d", w.Code, tt.status)
			}
			resp := parseResponse(t, w)
			if resp.Code != tt.status {
				t.Errorf("code = %d, expected %d", resp.Code, tt.status)
			}
			if resp.Message != "boom" {
				t.Errorf("message = %q, expected %q", resp.Message, "boom")
			}
		})
	}
}

func TestErrorWithAppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewConflict("plate already registered"))
	})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusConflict)
	}
	resp := parseResponse(t, w)
	if resp.Message != "plate already registered" {
		t.Errorf("message = %q, expected the AppError message", resp.Message)
	}
}

func TestErrorHidesInternalDetail(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused on 10.0.0.3"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "10.0.0.3") {
		t.Errorf("internal error detail leaked to the client: %s", w.Body.String())
	}
}

func TestAppErrorSentinelIdentity(t *testing.T) {
	sentinel := NewUnauthorized("refresh token revoked")

	wrapped := error(sentinel)
	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match the sentinel by identity")
	}
	if errors.Is(wrapped, NewUnauthorized("refresh token revoked")) {
		t.Error("distinct AppError instances must not compare equal")
	}
	if sentinel.Error() != "refresh token revoked" {
		t.Errorf("Error() = %q, expected the message", sentinel.Error())
	}
}
