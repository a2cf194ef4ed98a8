package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(NewLoginLimiter(rps, burst).Middleware())
	router.POST("/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func TestLoginLimiterAllowsWithinBurst(t *testing.T) {
	router := limitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request %d: expected status %d, got %d", i+1, http.StatusOK, w.Code)
		}
	}
}

func TestLoginLimiterBlocksBeyondBurst(t *testing.T) {
	router := limitedRouter(0.1, 2)

	var last int
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		router.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("expected status %d after exhausting burst, got %d", http.StatusTooManyRequests, last)
	}
}

func TestAuthRateLimitEnforces(t *testing.T) {
	router := gin.New()
	router.Use(AuthRateLimit(0.1, 1))
	router.POST("/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		router.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("expected status %d after exhausting burst, got %d", http.StatusTooManyRequests, last)
	}
}

func TestLoginLimiterPerIP(t *testing.T) {
	router := limitedRouter(0.1, 1)

	// Exhaust the first client's budget.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		router.ServeHTTP(w, req)
	}

	// A different client is unaffected.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d for fresh client, got %d", http.StatusOK, w.Code)
	}
}
