package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

// clientState tracks one client's limiter and when it was last active.
type clientState struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles credential endpoints per client IP to slow down
// brute-force attempts.
type LoginLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientState
	rps     rate.Limit
	burst   int
}

func NewLoginLimiter(rps float64, burst int) *LoginLimiter {
	l := &LoginLimiter{
		clients: make(map[string]*clientState),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.clients[ip]
	if !ok {
		state = &clientState{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = state
	}
	state.lastSeen = time.Now()
	return state.limiter.Allow()
}

// sweep drops clients idle for more than ten minutes.
func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		l.mu.Lock()
		for ip, state := range l.clients {
			if time.Since(state.lastSeen) > 10*time.Minute {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware enforces the per-IP limit on the routes it is mounted on.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			response.TooManyRequests(c, "too many attempts, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthRateLimit builds the limiter used for login, register and password
// reset routes.
func AuthRateLimit(rps float64, burst int) gin.HandlerFunc {
	return NewLoginLimiter(rps, burst).Middleware()
}
