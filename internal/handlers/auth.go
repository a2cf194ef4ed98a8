package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.PasswordResetService
	cfg          *config.Config
}

func NewAuthHandler(authService *services.AuthService, resetService *services.PasswordResetService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		cfg:          cfg,
	}
}

// deviceContext collects the client fingerprint attached to each session.
func deviceContext(c *gin.Context) services.DeviceContext {
	return services.DeviceContext{
		DeviceID:  c.GetHeader("X-Device-Id"),
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// setSessionCookies stores both tokens as httpOnly cookies for browser
// clients. API clients can ignore them and use the response body instead.
func (h *AuthHandler) setSessionCookies(c *gin.Context, bundle *services.TokenBundle) {
	secure := h.cfg.IsProduction()
	refreshMaxAge := h.cfg.JWT.RefreshExpireDays * 24 * 60 * 60

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, bundle.AccessToken, bundle.ExpiresIn, "/", "", secure, true)
	c.SetCookie(refreshCookieName, bundle.RefreshToken, refreshMaxAge, "/", "", secure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	secure := h.cfg.IsProduction()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", secure, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", secure, true)
}

// Register handles user signup
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	device := deviceContext(c)
	if req.DeviceID != "" {
		device.DeviceID = req.DeviceID
	}

	bundle, user, err := h.authService.Register(&req, device)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookies(c, bundle)
	response.Created(c, gin.H{"user": user, "tokens": bundle})
}

// Login verifies credentials and opens a session
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	device := deviceContext(c)
	if req.DeviceID != "" {
		device.DeviceID = req.DeviceID
	}

	bundle, user, err := h.authService.Login(&req, device)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookies(c, bundle)
	response.Success(c, gin.H{"user": user, "tokens": bundle})
}

// Refresh rotates the refresh token and issues a new access token. The token
// can arrive in the body or the refresh cookie.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken == "" {
		if cookie, err := c.Cookie(refreshCookieName); err == nil {
			req.RefreshToken = cookie
		}
	}
	if req.RefreshToken == "" {
		response.BadRequest(c, "refresh token is required")
		return
	}

	bundle, err := h.authService.Refresh(&req, deviceContext(c))
	if err != nil {
		h.clearSessionCookies(c)
		response.Error(c, err)
		return
	}

	h.setSessionCookies(c, bundle)
	response.Success(c, gin.H{"tokens": bundle})
}

// Me returns the claims of the presented access token, expiry included. No
// database read: the response reflects the token, not the current user row.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := h.authService.DecodeAccessToken(middleware.GetToken(c))
	if err != nil {
		response.Unauthorized(c, "invalid token")
		return
	}
	response.Success(c, claims)
}

// Logout revokes the presented refresh token and clears the session cookies.
// Always succeeds so a client can log out even with a stale token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req services.RefreshRequest
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken == "" {
		if cookie, err := c.Cookie(refreshCookieName); err == nil {
			req.RefreshToken = cookie
		}
	}
	if req.RefreshToken != "" {
		_ = h.authService.Logout(req.RefreshToken)
	}

	h.clearSessionCookies(c)
	response.Success(c, gin.H{"message": "logged out"})
}

// LogoutAll revokes every session of the authenticated user
// POST /api/auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.authService.LogoutAll(middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.clearSessionCookies(c)
	response.Success(c, gin.H{"message": "all sessions revoked"})
}

// ListSessions returns the user's active sessions
// GET /api/auth/sessions
func (h *AuthHandler) ListSessions(c *gin.Context) {
	sessions, err := h.authService.ListSessions(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sessions)
}

// LogoutDevice revokes the user's sessions on one device
// DELETE /api/auth/sessions/:deviceId
func (h *AuthHandler) LogoutDevice(c *gin.Context) {
	deviceID := c.Param("deviceId")
	if err := h.authService.LogoutDevice(middleware.GetUserID(c), deviceID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "device sessions revoked"})
}

// ForgotPassword starts the reset flow. The response is identical whether or
// not the email exists.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.resetService.ForgotPassword(req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": services.ForgotPasswordMessage})
}

// ResetPassword consumes a reset token and sets the new password
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.resetService.ResetPassword(req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password has been reset"})
}
