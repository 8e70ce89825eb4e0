package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/middleware"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthHandler exchanges configured credentials for tenant-scoped tokens.
type AuthHandler struct {
	users []config.User
	auth  *config.AuthConfig
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: cfg.Users, auth: &cfg.Auth}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Username  string `json:"username"`
	Tenant    string `json:"tenant"`
}

// authenticate compares the password of every configured user so the
// response time does not reveal which usernames exist.
func (h *AuthHandler) authenticate(username, password string) (middleware.Principal, bool) {
	var (
		match middleware.Principal
		found int
	)
	for _, u := range h.users {
		nameOK := subtle.ConstantTimeCompare([]byte(u.Username), []byte(username))
		passOK := subtle.ConstantTimeCompare([]byte(u.Password), []byte(password))
		if nameOK&passOK == 1 {
			match = middleware.Principal{Username: u.Username, Tenant: u.Tenant}
			found = 1
		}
	}
	return match, found == 1
}

// Login issues a bearer token scoped to the user's tenant.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p, ok := h.authenticate(req.Username, req.Password)
	if !ok {
		logger.Warn(ctx, "login failed", "username", req.Username, "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, expiresAt, err := middleware.IssueToken(p, h.auth)
	if err != nil {
		logger.Error(ctx, "failed to sign token", "username", p.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	ctx = logger.With(ctx, logger.TenantKey, p.Tenant)
	logger.Info(ctx, "login succeeded", "username", p.Username)

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Username:  p.Username,
		Tenant:    p.Tenant,
	})
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, p)
}
