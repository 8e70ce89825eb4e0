package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the iss claim of every access token this API signs.
const TokenIssuer = "contract-generation-api"

const principalKey = "principal"

var (
	errMissingAuth   = errors.New("authorization header missing")
	errMalformedAuth = errors.New("authorization header is not a bearer token")
	errNoPrincipal   = errors.New("token has no subject or tenant")
)

// Principal is the authenticated caller. Every contract it creates or
// reads is scoped to Tenant.
type Principal struct {
	Username string `json:"username"`
	Tenant   string `json:"tenant"`
}

// AccessClaims is the JWT body of an access token. The username travels
// as the registered subject.
type AccessClaims struct {
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 access token for p.
func IssueToken(p Principal, cfg *config.AuthConfig) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(cfg.TokenExpireHours) * time.Hour)

	claims := AccessClaims{
		Tenant: p.Tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies raw and returns the caller it names. Only HS256
// tokens from TokenIssuer with an expiry are accepted.
func ParseToken(raw string, cfg *config.AuthConfig) (Principal, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return []byte(cfg.JWTSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Principal{}, err
	}
	if claims.Subject == "" || claims.Tenant == "" {
		return Principal{}, errNoPrincipal
	}
	return Principal{Username: claims.Subject, Tenant: claims.Tenant}, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errMalformedAuth
	}
	return token, nil
}

// AuthMiddleware admits requests carrying a valid access token and
// records the caller for handlers and the request logger.
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			msg := "Invalid authorization header format"
			if errors.Is(err, errMissingAuth) {
				msg = "Authorization header required"
			}
			unauthorized(c, msg, err)
			return
		}

		p, err := ParseToken(raw, cfg)
		if err != nil {
			unauthorized(c, "Invalid or expired token", err)
			return
		}

		SetPrincipal(c, p)
		ctx := logger.With(c.Request.Context(), logger.TenantKey, p.Tenant)
		ctx = logger.With(ctx, logger.UsernameKey, p.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string, reason error) {
	logger.Warn(c.Request.Context(), "request rejected",
		"path", c.Request.URL.Path,
		"reason", reason.Error(),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// SetPrincipal records p as the caller of the request.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the caller recorded by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	p, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := p.(Principal)
	return principal, ok
}

// GetTenant returns the caller's tenant, or "" outside authenticated routes.
func GetTenant(c *gin.Context) string {
	p, _ := CurrentPrincipal(c)
	return p.Tenant
}
