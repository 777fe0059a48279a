package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Identity context keys
const (
	CustomerIDKey = "customer_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// IdentityConfig holds configuration for the identity middleware
type IdentityConfig struct {
	// Resolver turns a bearer token into a customer ID
	Resolver identity.Resolver
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultIdentityConfig returns default identity middleware configuration.
// Quoting and catalog browsing are public; only order placement and the
// customer's order reads require an identity.
func DefaultIdentityConfig(resolver identity.Resolver) IdentityConfig {
	return IdentityConfig{
		Resolver: resolver,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/checkout/summary",
			"/api/v1/checkout/summary",
		},
		SkipPathPrefixes: []string{
			"/shops",
			"/api/v1/shops",
		},
	}
}

// IdentityMiddleware authenticates requests through the identity resolver
func IdentityMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return IdentityMiddlewareWithConfig(DefaultIdentityConfig(resolver))
}

// IdentityMiddlewareWithConfig authenticates requests with custom config.
// On success the customer ID is stored in both the gin context and the
// request context, so handlers and the request logger see the same identity.
func IdentityMiddlewareWithConfig(cfg IdentityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthenticated(c, cfg, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthenticated(c, cfg, "Invalid authorization header format")
			return
		}
		token := strings.TrimPrefix(authHeader, BearerPrefix)
		if token == "" {
			abortUnauthenticated(c, cfg, "Missing token")
			return
		}

		customerID, err := cfg.Resolver.Resolve(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("identity resolution failed",
					zap.String("path", path),
					zap.Error(err))
			}
			abortUnauthenticated(c, cfg, "Invalid or expired token")
			return
		}

		c.Set(CustomerIDKey, customerID)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithCustomerID(ctx, log, customerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortUnauthenticated rejects the request with a 401
func abortUnauthenticated(c *gin.Context, cfg IdentityConfig, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Debug("request rejected as unauthenticated",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", message))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// GetCustomerID retrieves the authenticated customer ID from gin.Context.
// Returns zero when no identity was established.
func GetCustomerID(c *gin.Context) uint {
	if v, exists := c.Get(CustomerIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
