package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carehub/internal/auth"
	"carehub/internal/model"
	"carehub/pkg/response"
)

const contextUserKey = "currentUser"

// UserResolver resolves a token subject to a live user record.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// bearerToken extracts the token from the Authorization header. Returns
// "" when the header is absent, malformed or not a Bearer scheme.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// Authenticate validates the bearer token and re-resolves the subject
// against the database on every request, so deleting or blocking an
// account revokes access immediately regardless of token expiry.
func Authenticate(codec *auth.Codec, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortUnauthenticated(c, "You are not authenticated. Please login and try again!")
			return
		}

		claims, err := codec.Parse(token)
		if err != nil {
			// Expired and invalid tokens are not distinguished here.
			response.AbortUnauthenticated(c, "You are not authenticated. Please login and try again!")
			return
		}

		id, err := claims.SubjectID()
		if err != nil {
			response.AbortUnauthenticated(c, "You are not authenticated. Please login and try again!")
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			// Token outlived the account.
			response.AbortUnauthenticated(c, "User not found")
			return
		}
		if !user.IsActive() {
			response.AbortUnauthenticated(c, "User account is inactive. Contact System administrator.")
			return
		}

		c.Set(contextUserKey, user)
	}
}

// CurrentUser returns the authenticated user attached by Authenticate,
// or nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// RequireRole authorizes the request iff the authenticated user's role is
// a member of the allowed set.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.AbortUnauthenticated(c, "You are not authenticated. Please login and try again!")
			return
		}
		for _, role := range allowedRoles {
			if user.Role == role {
				return
			}
		}
		response.AbortForbidden(c, "Access denied: insufficient permissions")
	}
}

// SuperuserGate guards superuser-only endpoints with the bootstrap escape
// hatch: while no active superuser exists the gate passes unconditionally,
// even without authentication, so the first superuser can be created.
// Once one exists the request must authenticate as a superuser.
func SuperuserGate(guard *auth.BootstrapGuard, authenticate gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !guard.SuperuserExists() {
			return
		}
		authenticate(c)
		if c.IsAborted() {
			return
		}
		user := CurrentUser(c)
		if user == nil || user.Role != model.RoleSuperuser {
			response.AbortForbidden(c, "Access denied: insufficient permissions")
		}
	}
}
