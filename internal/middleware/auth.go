package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/models"
	"github.com/registreehq/registree-api/internal/services"
)

// claimsKey is where the guards park the decoded claims for handlers.
const claimsKey = "userData"

// DecodeToken only requires a structurally valid, signed token: it decodes
// and attaches the claims without checking expiry or role. The token refresh
// endpoint uses it, so an expired-but-genuine token can still be exchanged.
func DecodeToken(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := decodeBearer(c, tokens)
		if err != nil {
			return err
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRoles decodes the token the same way DecodeToken does, then
// enforces expiry and role membership. An empty role list admits any
// authenticated role. It guards every protected mutating operation.
func RequireRoles(tokens *services.TokenService, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := decodeBearer(c, tokens)
		if err != nil {
			return err
		}
		if !time.Now().Before(claims.ExpiresAt.Time) {
			return apperr.Forbidden("Forbidden...You are using an expired token")
		}
		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			return apperr.Unauthorized(fmt.Sprintf("Unauthorized...Allows Only: %s", joinRoles(roles)))
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// CurrentClaims returns the claims a guard attached, or nil when the route
// is unguarded.
func CurrentClaims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}

// CurrentUserID returns the authenticated subject id, empty when absent.
func CurrentUserID(c *fiber.Ctx) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func decodeBearer(c *fiber.Ctx, tokens *services.TokenService) (*services.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, apperr.Forbidden("Forbidden...Authorization headers were not set")
	}
	parts := strings.Split(header, " ")
	claims := tokens.Decode(parts[len(parts)-1])
	if claims == nil {
		return nil, apperr.Forbidden("Forbidden...Authorization headers were not set")
	}
	return claims, nil
}

func roleAllowed(role models.Role, permitted []models.Role) bool {
	for _, r := range permitted {
		if r == role {
			return true
		}
	}
	return false
}

func joinRoles(roles []models.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}
