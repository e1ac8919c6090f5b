package middleware

import (
	"strings"

	"campbnb-backend/internal/domain"
	"campbnb-backend/internal/pkg/response"
	"campbnb-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const userLocal = "user"

// RequireAuth validates the bearer token and loads the user row into Locals.
// Returns 401 with the standard error format when the token is missing,
// invalid, or the user no longer exists.
func RequireAuth(db *gorm.DB, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := resolveUser(c, db, secret)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}
		c.Locals(userLocal, u)
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present; requests
// without (or with a bad) token proceed anonymously.
func OptionalAuth(db *gorm.DB, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u, err := resolveUser(c, db, secret); err == nil {
			c.Locals(userLocal, u)
		}
		return c.Next()
	}
}

// RequireHost ensures the authenticated user has the host flag.
// Must run after RequireAuth.
func RequireHost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil || !u.IsHost {
			return response.Forbidden(c, "Host access required")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user from Locals (nil if anonymous).
func CurrentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(userLocal).(*domain.User)
	return u
}

func resolveUser(c *fiber.Ctx, db *gorm.DB, secret []byte) (*domain.User, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, errNoToken
	}
	claims, err := token.Verify(secret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, token.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, token.ErrInvalidToken
	}
	var u domain.User
	if err := db.WithContext(c.Context()).Where("id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
