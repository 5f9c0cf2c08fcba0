package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

// ProxyKeyHeader carries the shared key of chat proxy clients.
const ProxyKeyHeader = "X-Proxy-Key"

// HashProxyKey hashes a proxy client key for DISCORD_PROXY_KEY_HASH.
func HashProxyKey(key string, cost int) (string, error) {
	if key == "" {
		return "", errors.New("empty proxy key")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// RequireProxyKey admits requests whose proxy key matches hash. An empty
// hash closes the proxy entirely.
func RequireProxyKey(hash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hash == "" {
			return apperrors.NewForbidden("chat proxy disabled")
		}
		key := c.Get(ProxyKeyHeader)
		if key == "" {
			return apperrors.NewUnauthorized("missing proxy key")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			return apperrors.NewUnauthorized("invalid proxy key")
		}
		return c.Next()
	}
}
