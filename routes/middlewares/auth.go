package middlewares

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/helpers"
)

var (
	AuthzInvalidSession    = "authz.invalid_session"
	AuthzInvalidPermission = "authz.invalid_permission"
	JwtDecodeAndVerify     = "jwt.decode_and_verify"
	ServerInternalError    = "server.internal_error"
)

// Auth struct represents parsed jwt information.
type Auth struct {
	UID   string `json:"uid"`
	State string `json:"state"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Level int32  `json:"level"`

	jwt.StandardClaims
}

// ParsePublicKey decodes the base64 encoded PEM held in JWT_PUBLIC_KEY.
func ParsePublicKey(encoded string) (*rsa.PublicKey, error) {
	public_key_pem, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPublicKeyFromPEM(public_key_pem)
}

func Authenticate(public_key *rsa.PublicKey) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var auth Auth

		if public_key == nil {
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{ServerInternalError},
			})
		}

		token := c.Get("Authorization")
		if len(token) == 0 {
			return c.Status(401).JSON(helpers.Errors{
				Errors: []string{AuthzInvalidSession},
			})
		}

		token = strings.TrimPrefix(token, "Bearer ")

		_, err := jwt.ParseWithClaims(token, &auth, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}

			return public_key, nil
		})
		if err != nil {
			return c.Status(401).JSON(helpers.Errors{
				Errors: []string{JwtDecodeAndVerify},
			})
		}

		c.Locals("CurrentUser", &auth)

		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *Auth {
	auth, _ := c.Locals("CurrentUser").(*Auth)
	return auth
}
