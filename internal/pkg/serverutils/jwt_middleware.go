package serverutils

import (
	"os"
	"strconv"
	"time"

	"walkaudit-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// CreateToken issues the bearer token used by both the HTTP API and the
// websocket handshake. The subject is the numeric user id.
func CreateToken(user *entity.User, orgCode *string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.Id), 10),
		"is_admin": user.IsAdmin,
		"role":     string(user.Role),
		"userCode": user.Code,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	if orgCode != nil {
		claims["org"] = *orgCode
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func parseClaims(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewUnauthorized("Unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorized("Invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewUnauthorized("Invalid claims")
	}
	return claims, nil
}

// ParseUserId validates a raw token string and returns the subject user id.
// Used where the token arrives out of band (websocket query parameter).
func ParseUserId(tokenStr string) (uint, error) {
	claims, err := parseClaims(tokenStr)
	if err != nil {
		return 0, err
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, NewUnauthorized("Token missing subject")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, NewUnauthorized("Invalid subject")
	}
	return uint(id), nil
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	claims, err := parseClaims(authHeader[7:])
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	ctx.Locals("user_id", uint(id))
	if role, ok := claims["role"].(string); ok {
		ctx.Locals("role", role)
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		ctx.Locals("is_admin", isAdmin)
	}
	return ctx.Next()
}

// UserId reads the authenticated user id placed by JwtMiddleware.
func UserId(ctx *fiber.Ctx) uint {
	if id, ok := ctx.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}

// RequireAdmin guards the admin route group. Must run after JwtMiddleware.
func RequireAdmin(ctx *fiber.Ctx) error {
	if isAdmin, ok := ctx.Locals("is_admin").(bool); ok && isAdmin {
		return ctx.Next()
	}
	return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Admin access required"))
}

// RequireRoles admits users whose token role matches any of the given roles.
// Admins always pass.
func RequireRoles(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if isAdmin, ok := ctx.Locals("is_admin").(bool); ok && isAdmin {
			return ctx.Next()
		}
		role, _ := ctx.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Insufficient role"))
	}
}
