package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"active_core/internal/common"
	"active_core/internal/logger"
	"active_core/internal/utility"
)

// AuthMiddleware middleware xác thực cho Fiber.
// Xác thực bằng Firebase ID token (header Authorization: Bearer <idToken>).
// requirePermission:
//   - "": chỉ cần token hợp lệ
//   - "admin": token phải có custom claim admin=true
func AuthMiddleware(requirePermission string) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		idToken := parts[1]

		// Verify ID token với Firebase Auth
		token, err := utility.VerifyIDToken(c.Context(), idToken)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Invalid Firebase ID token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", token.UID)
		c.Locals("user_claims", token.Claims)

		// Nếu không yêu cầu permission cụ thể, cho phép truy cập ngay
		if requirePermission == "" {
			return c.Next()
		}

		// Kiểm tra custom claim admin=true khi route yêu cầu quyền quản trị
		if requirePermission == "admin" {
			isAdmin, _ := token.Claims["admin"].(bool)
			if !isAdmin {
				logger.GetAppLogger().WithFields(logrus.Fields{
					"user_id": token.UID,
					"path":    c.Path(),
				}).Warn("❌ [AUTH] User does not have admin claim")
				HandleErrorResponse(c, common.ErrNotAdmin)
				return nil
			}
		}

		return c.Next()
	}
}
