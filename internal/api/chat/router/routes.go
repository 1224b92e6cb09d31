// Package router đăng ký các route thuộc domain chat.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	chathdl "active_core/internal/api/chat/handler"
	"active_core/internal/api/middleware"
	apirouter "active_core/internal/api/router"
)

// Register đăng ký route chat lên v1. Mọi route chỉ cần đăng nhập.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	chatHandler, err := chathdl.NewChatHandler()
	if err != nil {
		return fmt.Errorf("tạo ChatHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware("")

	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/rooms", []fiber.Handler{authMiddleware}, chatHandler.HandleCreateRoom)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "GET", "/rooms", []fiber.Handler{authMiddleware}, chatHandler.HandleListRooms)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/rooms/:roomId/messages", []fiber.Handler{authMiddleware}, chatHandler.HandleSendMessage)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "GET", "/rooms/:roomId/messages", []fiber.Handler{authMiddleware}, chatHandler.HandleGetMessages)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "PUT", "/rooms/:roomId/presence", []fiber.Handler{authMiddleware}, chatHandler.HandleUpdatePresence)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "GET", "/rooms/:roomId/presence", []fiber.Handler{authMiddleware}, chatHandler.HandleGetPresence)
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "PUT", "/rooms/:roomId/typing", []fiber.Handler{authMiddleware}, chatHandler.HandleUpdateTyping)

	return nil
}
