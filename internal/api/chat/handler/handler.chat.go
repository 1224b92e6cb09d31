// Package chathdl - Handler chat: phòng, tin nhắn, presence, typing.
package chathdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "active_core/internal/api/base/handler"
	chatdto "active_core/internal/api/chat/dto"
	chatmodels "active_core/internal/api/chat/models"
	chatsvc "active_core/internal/api/chat/service"
	"active_core/internal/common"
	"active_core/internal/global"
)

// ChatHandler xử lý các request chat trên RealtimeStore.
type ChatHandler struct {
	ChatService *chatsvc.ChatService
}

// NewChatHandler tạo ChatHandler trên ChatService singleton (dùng chung store với worker).
func NewChatHandler() (*ChatHandler, error) {
	return &ChatHandler{ChatService: chatsvc.GetChatService()}, nil
}

// currentUser lấy uid và claims từ context (đã qua AuthMiddleware).
func currentUser(c fiber.Ctx) (string, map[string]interface{}) {
	uid, _ := c.Locals("user_id").(string)
	claims, _ := c.Locals("user_claims").(map[string]interface{})
	return uid, claims
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(common.StatusBadRequest).JSON(fiber.Map{
		"code": common.ErrCodeValidationInput.Code, "message": message, "status": "error",
	})
}

func handleServiceError(c fiber.Ctx, err error) error {
	if customErr, ok := err.(*common.Error); ok {
		return c.Status(customErr.StatusCode).JSON(fiber.Map{
			"code": customErr.Code.Code, "message": customErr.Message, "status": "error",
		})
	}
	return c.Status(common.StatusInternalServerError).JSON(fiber.Map{
		"code": common.ErrCodeRealtime.Code, "message": err.Error(), "status": "error",
	})
}

func success(c fiber.Ctx, data interface{}) error {
	return c.Status(common.StatusOK).JSON(fiber.Map{
		"code": common.StatusOK, "message": common.MsgSuccess,
		"data": data, "status": "success",
	})
}

// HandleCreateRoom xử lý POST /chat/rooms.
func (h *ChatHandler) HandleCreateRoom(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input chatdto.RoomCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequest(c, "Dữ liệu gửi lên không đúng định dạng JSON")
		}
		if err := global.Validate.Struct(&input); err != nil {
			return badRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		}

		uid, _ := currentUser(c)
		room, err := h.ChatService.CreateRoom(c.Context(), input.Name, uid, input.Participants)
		if err != nil {
			return handleServiceError(c, err)
		}
		return success(c, room)
	})
}

// HandleListRooms xử lý GET /chat/rooms.
func (h *ChatHandler) HandleListRooms(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		rooms, err := h.ChatService.ListRooms(c.Context())
		if err != nil {
			return handleServiceError(c, err)
		}
		return success(c, rooms)
	})
}

// HandleSendMessage xử lý POST /chat/rooms/:roomId/messages.
// SenderId/senderName/isAdmin lấy từ token, timestamp do server gán.
func (h *ChatHandler) HandleSendMessage(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input chatdto.MessageSendInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequest(c, "Dữ liệu gửi lên không đúng định dạng JSON")
		}
		if err := global.Validate.Struct(&input); err != nil {
			return badRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		}

		uid, claims := currentUser(c)
		msg := chatmodels.ChatMessage{
			SenderID: uid,
			Text:     input.Text,
		}
		if claims != nil {
			if name, ok := claims["name"].(string); ok {
				msg.SenderName = name
			}
			if isAdmin, ok := claims["admin"].(bool); ok {
				msg.IsAdmin = isAdmin
			}
		}

		sent, err := h.ChatService.SendMessage(c.Context(), c.Params("roomId"), msg)
		if err != nil {
			return handleServiceError(c, err)
		}
		return success(c, sent)
	})
}

// HandleGetMessages xử lý GET /chat/rooms/:roomId/messages.
// Không có ?before → trang đầu (15 tin cuối); có ?before=<cursor> → trang cũ hơn cursor.
func (h *ChatHandler) HandleGetMessages(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		roomID := c.Params("roomId")
		before := c.Query("before")

		var page *chatsvc.MessagePage
		var err error
		if before == "" {
			page, err = h.ChatService.FetchInitialPage(c.Context(), roomID)
		} else {
			page, err = h.ChatService.FetchOlderPage(c.Context(), roomID, before)
		}
		if err != nil {
			return handleServiceError(c, err)
		}
		return success(c, page)
	})
}

// HandleUpdatePresence xử lý PUT /chat/rooms/:roomId/presence.
func (h *ChatHandler) HandleUpdatePresence(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input chatdto.PresenceInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequest(c, "Dữ liệu gửi lên không đúng định dạng JSON")
		}

		uid, _ := currentUser(c)
		if err := h.ChatService.UpdatePresence(c.Context(), c.Params("roomId"), uid, input.Online); err != nil {
			return handleServiceError(c, err)
		}
		return success(c, nil)
	})
}

// HandleUpdateTyping xử lý PUT /chat/rooms/:roomId/typing.
func (h *ChatHandler) HandleUpdateTyping(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input chatdto.TypingInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequest(c, "Dữ liệu gửi lên không đúng định dạng JSON")
		}

		uid, _ := currentUser(c)
		if err := h.ChatService.UpdateTyping(c.Context(), c.Params("roomId"), uid, input.Typing); err != nil {
			return handleServiceError(c, err)
		}
		return success(c, nil)
	})
}

// HandleGetPresence xử lý GET /chat/rooms/:roomId/presence.
func (h *ChatHandler) HandleGetPresence(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		presence, err := h.ChatService.GetRoomPresence(c.Context(), c.Params("roomId"))
		if err != nil {
			return handleServiceError(c, err)
		}
		return success(c, presence)
	})
}
