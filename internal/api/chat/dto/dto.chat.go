// Package dto - DTO cho domain chat.
package dto

// RoomCreateInput là body của POST /chat/rooms.
type RoomCreateInput struct {
	Name         string   `json:"name" validate:"required,no_xss"`
	Participants []string `json:"participants,omitempty"`
}

// MessageSendInput là body của POST /chat/rooms/:roomId/messages.
type MessageSendInput struct {
	Text string `json:"text" validate:"required,no_xss"`
}

// PresenceInput là body của PUT /chat/rooms/:roomId/presence.
type PresenceInput struct {
	Online bool `json:"online"`
}

// TypingInput là body của PUT /chat/rooms/:roomId/typing.
type TypingInput struct {
	Typing bool `json:"typing"`
}
