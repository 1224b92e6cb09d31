// Package models - các node realtime của chat.
// Cây dữ liệu: chat/rooms/<roomId>, chat/messages/<roomId>/<pushKey>,
// chat/presence/<roomId>/<uid>.
package models

// Participant là một thành viên trong phòng chat.
type Participant struct {
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	JoinedAt int64  `json:"joinedAt"` // epoch millis
}

// ChatRoom là metadata một phòng chat (chat/rooms/<roomId>).
type ChatRoom struct {
	RoomID       string                 `json:"roomId,omitempty"`
	Name         string                 `json:"name"`
	CreatedBy    string                 `json:"createdBy"`
	CreatedAt    int64                  `json:"createdAt"` // epoch millis
	Participants map[string]Participant `json:"participants,omitempty"`
}

// ChatMessage là một tin nhắn (chat/messages/<roomId>/<pushKey>).
// Key không được lưu trong node, chỉ gắn vào khi đọc ra.
type ChatMessage struct {
	Key        string `json:"key,omitempty"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"` // epoch millis
	IsAdmin    bool   `json:"isAdmin"`
	IsBot      bool   `json:"isBot"`
}

// Presence là trạng thái hiện diện của một user trong phòng (chat/presence/<roomId>/<uid>).
// Mọi ghi đè là last-writer-wins.
type Presence struct {
	Online     bool  `json:"online"`
	LastActive int64 `json:"lastActive"` // epoch millis
	Typing     bool  `json:"typing"`
}

// Đường dẫn gốc của cây chat.
const (
	RoomsPath    = "chat/rooms"
	MessagesPath = "chat/messages"
	PresencePath = "chat/presence"
)

// RoomMessagesPath trả về path chứa tin nhắn của một phòng.
func RoomMessagesPath(roomID string) string {
	return MessagesPath + "/" + roomID
}

// RoomPresencePath trả về path presence của một user trong phòng.
func RoomPresencePath(roomID, uid string) string {
	return PresencePath + "/" + roomID + "/" + uid
}

// RoomPath trả về path metadata của một phòng.
func RoomPath(roomID string) string {
	return RoomsPath + "/" + roomID
}
