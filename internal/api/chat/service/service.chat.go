package chatsvc

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	chatmodels "active_core/internal/api/chat/models"
	"active_core/internal/api/chat/realtime"
	"active_core/internal/common"
	"active_core/internal/global"
	"active_core/internal/logger"
)

// MessagePage là một trang tin nhắn trả về cho client (đọc stateless qua HTTP).
type MessagePage struct {
	Messages []chatmodels.ChatMessage `json:"messages"`
	Cursor   string                   `json:"cursor,omitempty"`  // Key tin cũ nhất trong trang
	HasMore  bool                     `json:"hasMore"`
}

// ChatService là facade của domain chat trên RealtimeStore.
type ChatService struct {
	store realtime.RealtimeStore
	hub   *Hub
}

// NewChatService tạo ChatService cùng hub của nó.
func NewChatService(store realtime.RealtimeStore) *ChatService {
	return &ChatService{
		store: store,
		hub:   NewHub(store),
	}
}

var (
	defaultService *ChatService
	defaultOnce    sync.Once
)

// GetChatService trả về ChatService singleton dùng chung giữa handler và worker.
// Không cấu hình Firebase RTDB thì rơi về MemoryStore (dev, dữ liệu mất khi restart).
func GetChatService() *ChatService {
	defaultOnce.Do(func() {
		var store realtime.RealtimeStore
		if global.RealtimeDB != nil {
			if firebaseStore, err := realtime.NewFirebaseStore(global.RealtimeDB); err == nil {
				store = firebaseStore
			}
		}
		if store == nil {
			logger.GetAppLogger().Warn("⚠️ [CHAT] FIREBASE_DATABASE_URL chưa cấu hình, chat chạy trên MemoryStore")
			store = realtime.NewMemoryStore()
		}
		defaultService = NewChatService(store)
	})
	return defaultService
}

// Hub trả về hub quản lý connection.
func (s *ChatService) Hub() *Hub {
	return s.hub
}

// CreateRoom tạo phòng chat mới với id tự sinh.
func (s *ChatService) CreateRoom(ctx context.Context, name, createdBy string, participants []string) (*chatmodels.ChatRoom, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Tên phòng không được rỗng", common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	room := chatmodels.ChatRoom{
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	if len(participants) > 0 {
		room.Participants = map[string]chatmodels.Participant{}
		for _, uid := range participants {
			room.Participants[uid] = chatmodels.Participant{JoinedAt: now}
		}
	}

	roomID := uuid.NewString()
	if err := s.store.Set(ctx, chatmodels.RoomPath(roomID), room); err != nil {
		return nil, err
	}
	room.RoomID = roomID
	return &room, nil
}

// ListRooms trả về tất cả phòng, mới tạo trước.
func (s *ChatService) ListRooms(ctx context.Context) ([]chatmodels.ChatRoom, error) {
	var raw map[string]chatmodels.ChatRoom
	if err := s.store.Get(ctx, chatmodels.RoomsPath, &raw); err != nil {
		return nil, err
	}

	rooms := make([]chatmodels.ChatRoom, 0, len(raw))
	for roomID, room := range raw {
		room.RoomID = roomID
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt != rooms[j].CreatedAt {
			return rooms[i].CreatedAt > rooms[j].CreatedAt
		}
		return rooms[i].RoomID < rooms[j].RoomID
	})
	return rooms, nil
}

// SendMessage ghi tin nhắn vào phòng rồi fan-out cho các connection đang mở.
// Timestamp do server gán tại thời điểm ghi.
func (s *ChatService) SendMessage(ctx context.Context, roomID string, msg chatmodels.ChatMessage) (chatmodels.ChatMessage, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return msg, common.NewError(common.ErrCodeValidationInput, "Nội dung tin nhắn không được rỗng", common.StatusBadRequest, nil)
	}

	msg.Key = ""
	msg.Timestamp = time.Now().UnixMilli()

	key, err := s.store.Push(ctx, chatmodels.RoomMessagesPath(roomID), msg)
	if err != nil {
		return msg, err
	}
	msg.Key = key

	var value map[string]interface{}
	if err := s.store.Get(ctx, chatmodels.RoomMessagesPath(roomID)+"/"+key, &value); err == nil && value != nil {
		s.hub.FanOut(roomID, realtime.ChildSnapshot{Key: key, Value: value})
	}
	return msg, nil
}

// FetchInitialPage đọc trang đầu stateless: N tin cuối theo timestamp, tăng dần.
func (s *ChatService) FetchInitialPage(ctx context.Context, roomID string) (*MessagePage, error) {
	snaps, err := s.store.GetOrdered(ctx, chatmodels.RoomMessagesPath(roomID), realtime.Query{
		OrderBy:     "timestamp",
		LimitToLast: DefaultPageSize,
	})
	if err != nil {
		return nil, err
	}
	return buildPage(snaps, "", len(snaps) == DefaultPageSize)
}

// FetchOlderPage đọc trang cũ hơn cursor: query theo key với endAt(cursor),
// phần tử cursor bị loại khỏi kết quả.
func (s *ChatService) FetchOlderPage(ctx context.Context, roomID, cursor string) (*MessagePage, error) {
	snaps, err := s.store.GetOrdered(ctx, chatmodels.RoomMessagesPath(roomID), realtime.Query{
		EndAt:       cursor,
		LimitToLast: DefaultPageSize,
	})
	if err != nil {
		return nil, err
	}
	return buildPage(snaps, cursor, len(snaps) == DefaultPageSize)
}

// buildPage decode danh sách snapshot thành trang hiển thị, loại phần tử cursor
// và sắp theo (timestamp, key).
func buildPage(snaps []realtime.ChildSnapshot, dropKey string, hasMore bool) (*MessagePage, error) {
	page := &MessagePage{
		Messages: make([]chatmodels.ChatMessage, 0, len(snaps)),
		HasMore:  hasMore,
	}
	for _, snap := range snaps {
		if dropKey != "" && snap.Key == dropKey {
			continue
		}
		msg, err := snapshotToMessage(snap)
		if err != nil {
			return nil, err
		}
		page.Messages = append(page.Messages, msg)
	}
	sort.SliceStable(page.Messages, func(i, j int) bool {
		if page.Messages[i].Timestamp != page.Messages[j].Timestamp {
			return page.Messages[i].Timestamp < page.Messages[j].Timestamp
		}
		return page.Messages[i].Key < page.Messages[j].Key
	})
	if len(page.Messages) > 0 {
		page.Cursor = page.Messages[0].Key
	}
	return page, nil
}

// UpdatePresence ghi đè trạng thái hiện diện của user trong phòng (last-writer-wins).
func (s *ChatService) UpdatePresence(ctx context.Context, roomID, uid string, online bool) error {
	presence := chatmodels.Presence{
		Online:     online,
		LastActive: time.Now().UnixMilli(),
		Typing:     false,
	}
	return s.store.Set(ctx, chatmodels.RoomPresencePath(roomID, uid), presence)
}

// UpdateTyping ghi đè trạng thái đang gõ (last-writer-wins, user đang gõ thì đang online).
func (s *ChatService) UpdateTyping(ctx context.Context, roomID, uid string, typing bool) error {
	presence := chatmodels.Presence{
		Online:     true,
		LastActive: time.Now().UnixMilli(),
		Typing:     typing,
	}
	return s.store.Set(ctx, chatmodels.RoomPresencePath(roomID, uid), presence)
}

// GetRoomPresence đọc toàn bộ presence của một phòng.
func (s *ChatService) GetRoomPresence(ctx context.Context, roomID string) (map[string]chatmodels.Presence, error) {
	var raw map[string]chatmodels.Presence
	if err := s.store.Get(ctx, chatmodels.PresencePath+"/"+roomID, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]chatmodels.Presence{}
	}
	return raw, nil
}
