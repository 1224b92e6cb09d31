package chatsvc

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	chatmodels "active_core/internal/api/chat/models"
	"active_core/internal/api/chat/realtime"
	"active_core/internal/logger"
)

// Connection là một viewer đang mở một phòng chat.
type Connection struct {
	ID     string // uuid
	RoomID string
	UID    string
	Log    *MessageLog

	mu       sync.Mutex
	cleanups []func()
}

// RegisterCleanup đăng ký hàm dọn dẹp chạy khi connection đóng (Leave hoặc Disconnect).
func (c *Connection) RegisterCleanup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanups = append(c.cleanups, fn)
}

// runCleanups chạy các hàm dọn dẹp theo thứ tự đăng ký ngược, mỗi hàm đúng một lần.
func (c *Connection) runCleanups() {
	c.mu.Lock()
	cleanups := c.cleanups
	c.cleanups = nil
	c.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Hub quản lý các connection theo phòng và fan-out tin nhắn sau mỗi Push.
type Hub struct {
	store realtime.RealtimeStore

	mu    sync.RWMutex
	rooms map[string]map[string]*Connection // roomID → connID → conn
}

// NewHub tạo Hub mới trên một store.
func NewHub(store realtime.RealtimeStore) *Hub {
	return &Hub{
		store: store,
		rooms: map[string]map[string]*Connection{},
	}
}

// Join mở một connection vào phòng: tải trang đầu của log, ghi presence online
// và đăng ký cleanup chuyển presence về offline khi connection đóng.
func (h *Hub) Join(ctx context.Context, roomID, uid string) (*Connection, error) {
	log := NewMessageLog(h.store, roomID)
	if err := log.LoadInitial(ctx); err != nil {
		return nil, err
	}
	log.AttachLiveTail()

	conn := &Connection{
		ID:     uuid.NewString(),
		RoomID: roomID,
		UID:    uid,
		Log:    log,
	}

	presence := chatmodels.Presence{Online: true, LastActive: time.Now().UnixMilli(), Typing: false}
	if err := h.store.Set(ctx, chatmodels.RoomPresencePath(roomID, uid), presence); err != nil {
		log.Detach()
		return nil, err
	}

	// Cleanup đăng ký sẵn: dù Leave chủ động hay rớt kết nối đều về offline
	conn.RegisterCleanup(func() {
		offline := chatmodels.Presence{Online: false, LastActive: time.Now().UnixMilli(), Typing: false}
		if err := h.store.Set(context.Background(), chatmodels.RoomPresencePath(roomID, uid), offline); err != nil {
			logger.GetAppLogger().Warnf("⚠️ [CHAT] Không ghi được presence offline cho %s/%s: %v", roomID, uid, err)
		}
	})
	conn.RegisterCleanup(log.Detach)

	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = map[string]*Connection{}
	}
	h.rooms[roomID][conn.ID] = conn
	h.mu.Unlock()

	return conn, nil
}

// Leave đóng connection chủ động: chạy cleanup (presence offline, detach log) rồi gỡ khỏi hub.
func (h *Hub) Leave(connID string) {
	conn := h.remove(connID)
	if conn == nil {
		return
	}
	conn.runCleanups()
}

// Disconnect xử lý rớt kết nối: cùng đường dọn dẹp với Leave.
func (h *Hub) Disconnect(connID string) {
	h.Leave(connID)
}

// remove gỡ connection khỏi hub, trả về nil nếu không tìm thấy.
func (h *Hub) remove(connID string) *Connection {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID, conns := range h.rooms {
		if conn, ok := conns[connID]; ok {
			delete(conns, connID)
			if len(conns) == 0 {
				delete(h.rooms, roomID)
			}
			return conn
		}
	}
	return nil
}

// Get trả về connection theo ID.
func (h *Hub) Get(connID string) (*Connection, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conns := range h.rooms {
		if conn, ok := conns[connID]; ok {
			return conn, true
		}
	}
	return nil, false
}

// FanOut đẩy một tin child-added tới log của mọi connection trong phòng.
// Gọi sau mỗi Push vì Admin SDK không có listener phía server.
func (h *Hub) FanOut(roomID string, snap realtime.ChildSnapshot) {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.rooms[roomID]))
	for _, conn := range h.rooms[roomID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.Log.ApplyLiveMessage(snap)
	}
}

// RoomConnectionCount trả về số connection đang mở trong phòng.
func (h *Hub) RoomConnectionCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
