// Package chatsvc - Service chat: message log theo từng viewer, hub quản lý
// kết nối phòng, và các thao tác room/presence/typing trên RealtimeStore.
package chatsvc

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	chatmodels "active_core/internal/api/chat/models"
	"active_core/internal/api/chat/realtime"
)

// DefaultPageSize là số tin nhắn mỗi trang của message log.
const DefaultPageSize = 15

// ChildSubscriber là store có khả năng phát sự kiện child-added (MemoryStore).
type ChildSubscriber interface {
	Subscribe(path string, fn func(realtime.ChildSnapshot)) func()
}

// MessageLog giữ cửa sổ tin nhắn của MỘT viewer trong MỘT phòng.
// Log là append-only theo (timestamp, key); phân trang lùi qua cursor,
// tin mới đến qua ApplyLiveMessage. Đổi phòng thì Detach và tạo log mới.
type MessageLog struct {
	mu       sync.Mutex
	store    realtime.RealtimeStore
	roomID   string
	pageSize int

	messages []chatmodels.ChatMessage
	keys     map[string]struct{}
	cursor   string // Key của tin cũ nhất đang giữ
	hasMore  bool

	loadingOlder bool // Guard một slot: LoadOlder tái nhập bị bỏ qua

	pinnedToTail    bool
	newMessageCount int

	lastError string // Lỗi tạm thời của lần LoadOlder gần nhất, dismiss được

	detachFn func()
	detached bool
}

// NewMessageLog tạo message log cho một phòng.
func NewMessageLog(store realtime.RealtimeStore, roomID string) *MessageLog {
	return &MessageLog{
		store:        store,
		roomID:       roomID,
		pageSize:     DefaultPageSize,
		keys:         map[string]struct{}{},
		pinnedToTail: true,
	}
}

// snapshotToMessage decode node realtime thành ChatMessage kèm key.
func snapshotToMessage(snap realtime.ChildSnapshot) (chatmodels.ChatMessage, error) {
	var msg chatmodels.ChatMessage
	raw, err := json.Marshal(snap.Value)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, err
	}
	msg.Key = snap.Key
	return msg, nil
}

// LoadInitial tải trang đầu: N tin cuối theo timestamp, hiển thị tăng dần.
// Cursor là key của tin cũ nhất; trang ngắn hơn N nghĩa là hết lịch sử.
func (l *MessageLog) LoadInitial(ctx context.Context) error {
	snaps, err := l.store.GetOrdered(ctx, chatmodels.RoomMessagesPath(l.roomID), realtime.Query{
		OrderBy:     "timestamp",
		LimitToLast: l.pageSize,
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = l.messages[:0]
	l.keys = map[string]struct{}{}
	for _, snap := range snaps {
		msg, err := snapshotToMessage(snap)
		if err != nil {
			return err
		}
		l.messages = append(l.messages, msg)
		l.keys[msg.Key] = struct{}{}
	}
	l.sortLocked()

	l.hasMore = len(snaps) == l.pageSize
	if len(l.messages) > 0 {
		l.cursor = l.messages[0].Key
	}
	return nil
}

// LoadOlder tải thêm một trang cũ hơn và prepend vào log.
// Query theo key với endAt(cursor): trang trả về chứa cả phần tử cursor,
// phần tử đó bị loại trước khi prepend. Gọi tái nhập khi đang tải bị bỏ qua.
// Thất bại giữ nguyên log và hasMore, chỉ set lastError.
func (l *MessageLog) LoadOlder(ctx context.Context) error {
	l.mu.Lock()
	if l.detached || l.loadingOlder || !l.hasMore || l.cursor == "" {
		l.mu.Unlock()
		return nil
	}
	l.loadingOlder = true
	cursor := l.cursor
	l.mu.Unlock()

	snaps, err := l.store.GetOrdered(ctx, chatmodels.RoomMessagesPath(l.roomID), realtime.Query{
		EndAt:       cursor,
		LimitToLast: l.pageSize,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadingOlder = false

	if err != nil {
		l.lastError = err.Error()
		return err
	}

	// Trang ngắn hơn N (tính cả phần tử cursor) nghĩa là đã chạm đầu lịch sử
	l.hasMore = len(snaps) == l.pageSize

	for _, snap := range snaps {
		if snap.Key == cursor {
			continue
		}
		if _, exists := l.keys[snap.Key]; exists {
			continue
		}
		msg, err := snapshotToMessage(snap)
		if err != nil {
			l.lastError = err.Error()
			return err
		}
		l.messages = append(l.messages, msg)
		l.keys[msg.Key] = struct{}{}
	}
	l.sortLocked()

	if len(l.messages) > 0 {
		l.cursor = l.messages[0].Key
	}
	// Tải lùi không đụng tới anchor cuối: pinnedToTail và badge giữ nguyên
	return nil
}

// ApplyLiveMessage nhận một tin child-added từ hub fan-out hoặc listener.
// Chỉ nhận tin đứng sau tin cuối đang giữ theo (timestamp, key) — timestamp
// bằng nhau vẫn nhận khi key lớn hơn (hai tin cùng millisecond).
// Trùng key bị bỏ qua (idempotent).
func (l *MessageLog) ApplyLiveMessage(snap realtime.ChildSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.detached {
		return
	}
	if _, exists := l.keys[snap.Key]; exists {
		return
	}
	msg, err := snapshotToMessage(snap)
	if err != nil {
		return
	}
	if n := len(l.messages); n > 0 {
		last := l.messages[n-1]
		if msg.Timestamp < last.Timestamp ||
			(msg.Timestamp == last.Timestamp && msg.Key < last.Key) {
			return
		}
	}

	l.messages = append(l.messages, msg)
	l.keys[msg.Key] = struct{}{}
	l.sortLocked()

	if len(l.messages) == 1 {
		l.cursor = l.messages[0].Key
	}

	if l.pinnedToTail {
		return
	}
	l.newMessageCount++
}

// sortLocked sắp lại toàn bộ log theo (timestamp, key). Caller giữ lock.
func (l *MessageLog) sortLocked() {
	sort.SliceStable(l.messages, func(i, j int) bool {
		if l.messages[i].Timestamp != l.messages[j].Timestamp {
			return l.messages[i].Timestamp < l.messages[j].Timestamp
		}
		return l.messages[i].Key < l.messages[j].Key
	})
}

// AttachLiveTail gắn listener child-added nếu store hỗ trợ (MemoryStore).
// Với FirebaseStore, tin mới đến qua hub fan-out sau mỗi Push.
func (l *MessageLog) AttachLiveTail() {
	subscriber, ok := l.store.(ChildSubscriber)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached || l.detachFn != nil {
		return
	}
	l.detachFn = subscriber.Subscribe(chatmodels.RoomMessagesPath(l.roomID), l.ApplyLiveMessage)
}

// Detach gỡ listener và khóa log; sự kiện đến sau bị bỏ qua (không leak sang phòng khác).
func (l *MessageLog) Detach() {
	l.mu.Lock()
	detachFn := l.detachFn
	l.detachFn = nil
	l.detached = true
	l.mu.Unlock()

	if detachFn != nil {
		detachFn()
	}
}

// SetPinnedToTail cập nhật trạng thái đang neo cuối log.
// Neo lại cuối thì badge tin mới được reset.
func (l *MessageLog) SetPinnedToTail(pinned bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pinnedToTail = pinned
	if pinned {
		l.newMessageCount = 0
	}
}

// Messages trả về bản sao log hiện tại theo thứ tự hiển thị.
func (l *MessageLog) Messages() []chatmodels.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]chatmodels.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Cursor trả về key của tin cũ nhất đang giữ.
func (l *MessageLog) Cursor() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// HasMore cho biết còn lịch sử cũ hơn để tải không.
func (l *MessageLog) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// NewMessageCount trả về số tin mới chưa xem (badge khi không neo cuối).
func (l *MessageLog) NewMessageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.newMessageCount
}

// LastError trả về lỗi tạm thời gần nhất, rỗng nếu không có.
func (l *MessageLog) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastError
}

// DismissError xóa lỗi tạm thời.
func (l *MessageLog) DismissError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = ""
}
