// Package chatsvc - Test MessageLog: phân trang lùi, live tail, dedupe, detach.
package chatsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	chatmodels "active_core/internal/api/chat/models"
	"active_core/internal/api/chat/realtime"
)

// seedMessages ghi n tin nhắn vào phòng với timestamp 1..n, trả về keys theo thứ tự.
func seedMessages(t *testing.T, store realtime.RealtimeStore, roomID string, n int) []string {
	t.Helper()
	ctx := context.Background()
	var keys []string
	for i := 1; i <= n; i++ {
		key, err := store.Push(ctx, chatmodels.RoomMessagesPath(roomID), chatmodels.ChatMessage{
			SenderID:  "user1",
			Text:      fmt.Sprintf("msg-%d", i),
			Timestamp: int64(i),
		})
		if err != nil {
			t.Fatalf("Push tin nhắn %d lỗi: %v", i, err)
		}
		keys = append(keys, key)
	}
	return keys
}

func TestMessageLog_LoadInitial(t *testing.T) {
	store := realtime.NewMemoryStore()
	keys := seedMessages(t, store, "room1", 20)

	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}

	msgs := log.Messages()
	if len(msgs) != DefaultPageSize {
		t.Fatalf("LoadInitial giữ %d tin, muốn %d", len(msgs), DefaultPageSize)
	}
	// Trang đầu là 15 tin cuối, hiển thị tăng dần: msg-6 .. msg-20
	if msgs[0].Text != "msg-6" {
		t.Errorf("Tin đầu trang = %q, muốn msg-6", msgs[0].Text)
	}
	if msgs[len(msgs)-1].Text != "msg-20" {
		t.Errorf("Tin cuối trang = %q, muốn msg-20", msgs[len(msgs)-1].Text)
	}
	if !log.HasMore() {
		t.Error("Còn 5 tin cũ hơn, hasMore phải là true")
	}
	if log.Cursor() != keys[5] {
		t.Errorf("Cursor = %q, muốn key của msg-6 (%q)", log.Cursor(), keys[5])
	}
}

func TestMessageLog_LoadInitialItHonMotTrang(t *testing.T) {
	store := realtime.NewMemoryStore()
	seedMessages(t, store, "room1", 7)

	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}

	if len(log.Messages()) != 7 {
		t.Fatalf("LoadInitial giữ %d tin, muốn 7", len(log.Messages()))
	}
	// Trang ngắn hơn N → hết lịch sử ngay từ đầu
	if log.HasMore() {
		t.Error("Chỉ có 7 tin, hasMore phải là false")
	}
}

func TestMessageLog_LoadOlderNoiLienLichSu(t *testing.T) {
	store := realtime.NewMemoryStore()
	keys := seedMessages(t, store, "room1", 20)

	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}
	if err := log.LoadOlder(context.Background()); err != nil {
		t.Fatalf("LoadOlder lỗi: %v", err)
	}

	msgs := log.Messages()
	if len(msgs) != 20 {
		t.Fatalf("Sau LoadOlder log giữ %d tin, muốn đủ 20", len(msgs))
	}
	// Log nối liền: msg-1 .. msg-20, không trùng, đúng thứ tự (timestamp, key)
	for i, msg := range msgs {
		want := fmt.Sprintf("msg-%d", i+1)
		if msg.Text != want {
			t.Errorf("msgs[%d].Text = %q, muốn %q", i, msg.Text, want)
		}
	}
	if log.HasMore() {
		t.Error("Đã tải hết lịch sử, hasMore phải là false")
	}
	if log.Cursor() != keys[0] {
		t.Errorf("Cursor = %q, muốn key của msg-1 (%q)", log.Cursor(), keys[0])
	}

	// Hết lịch sử rồi thì LoadOlder tiếp theo là no-op
	if err := log.LoadOlder(context.Background()); err != nil {
		t.Fatalf("LoadOlder no-op lỗi: %v", err)
	}
	if len(log.Messages()) != 20 {
		t.Error("LoadOlder sau khi hết lịch sử không được thay đổi log")
	}
}

// failingStore bọc MemoryStore và chủ động lỗi GetOrdered khi bật cờ.
type failingStore struct {
	*realtime.MemoryStore
	fail bool
}

func (s *failingStore) GetOrdered(ctx context.Context, path string, q realtime.Query) ([]realtime.ChildSnapshot, error) {
	if s.fail {
		return nil, errors.New("realtime database unavailable")
	}
	return s.MemoryStore.GetOrdered(ctx, path, q)
}

func TestMessageLog_LoadOlderThatBaiGiuNguyenLog(t *testing.T) {
	store := &failingStore{MemoryStore: realtime.NewMemoryStore()}
	seedMessages(t, store, "room1", 20)

	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}
	before := log.Messages()
	cursorBefore := log.Cursor()

	store.fail = true
	if err := log.LoadOlder(context.Background()); err == nil {
		t.Fatal("LoadOlder phải trả lỗi khi store lỗi")
	}

	// Thất bại không phá log: giữ nguyên tin, cursor và hasMore để retry được
	after := log.Messages()
	if len(after) != len(before) {
		t.Fatalf("Log thay đổi sau lỗi: %d → %d tin", len(before), len(after))
	}
	if log.Cursor() != cursorBefore {
		t.Errorf("Cursor thay đổi sau lỗi: %q → %q", cursorBefore, log.Cursor())
	}
	if !log.HasMore() {
		t.Error("hasMore phải giữ true sau lỗi để retry")
	}
	if log.LastError() == "" {
		t.Error("LastError phải được set sau lỗi")
	}

	log.DismissError()
	if log.LastError() != "" {
		t.Error("DismissError phải xóa lastError")
	}

	// Retry sau khi store hồi phục
	store.fail = false
	if err := log.LoadOlder(context.Background()); err != nil {
		t.Fatalf("LoadOlder retry lỗi: %v", err)
	}
	if len(log.Messages()) != 20 {
		t.Errorf("Retry thành công phải tải đủ 20 tin, nhận %d", len(log.Messages()))
	}
}

func TestMessageLog_ApplyLiveMessageDedupe(t *testing.T) {
	store := realtime.NewMemoryStore()
	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}

	snap := realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000a",
		Value: map[string]interface{}{"senderId": "user1", "text": "xin chào", "timestamp": float64(100)},
	}

	// Giao cùng một tin hai lần (listener + hub fan-out) → chỉ giữ một
	log.ApplyLiveMessage(snap)
	log.ApplyLiveMessage(snap)

	if len(log.Messages()) != 1 {
		t.Fatalf("Log giữ %d tin sau khi giao trùng, muốn 1", len(log.Messages()))
	}
}

func TestMessageLog_TinCungMillisecondKhongBiRoi(t *testing.T) {
	store := realtime.NewMemoryStore()
	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}

	// Hai tin cùng timestamp (server gán cùng một millisecond), key tăng dần
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000a",
		Value: map[string]interface{}{"text": "tin 1", "timestamp": float64(100)},
	})
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000b",
		Value: map[string]interface{}{"text": "tin 2", "timestamp": float64(100)},
	})

	msgs := log.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Log giữ %d tin, muốn đủ 2 tin cùng millisecond", len(msgs))
	}
	if msgs[0].Text != "tin 1" || msgs[1].Text != "tin 2" {
		t.Errorf("Thứ tự theo (timestamp, key) sai: %q, %q", msgs[0].Text, msgs[1].Text)
	}

	// Tin cùng timestamp nhưng key đứng trước tail là tin lịch sử, không nhận qua live tail
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc000000000000000",
		Value: map[string]interface{}{"text": "tin cũ", "timestamp": float64(100)},
	})
	if len(log.Messages()) != 2 {
		t.Errorf("Tin đứng trước tail theo (timestamp, key) phải bị bỏ qua, log giữ %d tin", len(log.Messages()))
	}
}

func TestMessageLog_BadgeKhiKhongNeoCuoi(t *testing.T) {
	store := realtime.NewMemoryStore()
	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}

	// Đang neo cuối → tin mới không tăng badge
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000a",
		Value: map[string]interface{}{"text": "tin 1", "timestamp": float64(100)},
	})
	if log.NewMessageCount() != 0 {
		t.Errorf("Đang neo cuối, badge = %d, muốn 0", log.NewMessageCount())
	}

	// Cuộn lên (bỏ neo) → tin mới tăng badge
	log.SetPinnedToTail(false)
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000b",
		Value: map[string]interface{}{"text": "tin 2", "timestamp": float64(200)},
	})
	if log.NewMessageCount() != 1 {
		t.Errorf("Không neo cuối, badge = %d, muốn 1", log.NewMessageCount())
	}

	// Tin cũ hơn tin cuối đang giữ bị bỏ qua
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000c",
		Value: map[string]interface{}{"text": "tin cũ", "timestamp": float64(50)},
	})
	if len(log.Messages()) != 2 {
		t.Errorf("Tin cũ hơn tin cuối phải bị bỏ qua, log giữ %d tin", len(log.Messages()))
	}

	// Neo lại cuối → badge reset
	log.SetPinnedToTail(true)
	if log.NewMessageCount() != 0 {
		t.Errorf("Neo lại cuối, badge = %d, muốn 0", log.NewMessageCount())
	}
}

func TestMessageLog_DetachBoQuaSuKien(t *testing.T) {
	store := realtime.NewMemoryStore()
	log := NewMessageLog(store, "room1")
	if err := log.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial lỗi: %v", err)
	}
	log.AttachLiveTail()
	log.Detach()

	// Sự kiện đến sau Detach (tin của phòng cũ) không được lọt vào log
	log.ApplyLiveMessage(realtime.ChildSnapshot{
		Key:   "-Nabc00000000000000a",
		Value: map[string]interface{}{"text": "tin muộn", "timestamp": float64(100)},
	})
	if len(log.Messages()) != 0 {
		t.Errorf("Log sau Detach giữ %d tin, muốn 0", len(log.Messages()))
	}
}
