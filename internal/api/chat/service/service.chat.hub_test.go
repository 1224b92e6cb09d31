// Package chatsvc - Test Hub và luồng chat end-to-end trên MemoryStore.
package chatsvc

import (
	"context"
	"fmt"
	"testing"
	"time"

	chatmodels "active_core/internal/api/chat/models"
	"active_core/internal/api/chat/realtime"
)

func readPresence(t *testing.T, store realtime.RealtimeStore, roomID, uid string) chatmodels.Presence {
	t.Helper()
	var p chatmodels.Presence
	if err := store.Get(context.Background(), chatmodels.RoomPresencePath(roomID, uid), &p); err != nil {
		t.Fatalf("Đọc presence %s/%s lỗi: %v", roomID, uid, err)
	}
	return p
}

func TestHub_JoinGhiPresenceOnline(t *testing.T) {
	store := realtime.NewMemoryStore()
	hub := NewHub(store)

	conn, err := hub.Join(context.Background(), "room1", "user1")
	if err != nil {
		t.Fatalf("Join lỗi: %v", err)
	}
	if conn.ID == "" {
		t.Error("Connection phải có ID")
	}
	if hub.RoomConnectionCount("room1") != 1 {
		t.Errorf("Phòng có %d connection, muốn 1", hub.RoomConnectionCount("room1"))
	}

	p := readPresence(t, store, "room1", "user1")
	if !p.Online {
		t.Error("Sau Join presence phải online")
	}
	if p.Typing {
		t.Error("Sau Join typing phải là false")
	}
}

func TestHub_LeaveChuyenPresenceOffline(t *testing.T) {
	store := realtime.NewMemoryStore()
	hub := NewHub(store)

	conn, err := hub.Join(context.Background(), "room1", "user1")
	if err != nil {
		t.Fatalf("Join lỗi: %v", err)
	}

	hub.Leave(conn.ID)

	if hub.RoomConnectionCount("room1") != 0 {
		t.Errorf("Sau Leave phòng còn %d connection, muốn 0", hub.RoomConnectionCount("room1"))
	}
	if p := readPresence(t, store, "room1", "user1"); p.Online {
		t.Error("Sau Leave presence phải offline")
	}

	// Leave lần hai với cùng ID là no-op
	hub.Leave(conn.ID)
}

func TestHub_DisconnectCungDuongDonDep(t *testing.T) {
	store := realtime.NewMemoryStore()
	hub := NewHub(store)

	conn, err := hub.Join(context.Background(), "room1", "user1")
	if err != nil {
		t.Fatalf("Join lỗi: %v", err)
	}

	// Rớt kết nối không chủ động: cleanup đã đăng ký vẫn chạy
	hub.Disconnect(conn.ID)

	if p := readPresence(t, store, "room1", "user1"); p.Online {
		t.Error("Sau Disconnect presence phải offline")
	}
	if _, ok := hub.Get(conn.ID); ok {
		t.Error("Sau Disconnect connection không còn trong hub")
	}
}

func TestChatService_SendMessageFanOut(t *testing.T) {
	store := realtime.NewMemoryStore()
	service := NewChatService(store)
	ctx := context.Background()

	conn1, err := service.Hub().Join(ctx, "room1", "user1")
	if err != nil {
		t.Fatalf("Join user1 lỗi: %v", err)
	}
	conn2, err := service.Hub().Join(ctx, "room1", "user2")
	if err != nil {
		t.Fatalf("Join user2 lỗi: %v", err)
	}
	connOther, err := service.Hub().Join(ctx, "room2", "user3")
	if err != nil {
		t.Fatalf("Join user3 lỗi: %v", err)
	}

	sent, err := service.SendMessage(ctx, "room1", chatmodels.ChatMessage{
		SenderID:   "user1",
		SenderName: "Nguyễn Văn A",
		Text:       "xin chào",
	})
	if err != nil {
		t.Fatalf("SendMessage lỗi: %v", err)
	}
	if sent.Key == "" {
		t.Fatal("SendMessage phải trả về tin kèm key")
	}
	if sent.Timestamp == 0 {
		t.Error("Timestamp phải do server gán")
	}

	// Mọi connection trong phòng đều nhận tin, kể cả listener + fan-out giao trùng
	for i, conn := range []*Connection{conn1, conn2} {
		msgs := conn.Log.Messages()
		if len(msgs) != 1 {
			t.Fatalf("conn%d giữ %d tin, muốn 1", i+1, len(msgs))
		}
		if msgs[0].Text != "xin chào" || msgs[0].Key != sent.Key {
			t.Errorf("conn%d nhận tin %+v, muốn text=xin chào key=%s", i+1, msgs[0], sent.Key)
		}
	}
	// Phòng khác không nhận gì
	if len(connOther.Log.Messages()) != 0 {
		t.Errorf("Connection phòng khác nhận %d tin, muốn 0", len(connOther.Log.Messages()))
	}
}

func TestChatService_SendMessageTextRong(t *testing.T) {
	service := NewChatService(realtime.NewMemoryStore())
	if _, err := service.SendMessage(context.Background(), "room1", chatmodels.ChatMessage{Text: "   "}); err == nil {
		t.Error("Tin nhắn rỗng phải bị từ chối")
	}
}

func TestChatService_CreateRoomVaListRooms(t *testing.T) {
	service := NewChatService(realtime.NewMemoryStore())
	ctx := context.Background()

	if _, err := service.CreateRoom(ctx, "  ", "admin1", nil); err == nil {
		t.Error("Tên phòng rỗng phải bị từ chối")
	}

	room, err := service.CreateRoom(ctx, "Hỗ trợ hội viên", "admin1", []string{"user1", "user2"})
	if err != nil {
		t.Fatalf("CreateRoom lỗi: %v", err)
	}
	if room.RoomID == "" {
		t.Fatal("Phòng mới phải có roomID")
	}

	rooms, err := service.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms lỗi: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("ListRooms trả về %d phòng, muốn 1", len(rooms))
	}
	if rooms[0].RoomID != room.RoomID || rooms[0].Name != "Hỗ trợ hội viên" {
		t.Errorf("ListRooms trả về %+v, muốn phòng vừa tạo", rooms[0])
	}
	for _, uid := range []string{"user1", "user2"} {
		member, ok := rooms[0].Participants[uid]
		if !ok {
			t.Errorf("Participants thiếu %s", uid)
			continue
		}
		if member.JoinedAt == 0 {
			t.Errorf("Participant %s phải có joinedAt", uid)
		}
	}
}

func TestChatService_FetchPagesStateless(t *testing.T) {
	store := realtime.NewMemoryStore()
	service := NewChatService(store)
	ctx := context.Background()

	for i := 1; i <= 20; i++ {
		if _, err := store.Push(ctx, chatmodels.RoomMessagesPath("room1"), chatmodels.ChatMessage{
			Text:      fmt.Sprintf("msg-%d", i),
			Timestamp: int64(i),
		}); err != nil {
			t.Fatalf("Push lỗi: %v", err)
		}
	}

	page, err := service.FetchInitialPage(ctx, "room1")
	if err != nil {
		t.Fatalf("FetchInitialPage lỗi: %v", err)
	}
	if len(page.Messages) != DefaultPageSize {
		t.Fatalf("Trang đầu có %d tin, muốn %d", len(page.Messages), DefaultPageSize)
	}
	if page.Messages[0].Text != "msg-6" {
		t.Errorf("Tin đầu trang = %q, muốn msg-6", page.Messages[0].Text)
	}
	if !page.HasMore {
		t.Error("Còn lịch sử cũ hơn, hasMore phải là true")
	}

	older, err := service.FetchOlderPage(ctx, "room1", page.Cursor)
	if err != nil {
		t.Fatalf("FetchOlderPage lỗi: %v", err)
	}
	// Phần tử cursor bị loại, còn lại msg-1 .. msg-5
	if len(older.Messages) != 5 {
		t.Fatalf("Trang cũ có %d tin, muốn 5", len(older.Messages))
	}
	if older.Messages[0].Text != "msg-1" || older.Messages[4].Text != "msg-5" {
		t.Errorf("Trang cũ từ %q đến %q, muốn msg-1 .. msg-5", older.Messages[0].Text, older.Messages[4].Text)
	}
	if older.HasMore {
		t.Error("Đã hết lịch sử, hasMore phải là false")
	}
}

func TestChatService_SweepStalePresence(t *testing.T) {
	store := realtime.NewMemoryStore()
	service := NewChatService(store)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	staleActive := now - (20 * time.Minute).Milliseconds()

	// user1 online nhưng stale, user2 online còn tươi, user3 vốn đã offline
	seed := map[string]chatmodels.Presence{
		"user1": {Online: true, LastActive: staleActive, Typing: true},
		"user2": {Online: true, LastActive: now},
		"user3": {Online: false, LastActive: staleActive},
	}
	for uid, p := range seed {
		if err := store.Set(ctx, chatmodels.RoomPresencePath("room1", uid), p); err != nil {
			t.Fatalf("Set presence lỗi: %v", err)
		}
	}

	swept, err := service.SweepStalePresence(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("SweepStalePresence lỗi: %v", err)
	}
	if swept != 1 {
		t.Errorf("Swept = %d, muốn 1 (chỉ user1 stale)", swept)
	}

	p1 := readPresence(t, store, "room1", "user1")
	if p1.Online || p1.Typing {
		t.Error("user1 phải bị chuyển offline và tắt typing")
	}
	if p1.LastActive != staleActive {
		t.Error("Sweep phải giữ nguyên lastActive cũ")
	}
	if p2 := readPresence(t, store, "room1", "user2"); !p2.Online {
		t.Error("user2 còn tươi, không được chuyển offline")
	}

	// Chạy lại không còn gì để quét
	swept, err = service.SweepStalePresence(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("SweepStalePresence lần hai lỗi: %v", err)
	}
	if swept != 0 {
		t.Errorf("Lần quét hai swept = %d, muốn 0", swept)
	}
}

func TestChatService_UpdatePresenceVaTyping(t *testing.T) {
	store := realtime.NewMemoryStore()
	service := NewChatService(store)
	ctx := context.Background()

	if err := service.UpdateTyping(ctx, "room1", "user1", true); err != nil {
		t.Fatalf("UpdateTyping lỗi: %v", err)
	}
	p := readPresence(t, store, "room1", "user1")
	if !p.Online || !p.Typing {
		t.Errorf("Sau UpdateTyping(true): %+v, muốn online + typing", p)
	}

	// Ghi đè toàn phần: presence mới thắng, typing về false
	if err := service.UpdatePresence(ctx, "room1", "user1", false); err != nil {
		t.Fatalf("UpdatePresence lỗi: %v", err)
	}
	p = readPresence(t, store, "room1", "user1")
	if p.Online || p.Typing {
		t.Errorf("Sau UpdatePresence(false): %+v, muốn offline + không typing", p)
	}
}
