// Package realtime - Test MemoryStore: push key, query có thứ tự, listener.
package realtime

import (
	"context"
	"testing"
)

func TestMemoryStore_PushKeyTangDan(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var keys []string
	for i := 0; i < 50; i++ {
		key, err := store.Push(ctx, "chat/messages/room1", map[string]interface{}{"i": i})
		if err != nil {
			t.Fatalf("Push lỗi: %v", err)
		}
		keys = append(keys, key)
	}

	seen := map[string]bool{}
	for i, key := range keys {
		if len(key) != 20 {
			t.Fatalf("Push key %q phải dài 20 ký tự", key)
		}
		if seen[key] {
			t.Fatalf("Push key %q bị trùng", key)
		}
		seen[key] = true
		if i > 0 && !(keys[i-1] < key) {
			t.Fatalf("Push key không tăng dần: %q đứng sau %q", key, keys[i-1])
		}
	}
}

func TestMemoryStore_SetGetRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type presence struct {
		Online     bool  `json:"online"`
		LastActive int64 `json:"lastActive"`
	}
	if err := store.Set(ctx, "chat/presence/room1/user1", presence{Online: true, LastActive: 1234}); err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}

	var got presence
	if err := store.Get(ctx, "chat/presence/room1/user1", &got); err != nil {
		t.Fatalf("Get lỗi: %v", err)
	}
	if !got.Online || got.LastActive != 1234 {
		t.Errorf("Get trả về %+v, muốn online=true lastActive=1234", got)
	}

	// Path không tồn tại → dest giữ zero value, không lỗi
	var missing presence
	if err := store.Get(ctx, "chat/presence/room1/nonexistent", &missing); err != nil {
		t.Fatalf("Get path không tồn tại phải trả nil error, nhận: %v", err)
	}
	if missing.Online {
		t.Error("Get path không tồn tại phải giữ zero value")
	}
}

func TestMemoryStore_GetOrderedTheoChild(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Ghi không theo thứ tự timestamp
	for _, ts := range []int64{30, 10, 50, 20, 40} {
		if _, err := store.Push(ctx, "msgs", map[string]interface{}{"timestamp": ts}); err != nil {
			t.Fatalf("Push lỗi: %v", err)
		}
	}

	snaps, err := store.GetOrdered(ctx, "msgs", Query{OrderBy: "timestamp", LimitToLast: 3})
	if err != nil {
		t.Fatalf("GetOrdered lỗi: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("GetOrdered trả về %d phần tử, muốn 3", len(snaps))
	}
	// LimitToLast giữ 3 phần tử cuối theo thứ tự tăng dần: 30, 40, 50
	want := []float64{30, 40, 50}
	for i, snap := range snaps {
		if got := snap.Value["timestamp"].(float64); got != want[i] {
			t.Errorf("snaps[%d].timestamp = %v, muốn %v", i, got, want[i])
		}
	}
}

func TestMemoryStore_GetOrderedTheoKeyEndAtInclusive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var keys []string
	for i := 0; i < 5; i++ {
		key, err := store.Push(ctx, "msgs", map[string]interface{}{"i": i})
		if err != nil {
			t.Fatalf("Push lỗi: %v", err)
		}
		keys = append(keys, key)
	}

	// endAt là biên inclusive: kết quả phải chứa cả phần tử tại cursor
	snaps, err := store.GetOrdered(ctx, "msgs", Query{EndAt: keys[2], LimitToLast: 10})
	if err != nil {
		t.Fatalf("GetOrdered lỗi: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("GetOrdered endAt(keys[2]) trả về %d phần tử, muốn 3", len(snaps))
	}
	if snaps[len(snaps)-1].Key != keys[2] {
		t.Errorf("Phần tử cuối phải là cursor %q, nhận %q", keys[2], snaps[len(snaps)-1].Key)
	}
}

func TestMemoryStore_SubscribeChildAdded(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var received []ChildSnapshot
	unsubscribe := store.Subscribe("msgs", func(snap ChildSnapshot) {
		received = append(received, snap)
	})

	key, err := store.Push(ctx, "msgs", map[string]interface{}{"text": "xin chào"})
	if err != nil {
		t.Fatalf("Push lỗi: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("Listener nhận %d sự kiện, muốn 1", len(received))
	}
	if received[0].Key != key {
		t.Errorf("Listener nhận key %q, muốn %q", received[0].Key, key)
	}

	unsubscribe()
	if _, err := store.Push(ctx, "msgs", map[string]interface{}{"text": "sau unsubscribe"}); err != nil {
		t.Fatalf("Push lỗi: %v", err)
	}
	if len(received) != 1 {
		t.Errorf("Listener vẫn nhận sự kiện sau khi unsubscribe")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "chat/presence/room1/user1", map[string]interface{}{"online": true}); err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}
	if err := store.Delete(ctx, "chat/presence/room1/user1"); err != nil {
		t.Fatalf("Delete lỗi: %v", err)
	}

	var got map[string]interface{}
	if err := store.Get(ctx, "chat/presence/room1/user1", &got); err != nil {
		t.Fatalf("Get lỗi: %v", err)
	}
	if got != nil {
		t.Errorf("Node đã xóa vẫn còn dữ liệu: %v", got)
	}
}
