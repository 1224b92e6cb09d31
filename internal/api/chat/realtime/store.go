// Package realtime trừu tượng hóa Realtime Database cho chat/presence.
// Có hai implementation: FirebaseStore (firebase.google.com/go/v4/db) dùng khi chạy
// thật, MemoryStore dùng cho hub fan-out cục bộ và test.
package realtime

import (
	"context"
)

// ChildSnapshot là một node con kèm key, trả về từ query có thứ tự.
type ChildSnapshot struct {
	Key   string
	Value map[string]interface{}
}

// Query mô tả một truy vấn có thứ tự trên các node con của một path.
// OrderBy rỗng nghĩa là xếp theo key (orderByKey).
type Query struct {
	OrderBy     string      // Tên child field, rỗng = theo key
	StartAt     interface{} // Biên dưới (inclusive), nil = không giới hạn
	EndAt       interface{} // Biên trên (inclusive), nil = không giới hạn
	LimitToLast int         // Lấy N phần tử cuối theo thứ tự, 0 = không giới hạn
}

// RealtimeStore là cổng dữ liệu realtime cho chat.
// Path dùng dấu "/" phân cấp, vd "chat/messages/<roomId>".
type RealtimeStore interface {
	// Set ghi đè value tại path (last-writer-wins).
	Set(ctx context.Context, path string, value interface{}) error

	// Get đọc value tại path vào dest. Path không tồn tại → dest giữ zero value.
	Get(ctx context.Context, path string, dest interface{}) error

	// Push thêm node con với key tự sinh (giữ thứ tự theo thời gian), trả về key.
	Push(ctx context.Context, path string, value interface{}) (string, error)

	// GetOrdered chạy query có thứ tự trên các node con của path,
	// kết quả trả về theo thứ tự tăng dần.
	GetOrdered(ctx context.Context, path string, q Query) ([]ChildSnapshot, error)

	// Delete xóa node tại path.
	Delete(ctx context.Context, path string) error
}
