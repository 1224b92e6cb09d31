package realtime

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"active_core/internal/common"
)

// FirebaseStore là RealtimeStore chạy trên Firebase Realtime Database.
type FirebaseStore struct {
	client *db.Client
}

// NewFirebaseStore tạo FirebaseStore từ client đã khởi tạo.
func NewFirebaseStore(client *db.Client) (*FirebaseStore, error) {
	if client == nil {
		return nil, common.ErrRealtimeUnavailable
	}
	return &FirebaseStore{client: client}, nil
}

// Set ghi đè value tại path.
func (s *FirebaseStore) Set(ctx context.Context, path string, value interface{}) error {
	if err := s.client.NewRef(path).Set(ctx, value); err != nil {
		return common.NewError(common.ErrCodeRealtime, fmt.Sprintf("Lỗi ghi realtime tại %s", path), common.StatusInternalServerError, err)
	}
	return nil
}

// Get đọc value tại path vào dest.
func (s *FirebaseStore) Get(ctx context.Context, path string, dest interface{}) error {
	if err := s.client.NewRef(path).Get(ctx, dest); err != nil {
		return common.NewError(common.ErrCodeRealtimeQuery, fmt.Sprintf("Lỗi đọc realtime tại %s", path), common.StatusInternalServerError, err)
	}
	return nil
}

// Push thêm node con với push key của Firebase, trả về key.
func (s *FirebaseStore) Push(ctx context.Context, path string, value interface{}) (string, error) {
	ref, err := s.client.NewRef(path).Push(ctx, value)
	if err != nil {
		return "", common.NewError(common.ErrCodeRealtime, fmt.Sprintf("Lỗi push realtime tại %s", path), common.StatusInternalServerError, err)
	}
	return ref.Key, nil
}

// GetOrdered chạy query có thứ tự, map sang ChildSnapshot.
func (s *FirebaseStore) GetOrdered(ctx context.Context, path string, q Query) ([]ChildSnapshot, error) {
	ref := s.client.NewRef(path)

	var query *db.Query
	if q.OrderBy == "" {
		query = ref.OrderByKey()
	} else {
		query = ref.OrderByChild(q.OrderBy)
	}
	if q.StartAt != nil {
		query = query.StartAt(q.StartAt)
	}
	if q.EndAt != nil {
		query = query.EndAt(q.EndAt)
	}
	if q.LimitToLast > 0 {
		query = query.LimitToLast(q.LimitToLast)
	}

	nodes, err := query.GetOrdered(ctx)
	if err != nil {
		return nil, common.NewError(common.ErrCodeRealtimeQuery, fmt.Sprintf("Lỗi query realtime tại %s", path), common.StatusInternalServerError, err)
	}

	result := make([]ChildSnapshot, 0, len(nodes))
	for _, node := range nodes {
		var value map[string]interface{}
		if err := node.Unmarshal(&value); err != nil {
			return nil, common.NewError(common.ErrCodeRealtimeQuery, fmt.Sprintf("Lỗi decode node %s", node.Key()), common.StatusInternalServerError, err)
		}
		result = append(result, ChildSnapshot{Key: node.Key(), Value: value})
	}
	return result, nil
}

// Delete xóa node tại path.
func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	if err := s.client.NewRef(path).Delete(ctx); err != nil {
		return common.NewError(common.ErrCodeRealtime, fmt.Sprintf("Lỗi xóa realtime tại %s", path), common.StatusInternalServerError, err)
	}
	return nil
}
