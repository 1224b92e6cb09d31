package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// pushChars là bảng ký tự sinh push key, giữ thứ tự lexicographic theo thời gian
// (cùng bảng ký tự với push ID của Firebase).
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// MemoryStore là RealtimeStore trong bộ nhớ, dùng cho test và fan-out cục bộ.
// Dữ liệu được chuẩn hóa qua JSON giống semantics của Firebase RTDB.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]interface{}

	// Push key: monotonic trong cùng một millisecond
	lastPushTime int64
	lastRand     [12]int

	// Child-added listeners theo path cha
	listenerMu sync.RWMutex
	listeners  map[string]map[int]func(ChildSnapshot)
	nextSubID  int
}

// NewMemoryStore tạo MemoryStore rỗng.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		root:      map[string]interface{}{},
		listeners: map[string]map[int]func(ChildSnapshot){},
	}
}

// normalize chuẩn hóa value qua JSON (struct → map, số → float64).
func normalize(value interface{}) (interface{}, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("không serialize được value: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("không chuẩn hóa được value: %w", err)
	}
	return out, nil
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// nodeAt trả về node tại path, nil nếu không tồn tại. Caller giữ lock.
func (s *MemoryStore) nodeAt(path string) interface{} {
	var current interface{} = s.root
	for _, seg := range splitPath(path) {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return current
}

// setAt ghi value tại path, tự tạo node trung gian. Caller giữ lock.
func (s *MemoryStore) setAt(path string, value interface{}) {
	segments := splitPath(path)
	current := s.root
	for i, seg := range segments {
		if i == len(segments)-1 {
			current[seg] = value
			return
		}
		next, ok := current[seg].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[seg] = next
		}
		current = next
	}
}

// Set ghi đè value tại path (last-writer-wins) rồi báo listener của path cha.
func (s *MemoryStore) Set(_ context.Context, path string, value interface{}) error {
	normalized, err := normalize(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.setAt(path, normalized)
	s.mu.Unlock()

	segments := splitPath(path)
	if len(segments) > 0 {
		parent := strings.Join(segments[:len(segments)-1], "/")
		s.notifyChildAdded(parent, segments[len(segments)-1], normalized)
	}
	return nil
}

// Get đọc value tại path vào dest. Path không tồn tại → dest giữ zero value.
func (s *MemoryStore) Get(_ context.Context, path string, dest interface{}) error {
	s.mu.RLock()
	node := s.nodeAt(path)
	s.mu.RUnlock()

	if node == nil {
		return nil
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("không serialize được node %s: %w", path, err)
	}
	return json.Unmarshal(raw, dest)
}

// Push thêm node con với key tự sinh, trả về key.
func (s *MemoryStore) Push(ctx context.Context, path string, value interface{}) (string, error) {
	key := s.nextPushKey()
	if err := s.Set(ctx, path+"/"+key, value); err != nil {
		return "", err
	}
	return key, nil
}

// nextPushKey sinh push key 20 ký tự: 8 ký tự timestamp + 12 ký tự ngẫu nhiên.
// Cùng một millisecond thì tăng phần ngẫu nhiên để key vẫn đơn điệu tăng.
func (s *MemoryStore) nextPushKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	if now == s.lastPushTime {
		for i := 11; i >= 0; i-- {
			s.lastRand[i]++
			if s.lastRand[i] < 64 {
				break
			}
			s.lastRand[i] = 0
		}
	} else {
		s.lastPushTime = now
		for i := range s.lastRand {
			s.lastRand[i] = rand.Intn(64)
		}
	}

	key := make([]byte, 20)
	ts := now
	for i := 7; i >= 0; i-- {
		key[i] = pushChars[ts%64]
		ts /= 64
	}
	for i := 0; i < 12; i++ {
		key[8+i] = pushChars[s.lastRand[i]]
	}
	return string(key)
}

// GetOrdered chạy query có thứ tự trên các node con trực tiếp của path.
func (s *MemoryStore) GetOrdered(_ context.Context, path string, q Query) ([]ChildSnapshot, error) {
	s.mu.RLock()
	node := s.nodeAt(path)
	s.mu.RUnlock()

	children, ok := node.(map[string]interface{})
	if !ok {
		return []ChildSnapshot{}, nil
	}

	type entry struct {
		key   string
		value interface{}
		order interface{} // Giá trị dùng để xếp thứ tự và so với StartAt/EndAt
	}
	entries := make([]entry, 0, len(children))
	for key, value := range children {
		e := entry{key: key, value: value}
		if q.OrderBy == "" {
			e.order = key
		} else if m, ok := value.(map[string]interface{}); ok {
			e.order = m[q.OrderBy]
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		cmp := compareOrderValues(entries[i].order, entries[j].order)
		if cmp != 0 {
			return cmp < 0
		}
		return entries[i].key < entries[j].key
	})

	// StartAt/EndAt là biên inclusive trên giá trị xếp thứ tự
	filtered := entries[:0]
	for _, e := range entries {
		if q.StartAt != nil && compareOrderValues(e.order, q.StartAt) < 0 {
			continue
		}
		if q.EndAt != nil && compareOrderValues(e.order, q.EndAt) > 0 {
			continue
		}
		filtered = append(filtered, e)
	}

	if q.LimitToLast > 0 && len(filtered) > q.LimitToLast {
		filtered = filtered[len(filtered)-q.LimitToLast:]
	}

	result := make([]ChildSnapshot, 0, len(filtered))
	for _, e := range filtered {
		m, _ := e.value.(map[string]interface{})
		result = append(result, ChildSnapshot{Key: e.key, Value: m})
	}
	return result, nil
}

// compareOrderValues so sánh hai giá trị thứ tự theo quy tắc RTDB rút gọn:
// nil < bool < number < string; number so sánh theo float64.
func compareOrderValues(a, b interface{}) int {
	ra, rb := orderRank(a), orderRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch va := a.(type) {
	case bool:
		vb := b.(bool)
		if va == vb {
			return 0
		}
		if !va {
			return -1
		}
		return 1
	case float64:
		vb := toFloat(b)
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		return 0
	case int:
		return compareOrderValues(float64(va), b)
	case int64:
		return compareOrderValues(float64(va), b)
	case string:
		vb := b.(string)
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		return 0
	}
	return 0
}

func orderRank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64, int, int64:
		return 2
	case string:
		return 3
	}
	return 4
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Delete xóa node tại path.
func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := splitPath(path)
	if len(segments) == 0 {
		s.root = map[string]interface{}{}
		return nil
	}
	parent := s.nodeAt(strings.Join(segments[:len(segments)-1], "/"))
	if m, ok := parent.(map[string]interface{}); ok {
		delete(m, segments[len(segments)-1])
	}
	return nil
}

// Subscribe đăng ký listener child-added trên một path cha.
// Trả về hàm unsubscribe. Listener được gọi đồng bộ khi có node con mới.
func (s *MemoryStore) Subscribe(path string, fn func(ChildSnapshot)) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	if s.listeners[path] == nil {
		s.listeners[path] = map[int]func(ChildSnapshot){}
	}
	id := s.nextSubID
	s.nextSubID++
	s.listeners[path][id] = fn

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners[path], id)
	}
}

func (s *MemoryStore) notifyChildAdded(parentPath, key string, value interface{}) {
	s.listenerMu.RLock()
	fns := make([]func(ChildSnapshot), 0, len(s.listeners[parentPath]))
	for _, fn := range s.listeners[parentPath] {
		fns = append(fns, fn)
	}
	s.listenerMu.RUnlock()

	m, _ := value.(map[string]interface{})
	snapshot := ChildSnapshot{Key: key, Value: m}
	for _, fn := range fns {
		fn(snapshot)
	}
}
