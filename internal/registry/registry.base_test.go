package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterVaGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("customers", "collection-customers")
	require.NoError(t, err)
	assert.True(t, isNew, "Đăng ký lần đầu phải là item mới")

	value, exists := r.Get("customers")
	require.True(t, exists)
	assert.Equal(t, "collection-customers", value)

	// Đăng ký trùng tên ghi đè item cũ
	isNew, err = r.Register("customers", "collection-customers-v2")
	require.NoError(t, err)
	assert.False(t, isNew, "Ghi đè không được tính là item mới")

	value, _ = r.Get("customers")
	assert.Equal(t, "collection-customers-v2", value)

	_, exists = r.Get("nonexistent")
	assert.False(t, exists)
}

func TestRegistry_RegisterTenRong(t *testing.T) {
	r := NewRegistry[int]()
	_, err := r.Register("", 1)
	assert.Error(t, err, "Tên rỗng phải bị từ chối")
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0
	creator := func() (int, error) {
		calls++
		return 42, nil
	}

	value, err := r.GetOrCreate("kpi_years", creator)
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	// Lần hai trả về item đã có, creator không chạy lại
	value, err = r.GetOrCreate("kpi_years", creator)
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, calls)
}

func TestRegistry_ClearGoiCleanup(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("payments", "collection-payments")
	require.NoError(t, err)

	cleaned := ""
	deleted, err := r.Clear("payments", func(item string) error {
		cleaned = item
		return nil
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "collection-payments", cleaned)

	_, exists := r.Get("payments")
	assert.False(t, exists)

	// Xóa item không tồn tại không lỗi
	deleted, err = r.Clear("payments", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRegistry_ClearCleanupLoi(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("payments", "collection-payments")
	require.NoError(t, err)

	// Cleanup lỗi thì item phải còn nguyên trong registry
	_, err = r.Clear("payments", func(string) error {
		return errors.New("đang còn connection mở")
	})
	assert.Error(t, err)
	_, exists := r.Get("payments")
	assert.True(t, exists)
}
