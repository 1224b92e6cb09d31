package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToMap(t *testing.T) {
	type plan struct {
		Name  string  `bson:"name"`
		Price float64 `bson:"price"`
	}

	m, err := ToMap(plan{Name: "Gói tháng", Price: 500000})
	require.NoError(t, err)
	assert.Equal(t, "Gói tháng", m["name"])
	assert.Equal(t, float64(500000), m["price"])
}

func TestCustomBson_Set(t *testing.T) {
	type membership struct {
		ExpiryDate int64 `bson:"expiryDate"`
	}

	customBson := &CustomBson{}
	query, err := customBson.Set(membership{ExpiryDate: 1700000000000})
	require.NoError(t, err)

	// Bọc trong toán tử $set, các toán tử khác không xuất hiện
	set, ok := query["$set"].(map[string]interface{})
	require.True(t, ok, "Query phải chứa $set dạng map")
	assert.Equal(t, int64(1700000000000), set["expiryDate"])
	assert.NotContains(t, query, "$push")
	assert.NotContains(t, query, "$unset")
}

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, String2ObjectID(id.Hex()))

	// Chuỗi không hợp lệ trả về NilObjectID thay vì lỗi
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("không hợp lệ"))
}

func TestContains(t *testing.T) {
	methods := []string{"cash", "card", "transfer"}
	assert.True(t, Contains(methods, "card"))
	assert.False(t, Contains(methods, "crypto"))
	assert.False(t, Contains([]string{}, "cash"))
}
