// Package models - các model thuộc domain catalog (gói tập, sản phẩm, HLV, lớp tập).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipPlan đại diện cho gói tập (membership_plans).
// durationInDays quyết định ngày hết hạn của payment availed từ gói này.
type MembershipPlan struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của gói tập

	Name           string  `json:"name" bson:"name" index:"text"`                    // Tên gói (Monthly, Annual, ...)
	Description    string  `json:"description,omitempty" bson:"description,omitempty"`
	Price          float64 `json:"price" bson:"price"`                               // Giá gói, không âm
	DurationInDays int     `json:"durationInDays" bson:"durationInDays"`             // Số ngày hiệu lực, > 0
	IsActive       bool    `json:"isActive" bson:"isActive" index:"single:1" default:"true"` // Gói còn bán hay đã ngừng

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
