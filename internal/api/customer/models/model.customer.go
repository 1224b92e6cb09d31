// Package models - model hội viên (customers).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerType định nghĩa loại hội viên
const (
	CustomerTypeRegular = "regular" // Hội viên thường
	CustomerTypeStudent = "student" // Học sinh, sinh viên
	CustomerTypeSenior  = "senior"  // Người cao tuổi
)

// Customer đại diện cho hội viên của phòng tập (customers).
// Khách vãng lai (walk-in) KHÔNG được lưu thành document trong collection này —
// họ chỉ xuất hiện dưới dạng snapshot trong payment.
type Customer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của hội viên

	Name  string `json:"name" bson:"name" index:"text"`
	Email string `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"` // Sparse unique: empty string bị loại khi insert
	Phone string `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	Type  string `json:"type" bson:"type" index:"single:1" default:"regular"` // regular, student, senior

	// Thông tin membership hiện hành (denormalized từ payment gần nhất)
	CurrentPlanID *primitive.ObjectID `json:"currentPlanId,omitempty" bson:"currentPlanId,omitempty" index:"single:1"`
	MemberSince   int64               `json:"memberSince,omitempty" bson:"memberSince,omitempty"` // Epoch millis của payment đầu tiên
	ExpiryDate    int64               `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`   // Epoch millis hết hạn gói hiện hành

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
