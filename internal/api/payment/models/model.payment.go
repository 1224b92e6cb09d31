// Package models - document payment (ledger thanh toán).
// Payment là append-only: mọi thông tin hội viên và gói tập được chụp snapshot
// tại thời điểm thanh toán để lịch sử không đổi khi dữ liệu gốc thay đổi.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerSnapshot chụp thông tin hội viên tại thời điểm thanh toán.
// Walk-in không được lưu vào collection customers nên CustomerID là nil.
// Loại "senior" được quy về "regular" trong snapshot.
type CustomerSnapshot struct {
	CustomerID *primitive.ObjectID `json:"customerId" bson:"customerId"`
	Name       string              `json:"name" bson:"name"`
	Type       string              `json:"type" bson:"type"`
}

// PlanSnapshot chụp thông tin gói tập tại thời điểm thanh toán.
// ExpiryDate = StartDate + DurationInDays ngày (theo lịch, không phải 24h x N).
type PlanSnapshot struct {
	PlanID         primitive.ObjectID `json:"planId" bson:"planId"`
	Name           string             `json:"name" bson:"name"`
	Amount         float64            `json:"amount" bson:"amount"`
	DurationInDays int                `json:"durationInDays" bson:"durationInDays"`
	StartDate      int64              `json:"startDate" bson:"startDate"`   // epoch millis
	ExpiryDate     int64              `json:"expiryDate" bson:"expiryDate"` // epoch millis
}

// Payment là một dòng trong ledger thanh toán (payments).
type Payment struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	PaymentID string `json:"paymentId" bson:"paymentId" index:"unique"` // "PAY-<epoch-millis>"
	Method    string `json:"method" bson:"method" index:"single:1"`     // cash | card | transfer | ewallet

	IsNewCustomer bool `json:"isNewCustomer" bson:"isNewCustomer"`
	IsWalkIn      bool `json:"isWalkIn" bson:"isWalkIn"`

	Customer    CustomerSnapshot `json:"customer" bson:"customer"`
	AvailedPlan PlanSnapshot     `json:"availedPlan" bson:"availedPlan"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
