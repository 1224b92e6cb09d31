package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coach đại diện cho huấn luyện viên (coaches).
type Coach struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của HLV

	Name       string   `json:"name" bson:"name" index:"text"`
	Email      string   `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"` // Sparse unique: empty string bị loại khi insert
	Phone      string   `json:"phone,omitempty" bson:"phone,omitempty"`
	Specialties []string `json:"specialties,omitempty" bson:"specialties,omitempty"` // yoga, strength, cardio, ...
	Bio        string   `json:"bio,omitempty" bson:"bio,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IsActive   bool     `json:"isActive" bson:"isActive" index:"single:1" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
