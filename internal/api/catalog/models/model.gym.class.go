package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymClass đại diện cho lớp tập theo lịch (gym_classes).
type GymClass struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của lớp tập

	Name        string              `json:"name" bson:"name" index:"text"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	CoachID     *primitive.ObjectID `json:"coachId,omitempty" bson:"coachId,omitempty" index:"single:1"` // HLV phụ trách
	Schedule    string              `json:"schedule,omitempty" bson:"schedule,omitempty"`                // Mô tả lịch (vd: "Mon/Wed/Fri 18:00")
	Capacity    int                 `json:"capacity" bson:"capacity"`                                    // Sĩ số tối đa
	IsActive    bool                `json:"isActive" bson:"isActive" index:"single:1" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
