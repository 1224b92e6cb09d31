package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product đại diện cho sản phẩm bán tại quầy (products): quần áo, phụ kiện, thực phẩm bổ sung.
type Product struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của sản phẩm

	Name        string  `json:"name" bson:"name" index:"text"` // Tên sản phẩm
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty" index:"single:1"` // apparel, supplement, accessory
	Stock       int     `json:"stock" bson:"stock"`                                            // Số lượng tồn kho
	ImageURL    string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IsActive    bool    `json:"isActive" bson:"isActive" index:"single:1" default:"true"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
