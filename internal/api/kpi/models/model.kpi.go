// Package models - các document thống kê KPI (kpi_years, kpi_months, customer_stats).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KpiYear đánh dấu một năm đã có dữ liệu KPI (kpi_years).
// Document năm được tạo lazily khi payment đầu tiên của năm ghi nhận.
type KpiYear struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Year string `json:"year" bson:"year" index:"unique"` // 4 chữ số, vd "2024"

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// KpiMonth là bucket doanh thu + lượt khách của một tháng (kpi_months).
// Tạo lazily khi payment đầu tiên của tháng ghi nhận.
type KpiMonth struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Year  string `json:"year" bson:"year" index:"compound:year_month_unique"`
	Month string `json:"month" bson:"month" index:"compound:year_month_unique"` // "01".."12"

	Revenue   float64 `json:"revenue" bson:"revenue"`     // Tổng doanh thu trong tháng
	Customers int64   `json:"customers" bson:"customers"` // Tổng lượt khách thanh toán trong tháng

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// CustomerStatsKey là key cố định của document singleton customer_stats.
const CustomerStatsKey = "customer_stats"

// CustomerStats là document singleton đếm tổng khách (customer_stats).
// Hai counter đơn điệu không giảm; mỗi payment tăng ĐÚNG MỘT trong hai.
type CustomerStats struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Key                  string `json:"key" bson:"key" index:"unique"` // Luôn là CustomerStatsKey
	TotalCustomers       int64  `json:"totalCustomers" bson:"totalCustomers"`
	TotalWalkInCustomers int64  `json:"totalWalkInCustomers" bson:"totalWalkInCustomers"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
