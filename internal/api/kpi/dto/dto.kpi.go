// Package dto - DTO cho domain KPI.
package dto

// KpiMonthItem là một dòng trong yearData (luôn đủ 12 tháng "01".."12").
type KpiMonthItem struct {
	Month     string  `json:"month"`     // "01".."12"
	Revenue   float64 `json:"revenue"`   // Doanh thu trong tháng
	Customers int64   `json:"customers"` // Lượt khách thanh toán trong tháng
	Active    float64 `json:"active"`    // % khách lũy kế trong năm so với totalCustomers
}

// KpiOverviewResponse là payload của GET /admin/overview/kpi/:year.
// Các field *float64 là nil khi cả hai năm đều chưa có dữ liệu so sánh.
type KpiOverviewResponse struct {
	YearData                  []KpiMonthItem `json:"yearData"`
	TotalRevenue              float64        `json:"totalRevenue"`
	TotalMonthlyCustomers     int64          `json:"totalMonthlyCustomers"`
	ActiveCustomers           float64        `json:"activeCustomers"`
	RevenueComparison         *float64       `json:"revenueComparison"`
	CustomerComparison        *float64       `json:"customerComparison"`
	ActiveCustomersComparison *float64       `json:"activeCustomersComparison"`
}
