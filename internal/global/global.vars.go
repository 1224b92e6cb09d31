// Package global chứa các biến toàn cục được chia sẻ trong toàn bộ ứng dụng.
// Các biến này được khởi tạo một lần khi server khởi động (cmd/server/init.go).
package global

import (
	"active_core/config"
	"active_core/internal/registry"

	"firebase.google.com/go/v4/db"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// ColNames chứa tên các collection trong MongoDB
type ColNames struct {
	Customers       string // Hội viên của phòng tập
	MembershipPlans string // Các gói tập
	Products        string // Sản phẩm (quần áo, phụ kiện)
	Coaches         string // Huấn luyện viên
	GymClasses      string // Lớp tập
	Payments        string // Sổ thanh toán (append-only)
	KpiYears        string // Tài liệu KPI theo năm
	KpiMonths       string // Tài liệu KPI theo tháng
	CustomerStats   string // Tài liệu thống kê hội viên (singleton)
}

var (
	// MongoDB_ColNames chứa tên các collection
	MongoDB_ColNames ColNames

	// Validate là validator singleton dùng chung cho toàn ứng dụng
	Validate *validator.Validate

	// MongoDB_Session là client MongoDB dùng chung
	MongoDB_Session *mongo.Client

	// MongoDB_ServerConfig là cấu hình server
	MongoDB_ServerConfig *config.Configuration

	// RealtimeDB là client Firebase Realtime Database (chat/presence)
	RealtimeDB *db.Client

	// RegistryCollections là registry chứa các collection đã khởi tạo
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()
)
