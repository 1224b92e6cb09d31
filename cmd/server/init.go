package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"active_core/config"
	catalogmodels "active_core/internal/api/catalog/models"
	customermodels "active_core/internal/api/customer/models"
	kpimodels "active_core/internal/api/kpi/models"
	paymentmodels "active_core/internal/api/payment/models"
	"active_core/internal/database"
	"active_core/internal/global"
	"active_core/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase (Auth + Realtime Database)
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Customers = "customers"
	global.MongoDB_ColNames.MembershipPlans = "membership_plans"
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Coaches = "coaches"
	global.MongoDB_ColNames.GymClasses = "gym_classes"
	global.MongoDB_ColNames.Payments = "payments"
	global.MongoDB_ColNames.KpiYears = "kpi_years"
	global.MongoDB_ColNames.KpiMonths = "kpi_months"
	global.MongoDB_ColNames.CustomerStats = "customer_stats"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, exists, payment_method, customer_type)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Customers), customermodels.Customer{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.MembershipPlans), catalogmodels.MembershipPlan{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Products), catalogmodels.Product{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Coaches), catalogmodels.Coach{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.GymClasses), catalogmodels.GymClass{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Payments), paymentmodels.Payment{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.KpiYears), kpimodels.KpiYear{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.KpiMonths), kpimodels.KpiMonth{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CustomerStats), kpimodels.CustomerStats{})
}

// initFirebase khởi tạo Firebase Admin SDK (Auth bắt buộc cho API, RTDB tùy chọn cho chat)
func initFirebase() {
	cfg := global.MongoDB_ServerConfig

	// Kiểm tra Firebase config có đầy đủ không
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath, cfg.FirebaseDatabaseURL)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, chỉ log warning để hệ thống vẫn chạy được
		return
	}

	global.RealtimeDB = utility.GetFirebaseRTDB()
	logrus.Info("Firebase initialized successfully")

	// Gán claim admin cho user quản trị nếu được cấu hình
	if cfg.FirebaseAdminUID != "" {
		if err := utility.SetAdminClaim(context.Background(), cfg.FirebaseAdminUID); err != nil {
			logrus.Errorf("Failed to set admin claim for %s: %v", cfg.FirebaseAdminUID, err)
		} else {
			logrus.Infof("Admin claim ensured for Firebase UID %s", cfg.FirebaseAdminUID)
		}
	}
}
