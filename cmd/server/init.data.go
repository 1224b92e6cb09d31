package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	catalogmodels "active_core/internal/api/catalog/models"
	catalogsvc "active_core/internal/api/catalog/service"
	"active_core/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định: các gói tập cơ bản.
// Upsert theo tên nên chạy lại nhiều lần không tạo trùng.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	planService, err := catalogsvc.NewMembershipPlanService()
	if err != nil {
		log.Fatalf("Failed to initialize membership plan service: %v", err)
	}

	defaultPlans := []catalogmodels.MembershipPlan{
		{Name: "Gói ngày", Description: "Tập một ngày, phù hợp khách vãng lai", Price: 50000, DurationInDays: 1, IsActive: true},
		{Name: "Gói tháng", Description: "Tập không giới hạn trong 30 ngày", Price: 500000, DurationInDays: 30, IsActive: true},
		{Name: "Gói quý", Description: "Tập không giới hạn trong 90 ngày", Price: 1350000, DurationInDays: 90, IsActive: true},
		{Name: "Gói năm", Description: "Tập không giới hạn trong 365 ngày", Price: 4800000, DurationInDays: 365, IsActive: true},
	}

	for _, plan := range defaultPlans {
		if _, err := planService.Upsert(context.Background(), bson.M{"name": plan.Name}, plan); err != nil {
			log.WithError(err).Errorf("❌ [INIT] Failed to upsert default plan %s", plan.Name)
			continue
		}
	}

	log.Info("✅ [INIT] Default membership plans ensured")
}
