// Package router đăng ký các route thuộc domain KPI.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	kpihdl "active_core/internal/api/kpi/handler"
	"active_core/internal/api/middleware"
	apirouter "active_core/internal/api/router"
)

// Register đăng ký route KPI lên v1. Toàn bộ trang overview chỉ dành cho admin.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	kpiHandler, err := kpihdl.NewKpiHandler()
	if err != nil {
		return fmt.Errorf("tạo KpiHandler: %w", err)
	}

	adminMiddleware := middleware.AuthMiddleware("admin")
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/overview", "GET", "/kpi/:year", []fiber.Handler{adminMiddleware}, kpiHandler.HandleGetYearOverview)

	return nil
}
