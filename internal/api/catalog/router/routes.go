// Package router đăng ký các route thuộc domain catalog: membership-plans, products, coaches, gym-classes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "active_core/internal/api/catalog/handler"
	apirouter "active_core/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
// Đọc chỉ cần đăng nhập; ghi yêu cầu quyền admin (RegisterCRUDRoutes tự gate).
func Register(v1 fiber.Router, r *apirouter.Router) error {
	planHandler, err := cataloghdl.NewMembershipPlanHandler()
	if err != nil {
		return fmt.Errorf("tạo MembershipPlanHandler: %w", err)
	}
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("tạo ProductHandler: %w", err)
	}
	coachHandler, err := cataloghdl.NewCoachHandler()
	if err != nil {
		return fmt.Errorf("tạo CoachHandler: %w", err)
	}
	gymClassHandler, err := cataloghdl.NewGymClassHandler()
	if err != nil {
		return fmt.Errorf("tạo GymClassHandler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/membership-plans", planHandler, apirouter.ReadWriteConfig, "")
	r.RegisterCRUDRoutes(v1, "/products", productHandler, apirouter.ReadWriteConfig, "")
	r.RegisterCRUDRoutes(v1, "/coaches", coachHandler, apirouter.ReadWriteConfig, "")
	r.RegisterCRUDRoutes(v1, "/gym-classes", gymClassHandler, apirouter.ReadWriteConfig, "")

	return nil
}
