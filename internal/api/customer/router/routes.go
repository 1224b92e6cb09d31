// Package router đăng ký các route thuộc domain customer.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	customerhdl "active_core/internal/api/customer/handler"
	apirouter "active_core/internal/api/router"
)

// Register đăng ký tất cả route customer lên v1.
// Lịch sử membership của hội viên (GET /customers/:id/payments) nằm ở payment router vì đọc từ payment ledger.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	customerHandler, err := customerhdl.NewCustomerHandler()
	if err != nil {
		return fmt.Errorf("tạo CustomerHandler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/customers", customerHandler, apirouter.ReadWriteConfig, "admin")

	return nil
}
