// Package router đăng ký các route thuộc domain payment.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"active_core/internal/api/middleware"
	paymenthdl "active_core/internal/api/payment/handler"
	apirouter "active_core/internal/api/router"
)

// Register đăng ký route payment lên v1.
// Ledger chỉ đọc qua CRUD; mọi thao tác ghi đi qua luồng add-customer-with-payment.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	paymentHandler, err := paymenthdl.NewPaymentHandler()
	if err != nil {
		return fmt.Errorf("tạo PaymentHandler: %w", err)
	}

	adminMiddleware := middleware.AuthMiddleware("admin")

	apirouter.RegisterRouteWithMiddleware(v1, "/payments", "POST", "/add-customer-with-payment", []fiber.Handler{adminMiddleware}, paymentHandler.HandleAddCustomerWithPayment)
	r.RegisterCRUDRoutes(v1, "/payments", paymentHandler, apirouter.ReadOnlyConfig, "admin")

	// Lịch sử membership của hội viên đọc từ payment ledger.
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/:id/payments", []fiber.Handler{adminMiddleware}, paymentHandler.HandleCustomerPayments)

	return nil
}
