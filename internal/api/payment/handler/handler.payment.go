// Package paymenthdl - Handler payment ledger và luồng ghi danh kèm thanh toán.
package paymenthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "active_core/internal/api/base/handler"
	paymentdto "active_core/internal/api/payment/dto"
	paymentmodels "active_core/internal/api/payment/models"
	paymentsvc "active_core/internal/api/payment/service"
	"active_core/internal/common"
)

// PaymentHandler xử lý các request thanh toán.
// Payment là append-only nên CRUD route chỉ mở phần đọc; ghi đi qua luồng nghiệp vụ.
type PaymentHandler struct {
	*basehdl.BaseHandler[paymentmodels.Payment, paymentdto.AddCustomerWithPaymentInput, paymentdto.AddCustomerWithPaymentInput]
	PaymentService *paymentsvc.PaymentService
}

// NewPaymentHandler tạo PaymentHandler mới.
func NewPaymentHandler() (*PaymentHandler, error) {
	paymentService, err := paymentsvc.NewPaymentService()
	if err != nil {
		return nil, fmt.Errorf("tạo PaymentService: %w", err)
	}
	hdl := &PaymentHandler{PaymentService: paymentService}
	hdl.BaseHandler = basehdl.NewBaseHandler[paymentmodels.Payment, paymentdto.AddCustomerWithPaymentInput, paymentdto.AddCustomerWithPaymentInput](paymentService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleAddCustomerWithPayment xử lý POST /payments/add-customer-with-payment.
// Response luôn là result object; success:false mang thông báo lỗi thay vì HTTP error.
func (h *PaymentHandler) HandleAddCustomerWithPayment(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input paymentdto.AddCustomerWithPaymentInput
		if err := c.Bind().Body(&input); err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "Dữ liệu gửi lên không đúng định dạng JSON", "status": "error",
			})
			return nil
		}

		result := h.PaymentService.AddCustomerWithPayment(c.Context(), &input)

		status := common.StatusOK
		if !result.Success {
			status = common.StatusBadRequest
		}
		c.Status(status).JSON(fiber.Map{
			"code": status, "message": common.MsgSuccess,
			"data": result, "status": "success",
		})
		return nil
	})
}

// HandleCustomerPayments xử lý GET /customers/:id/payments — lịch sử membership, mới nhất trước.
func (h *PaymentHandler) HandleCustomerPayments(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		customerID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "ID hội viên không hợp lệ", "status": "error",
			})
			return nil
		}

		payments, err := h.PaymentService.FindByCustomerId(c.Context(), customerID)
		if err != nil {
			c.Status(common.StatusInternalServerError).JSON(fiber.Map{
				"code": common.ErrCodeDatabase.Code, "message": "Lỗi truy vấn lịch sử thanh toán: " + err.Error(), "status": "error",
			})
			return nil
		}

		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess,
			"data": payments, "status": "success",
		})
		return nil
	})
}
