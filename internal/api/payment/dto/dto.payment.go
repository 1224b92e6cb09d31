// Package dto - DTO cho domain payment.
package dto

import (
	customerdto "active_core/internal/api/customer/dto"
)

// AddCustomerWithPaymentInput là body của POST /payments/add-customer-with-payment.
type AddCustomerWithPaymentInput struct {
	Customer customerdto.CustomerCreateInput `json:"customer" validate:"required"`
	PlanID   string                          `json:"planId" validate:"required"`
	Method   string                          `json:"method" validate:"required,payment_method"`
	IsWalkIn bool                            `json:"isWalkIn"`
}

// AddCustomerWithPaymentResult là kết quả của luồng thanh toán.
// Luôn trả về result, không bao giờ propagate panic ra ngoài:
// thành công → {success, customerId, paymentId, message}; thất bại → {success:false, error}.
type AddCustomerWithPaymentResult struct {
	Success    bool   `json:"success"`
	CustomerID string `json:"customerId,omitempty"`
	PaymentID  string `json:"paymentId,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}
