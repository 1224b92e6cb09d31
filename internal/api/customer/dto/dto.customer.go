// Package dto - DTO cho domain customer.
package dto

// CustomerCreateInput dữ liệu tạo hội viên mới.
type CustomerCreateInput struct {
	Name  string `json:"name" validate:"required,no_xss"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
	Type  string `json:"type,omitempty" validate:"omitempty,customer_type"`
}

// CustomerUpdateInput dữ liệu cập nhật hội viên. Chỉ field non-zero được ghi.
type CustomerUpdateInput struct {
	Name  string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
	Type  string `json:"type,omitempty" validate:"omitempty,customer_type"`
}
