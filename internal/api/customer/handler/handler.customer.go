// Package customerhdl - Handler CRUD hội viên.
package customerhdl

import (
	"fmt"

	basehdl "active_core/internal/api/base/handler"
	customerdto "active_core/internal/api/customer/dto"
	customermodels "active_core/internal/api/customer/models"
	customersvc "active_core/internal/api/customer/service"
)

// CustomerHandler xử lý các request liên quan đến hội viên.
type CustomerHandler struct {
	*basehdl.BaseHandler[customermodels.Customer, customerdto.CustomerCreateInput, customerdto.CustomerUpdateInput]
	CustomerService *customersvc.CustomerService
}

// NewCustomerHandler tạo mới CustomerHandler.
func NewCustomerHandler() (*CustomerHandler, error) {
	customerService, err := customersvc.NewCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CustomerService: %w", err)
	}
	hdl := &CustomerHandler{CustomerService: customerService}
	hdl.BaseHandler = basehdl.NewBaseHandler[customermodels.Customer, customerdto.CustomerCreateInput, customerdto.CustomerUpdateInput](customerService.BaseServiceMongoImpl)
	return hdl, nil
}
