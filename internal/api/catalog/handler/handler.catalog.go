// Package cataloghdl - Handler CRUD cho domain catalog.
// Các handler đều embed BaseHandler: route CRUD chuẩn được đăng ký qua RegisterCRUDRoutes.
package cataloghdl

import (
	"fmt"

	basehdl "active_core/internal/api/base/handler"
	catalogdto "active_core/internal/api/catalog/dto"
	catalogmodels "active_core/internal/api/catalog/models"
	catalogsvc "active_core/internal/api/catalog/service"
)

// MembershipPlanHandler xử lý các request liên quan đến gói tập.
type MembershipPlanHandler struct {
	*basehdl.BaseHandler[catalogmodels.MembershipPlan, catalogdto.MembershipPlanCreateInput, catalogdto.MembershipPlanUpdateInput]
	PlanService *catalogsvc.MembershipPlanService
}

// NewMembershipPlanHandler tạo mới MembershipPlanHandler.
func NewMembershipPlanHandler() (*MembershipPlanHandler, error) {
	planService, err := catalogsvc.NewMembershipPlanService()
	if err != nil {
		return nil, fmt.Errorf("tạo MembershipPlanService: %w", err)
	}
	hdl := &MembershipPlanHandler{PlanService: planService}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.MembershipPlan, catalogdto.MembershipPlanCreateInput, catalogdto.MembershipPlanUpdateInput](planService.BaseServiceMongoImpl)
	return hdl, nil
}

// ProductHandler xử lý các request liên quan đến sản phẩm.
type ProductHandler struct {
	*basehdl.BaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo mới ProductHandler.
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProductService: %w", err)
	}
	hdl := &ProductHandler{ProductService: productService}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput](productService.BaseServiceMongoImpl)
	return hdl, nil
}

// CoachHandler xử lý các request liên quan đến huấn luyện viên.
type CoachHandler struct {
	*basehdl.BaseHandler[catalogmodels.Coach, catalogdto.CoachCreateInput, catalogdto.CoachUpdateInput]
	CoachService *catalogsvc.CoachService
}

// NewCoachHandler tạo mới CoachHandler.
func NewCoachHandler() (*CoachHandler, error) {
	coachService, err := catalogsvc.NewCoachService()
	if err != nil {
		return nil, fmt.Errorf("tạo CoachService: %w", err)
	}
	hdl := &CoachHandler{CoachService: coachService}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Coach, catalogdto.CoachCreateInput, catalogdto.CoachUpdateInput](coachService.BaseServiceMongoImpl)
	return hdl, nil
}

// GymClassHandler xử lý các request liên quan đến lớp tập.
type GymClassHandler struct {
	*basehdl.BaseHandler[catalogmodels.GymClass, catalogdto.GymClassCreateInput, catalogdto.GymClassUpdateInput]
	GymClassService *catalogsvc.GymClassService
}

// NewGymClassHandler tạo mới GymClassHandler.
func NewGymClassHandler() (*GymClassHandler, error) {
	gymClassService, err := catalogsvc.NewGymClassService()
	if err != nil {
		return nil, fmt.Errorf("tạo GymClassService: %w", err)
	}
	hdl := &GymClassHandler{GymClassService: gymClassService}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.GymClass, catalogdto.GymClassCreateInput, catalogdto.GymClassUpdateInput](gymClassService.BaseServiceMongoImpl)
	return hdl, nil
}
