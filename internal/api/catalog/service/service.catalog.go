// Package catalogsvc - Service cho domain catalog (gói tập, sản phẩm, HLV, lớp tập).
// Các collection catalog chỉ cần CRUD chuẩn nên service là wrapper mỏng quanh BaseServiceMongo.
package catalogsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "active_core/internal/api/base/service"
	catalogmodels "active_core/internal/api/catalog/models"
	"active_core/internal/common"
	"active_core/internal/global"
)

// MembershipPlanService xử lý CRUD gói tập.
type MembershipPlanService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.MembershipPlan]
}

// NewMembershipPlanService tạo MembershipPlanService mới.
func NewMembershipPlanService() (*MembershipPlanService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MembershipPlans)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.MembershipPlans, common.ErrNotFound)
	}
	return &MembershipPlanService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.MembershipPlan](coll),
	}, nil
}

// FindActivePlanById trả về gói tập đang active theo ID.
// Gói không tồn tại → common.ErrPlanNotFound; gói ngừng bán → common.ErrPlanInactive.
func (s *MembershipPlanService) FindActivePlanById(ctx context.Context, planID primitive.ObjectID) (*catalogmodels.MembershipPlan, error) {
	plan, err := s.FindOne(ctx, bson.M{"_id": planID}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrPlanNotFound
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, common.ErrPlanInactive
	}
	return &plan, nil
}

// ProductService xử lý CRUD sản phẩm.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Product]
}

// NewProductService tạo ProductService mới.
func NewProductService() (*ProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Products, common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Product](coll),
	}, nil
}

// CoachService xử lý CRUD huấn luyện viên.
type CoachService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Coach]
}

// NewCoachService tạo CoachService mới.
func NewCoachService() (*CoachService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Coaches)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Coaches, common.ErrNotFound)
	}
	return &CoachService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Coach](coll),
	}, nil
}

// GymClassService xử lý CRUD lớp tập.
type GymClassService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.GymClass]
}

// NewGymClassService tạo GymClassService mới.
func NewGymClassService() (*GymClassService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.GymClasses)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.GymClasses, common.ErrNotFound)
	}
	return &GymClassService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.GymClass](coll),
	}, nil
}
