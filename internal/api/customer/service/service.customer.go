// Package customersvc - Service hội viên (customers).
package customersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "active_core/internal/api/base/service"
	customerdto "active_core/internal/api/customer/dto"
	customermodels "active_core/internal/api/customer/models"
	"active_core/internal/common"
	"active_core/internal/global"
)

// CustomerService xử lý CRUD hội viên.
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[customermodels.Customer]
}

// NewCustomerService tạo CustomerService mới.
func NewCustomerService() (*CustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Customers, common.ErrNotFound)
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[customermodels.Customer](coll),
	}, nil
}

// FindOrCreate tìm hội viên theo email/phone, tạo mới nếu chưa có.
// Trả về (customer, isNew, error). Dùng bởi luồng thanh toán cho khách không phải walk-in.
func (s *CustomerService) FindOrCreate(ctx context.Context, input *customerdto.CustomerCreateInput) (*customermodels.Customer, bool, error) {
	// Tìm theo email hoặc phone nếu có
	var orConds []bson.M
	if input.Email != "" {
		orConds = append(orConds, bson.M{"email": input.Email})
	}
	if input.Phone != "" {
		orConds = append(orConds, bson.M{"phone": input.Phone})
	}
	if len(orConds) > 0 {
		existing, err := s.FindOne(ctx, bson.M{"$or": orConds}, nil)
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, false, err
		}
	}

	custType := input.Type
	if custType == "" {
		custType = customermodels.CustomerTypeRegular
	}
	doc := customermodels.Customer{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Type:        custType,
		MemberSince: time.Now().UnixMilli(),
	}
	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

// UpdateMembership cập nhật thông tin gói hiện hành sau mỗi payment thành công.
func (s *CustomerService) UpdateMembership(ctx context.Context, customerID, planID primitive.ObjectID, expiryDate int64) error {
	update := bson.M{"$set": bson.M{
		"currentPlanId": planID,
		"expiryDate":    expiryDate,
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": customerID}, update, nil)
	return err
}
