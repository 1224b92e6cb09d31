// Package paymentsvc - Service thanh toán: orchestrate luồng ghi danh + thanh toán
// (resolve gói tập, tạo/tìm hội viên, ghi payment ledger, cập nhật KPI).
package paymentsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "active_core/internal/api/base/service"
	catalogsvc "active_core/internal/api/catalog/service"
	customermodels "active_core/internal/api/customer/models"
	customersvc "active_core/internal/api/customer/service"
	kpisvc "active_core/internal/api/kpi/service"
	paymentdto "active_core/internal/api/payment/dto"
	paymentmodels "active_core/internal/api/payment/models"
	"active_core/internal/common"
	"active_core/internal/global"
	"active_core/internal/logger"
)

// PaymentService xử lý payment ledger và luồng ghi danh kèm thanh toán.
type PaymentService struct {
	*basesvc.BaseServiceMongoImpl[paymentmodels.Payment]
	PlanService     *catalogsvc.MembershipPlanService
	CustomerService *customersvc.CustomerService
	KpiService      *kpisvc.KpiService
}

// NewPaymentService tạo PaymentService mới cùng các service phụ thuộc.
func NewPaymentService() (*PaymentService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Payments)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Payments, common.ErrNotFound)
	}
	planService, err := catalogsvc.NewMembershipPlanService()
	if err != nil {
		return nil, fmt.Errorf("tạo MembershipPlanService: %w", err)
	}
	customerService, err := customersvc.NewCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CustomerService: %w", err)
	}
	kpiService, err := kpisvc.NewKpiService()
	if err != nil {
		return nil, fmt.Errorf("tạo KpiService: %w", err)
	}
	return &PaymentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[paymentmodels.Payment](coll),
		PlanService:          planService,
		CustomerService:      customerService,
		KpiService:           kpiService,
	}, nil
}

// AddCustomerWithPayment thực hiện toàn bộ luồng ghi danh kèm thanh toán.
// Luôn trả về result (success hoặc error message), không bao giờ panic ra ngoài.
//
// Thứ tự: validate → resolve gói đang active → tạo/tìm hội viên (bỏ qua với walk-in)
// → cập nhật membership → ghi payment → ghi nhận KPI.
func (s *PaymentService) AddCustomerWithPayment(ctx context.Context, input *paymentdto.AddCustomerWithPaymentInput) (result *paymentdto.AddCustomerWithPaymentResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetAppLogger().Errorf("❌ [PAYMENT] Panic trong luồng thanh toán: %v", r)
			result = &paymentdto.AddCustomerWithPaymentResult{
				Success: false,
				Error:   fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
			}
		}
	}()

	if err := global.Validate.Struct(input); err != nil {
		return &paymentdto.AddCustomerWithPaymentResult{Success: false, Error: "Dữ liệu không hợp lệ: " + err.Error()}
	}

	planID, err := primitive.ObjectIDFromHex(input.PlanID)
	if err != nil {
		return &paymentdto.AddCustomerWithPaymentResult{Success: false, Error: "planId không hợp lệ"}
	}

	plan, err := s.PlanService.FindActivePlanById(ctx, planID)
	if err != nil {
		return &paymentdto.AddCustomerWithPaymentResult{Success: false, Error: err.Error()}
	}

	now := time.Now()
	startDate := now.UnixMilli()
	expiryDate := computeExpiry(now, plan.DurationInDays).UnixMilli()

	snapshot := paymentmodels.CustomerSnapshot{
		Name: input.Customer.Name,
		Type: coerceCustomerType(input.Customer.Type),
	}
	isNewCustomer := false

	// Walk-in không được lưu vào collection customers, chỉ tồn tại trong snapshot.
	if !input.IsWalkIn {
		customer, isNew, err := s.CustomerService.FindOrCreate(ctx, &input.Customer)
		if err != nil {
			return &paymentdto.AddCustomerWithPaymentResult{Success: false, Error: "Không tạo được hội viên: " + err.Error()}
		}
		if err := s.CustomerService.UpdateMembership(ctx, customer.ID, plan.ID, expiryDate); err != nil {
			return &paymentdto.AddCustomerWithPaymentResult{Success: false, Error: "Không cập nhật được membership: " + err.Error()}
		}
		snapshot.CustomerID = &customer.ID
		snapshot.Name = customer.Name
		snapshot.Type = coerceCustomerType(customer.Type)
		isNewCustomer = isNew
	}

	payment := paymentmodels.Payment{
		PaymentID:     newPaymentID(now),
		Method:        input.Method,
		IsNewCustomer: isNewCustomer,
		IsWalkIn:      input.IsWalkIn,
		Customer:      snapshot,
		AvailedPlan: paymentmodels.PlanSnapshot{
			PlanID:         plan.ID,
			Name:           plan.Name,
			Amount:         plan.Price,
			DurationInDays: plan.DurationInDays,
			StartDate:      startDate,
			ExpiryDate:     expiryDate,
		},
	}

	inserted, err := s.InsertOne(ctx, payment)
	if err != nil {
		return &paymentdto.AddCustomerWithPaymentResult{Success: false, Error: "Không ghi được payment: " + err.Error()}
	}

	// Payment đã persist là nguồn sự thật; lỗi KPI chỉ log, không fail luồng thanh toán.
	if err := s.KpiService.RecordPayment(ctx, plan.Price, input.IsWalkIn, now); err != nil {
		logger.GetAppLogger().Errorf("❌ [PAYMENT] Ghi nhận KPI thất bại cho %s: %v", inserted.PaymentID, err)
	}

	out := &paymentdto.AddCustomerWithPaymentResult{
		Success:   true,
		PaymentID: inserted.PaymentID,
		Message:   "Thanh toán thành công",
	}
	if snapshot.CustomerID != nil {
		out.CustomerID = snapshot.CustomerID.Hex()
	}
	return out
}

// FindByCustomerId trả về lịch sử thanh toán của một hội viên, mới nhất trước.
func (s *PaymentService) FindByCustomerId(ctx context.Context, customerID primitive.ObjectID) ([]paymentmodels.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"customer.customerId": customerID}, opts)
}

// newPaymentID sinh mã thanh toán dạng "PAY-<epoch-millis>".
func newPaymentID(at time.Time) string {
	return fmt.Sprintf("PAY-%d", at.UnixMilli())
}

// computeExpiry tính ngày hết hạn: ngày bắt đầu cộng số ngày của gói theo lịch.
func computeExpiry(start time.Time, durationInDays int) time.Time {
	return start.AddDate(0, 0, durationInDays)
}

// coerceCustomerType quy loại "senior" về "regular" khi chụp snapshot.
// Các loại khác giữ nguyên; rỗng coi là "regular".
func coerceCustomerType(t string) string {
	if t == "" || t == customermodels.CustomerTypeSenior {
		return customermodels.CustomerTypeRegular
	}
	return t
}
