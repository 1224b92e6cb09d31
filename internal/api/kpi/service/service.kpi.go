// Package kpisvc - Service thống kê KPI: ghi nhận payment vào bucket tháng/năm
// và đọc tổng hợp cho trang overview của admin.
package kpisvc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "active_core/internal/api/base/service"
	kpidto "active_core/internal/api/kpi/dto"
	kpimodels "active_core/internal/api/kpi/models"
	"active_core/internal/common"
	"active_core/internal/global"
	"active_core/internal/logger"
)

// kpiStore là phần giao diện của BaseServiceMongoImpl mà KpiService cần.
// Tách interface để test được các bước đọc-rồi-ghi trên store trong bộ nhớ.
type kpiStore[T any] interface {
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	InsertOne(ctx context.Context, data T) (T, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
}

// KpiService thao tác trên 3 collection: kpi_years, kpi_months, customer_stats.
type KpiService struct {
	Years  kpiStore[kpimodels.KpiYear]
	Months kpiStore[kpimodels.KpiMonth]
	Stats  kpiStore[kpimodels.CustomerStats]
}

// NewKpiService tạo KpiService mới từ registry collections.
func NewKpiService() (*KpiService, error) {
	yearCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.KpiYears)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.KpiYears, common.ErrNotFound)
	}
	monthCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.KpiMonths)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.KpiMonths, common.ErrNotFound)
	}
	statsCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CustomerStats)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CustomerStats, common.ErrNotFound)
	}
	return &KpiService{
		Years:  basesvc.NewBaseServiceMongo[kpimodels.KpiYear](yearCol),
		Months: basesvc.NewBaseServiceMongo[kpimodels.KpiMonth](monthCol),
		Stats:  basesvc.NewBaseServiceMongo[kpimodels.CustomerStats](statsCol),
	}, nil
}

// RecordPayment ghi nhận một payment vào KPI: cộng dồn bucket tháng (revenue, customers)
// và tăng đúng một counter trong customer_stats (walk-in hoặc hội viên).
// Các bước là đọc-rồi-ghi trên từng document, không dùng transaction.
// Payment amount = 0 vẫn tính một lượt khách.
func (s *KpiService) RecordPayment(ctx context.Context, amount float64, isWalkIn bool, paidAt time.Time) error {
	year := paidAt.Format("2006")
	month := paidAt.Format("01")

	if err := s.ensureYear(ctx, year); err != nil {
		return err
	}
	if err := s.bumpMonth(ctx, year, month, amount); err != nil {
		return err
	}
	if err := s.bumpCustomerStats(ctx, isWalkIn); err != nil {
		return err
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"year":     year,
		"month":    month,
		"amount":   amount,
		"isWalkIn": isWalkIn,
	}).Debug("📊 [KPI] Đã ghi nhận payment vào bucket tháng")
	return nil
}

// ensureYear tạo document kpi_years cho năm nếu chưa có.
func (s *KpiService) ensureYear(ctx context.Context, year string) error {
	_, err := s.Years.FindOne(ctx, bson.M{"year": year}, nil)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	_, err = s.Years.InsertOne(ctx, kpimodels.KpiYear{Year: year})
	return err
}

// bumpMonth cộng dồn doanh thu và lượt khách vào bucket tháng, tạo bucket nếu chưa có.
func (s *KpiService) bumpMonth(ctx context.Context, year, month string, amount float64) error {
	existing, err := s.Months.FindOne(ctx, bson.M{"year": year, "month": month}, nil)
	if errors.Is(err, common.ErrNotFound) {
		_, err = s.Months.InsertOne(ctx, kpimodels.KpiMonth{
			Year:      year,
			Month:     month,
			Revenue:   amount,
			Customers: 1,
		})
		return err
	}
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"revenue":   existing.Revenue + amount,
		"customers": existing.Customers + 1,
	}}
	_, err = s.Months.UpdateOne(ctx, bson.M{"_id": existing.ID}, update, nil)
	return err
}

// bumpCustomerStats tăng đúng một trong hai counter của document singleton customer_stats.
func (s *KpiService) bumpCustomerStats(ctx context.Context, isWalkIn bool) error {
	existing, err := s.Stats.FindOne(ctx, bson.M{"key": kpimodels.CustomerStatsKey}, nil)
	if errors.Is(err, common.ErrNotFound) {
		doc := kpimodels.CustomerStats{Key: kpimodels.CustomerStatsKey}
		if isWalkIn {
			doc.TotalWalkInCustomers = 1
		} else {
			doc.TotalCustomers = 1
		}
		_, err = s.Stats.InsertOne(ctx, doc)
		return err
	}
	if err != nil {
		return err
	}

	var update bson.M
	if isWalkIn {
		update = bson.M{"$set": bson.M{"totalWalkInCustomers": existing.TotalWalkInCustomers + 1}}
	} else {
		update = bson.M{"$set": bson.M{"totalCustomers": existing.TotalCustomers + 1}}
	}
	_, err = s.Stats.UpdateOne(ctx, bson.M{"_id": existing.ID}, update, nil)
	return err
}

// GetYearOverview tổng hợp KPI của một năm kèm so sánh với năm liền trước.
// Trả về common.ErrNotFound khi customer_stats chưa tồn tại (chưa có payment nào).
func (s *KpiService) GetYearOverview(ctx context.Context, year string) (*kpidto.KpiOverviewResponse, error) {
	stats, err := s.Stats.FindOne(ctx, bson.M{"key": kpimodels.CustomerStatsKey}, nil)
	if err != nil {
		return nil, err
	}

	yearNum, err := strconv.Atoi(year)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, "Năm không hợp lệ", common.StatusBadRequest, nil)
	}
	prevYear := strconv.Itoa(yearNum - 1)

	curMonths, err := s.monthsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	prevMonths, err := s.monthsByYear(ctx, prevYear)
	if err != nil {
		return nil, err
	}

	resp := &kpidto.KpiOverviewResponse{
		YearData: make([]kpidto.KpiMonthItem, 0, 12),
	}

	// Dựng đủ 12 dòng; tháng chưa có bucket hiển thị 0.
	var cumulative int64
	for m := 1; m <= 12; m++ {
		key := fmt.Sprintf("%02d", m)
		item := kpidto.KpiMonthItem{Month: key}
		if bucket, ok := curMonths[key]; ok {
			item.Revenue = bucket.Revenue
			item.Customers = bucket.Customers
		}
		cumulative += item.Customers
		if stats.TotalCustomers > 0 {
			item.Active = round2(float64(cumulative) / float64(stats.TotalCustomers) * 100)
		}
		resp.TotalRevenue += item.Revenue
		resp.TotalMonthlyCustomers += item.Customers
		resp.YearData = append(resp.YearData, item)
	}

	var prevRevenue float64
	var prevCustomers int64
	for _, bucket := range prevMonths {
		prevRevenue += bucket.Revenue
		prevCustomers += bucket.Customers
	}

	resp.RevenueComparison = compareGrowth(resp.TotalRevenue, prevRevenue)
	resp.CustomerComparison = compareGrowth(float64(resp.TotalMonthlyCustomers), float64(prevCustomers))

	// Active customers: tỷ lệ % khách của năm trên tổng khách toàn hệ thống,
	// so sánh giữa hai năm bằng hiệu số thay vì tỷ lệ tăng trưởng.
	var activeCur, activePrev float64
	if stats.TotalCustomers > 0 {
		activeCur = round2(float64(resp.TotalMonthlyCustomers) / float64(stats.TotalCustomers) * 100)
		activePrev = round2(float64(prevCustomers) / float64(stats.TotalCustomers) * 100)
	}
	resp.ActiveCustomers = activeCur
	if resp.TotalMonthlyCustomers > 0 || prevCustomers > 0 {
		diff := round2(activeCur - activePrev)
		resp.ActiveCustomersComparison = &diff
	}

	return resp, nil
}

// monthsByYear trả về map tháng → bucket của một năm.
func (s *KpiService) monthsByYear(ctx context.Context, year string) (map[string]kpimodels.KpiMonth, error) {
	buckets, err := s.Months.Find(ctx, bson.M{"year": year}, nil)
	if err != nil {
		return nil, err
	}
	result := make(map[string]kpimodels.KpiMonth, len(buckets))
	for _, b := range buckets {
		result[b.Month] = b
	}
	return result, nil
}

// compareGrowth tính (cur/prev)*100 làm tròn 2 chữ số.
// prev = 0 và cur > 0 → 100 (năm đầu có dữ liệu). Cả hai = 0 → nil.
func compareGrowth(cur, prev float64) *float64 {
	if prev > 0 {
		v := round2(cur / prev * 100)
		return &v
	}
	if cur > 0 {
		v := float64(100)
		return &v
	}
	return nil
}

// round2 làm tròn 2 chữ số thập phân.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
