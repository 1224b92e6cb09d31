// Package kpisvc - Test luồng ghi nhận payment vào bucket KPI trên store trong bộ nhớ.
package kpisvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	kpimodels "active_core/internal/api/kpi/models"
	"active_core/internal/common"
)

// memYearStore giả lập collection kpi_years trong bộ nhớ.
type memYearStore struct {
	years map[string]kpimodels.KpiYear
}

func (s *memYearStore) FindOne(_ context.Context, filter interface{}, _ *options.FindOneOptions) (kpimodels.KpiYear, error) {
	year := filter.(bson.M)["year"].(string)
	if doc, ok := s.years[year]; ok {
		return doc, nil
	}
	return kpimodels.KpiYear{}, common.ErrNotFound
}

func (s *memYearStore) InsertOne(_ context.Context, data kpimodels.KpiYear) (kpimodels.KpiYear, error) {
	data.ID = primitive.NewObjectID()
	s.years[data.Year] = data
	return data, nil
}

func (s *memYearStore) UpdateOne(_ context.Context, _ interface{}, _ interface{}, _ *options.UpdateOptions) (kpimodels.KpiYear, error) {
	return kpimodels.KpiYear{}, common.ErrNotFound
}

func (s *memYearStore) Find(_ context.Context, _ interface{}, _ *options.FindOptions) ([]kpimodels.KpiYear, error) {
	return nil, nil
}

// memMonthStore giả lập collection kpi_months trong bộ nhớ.
type memMonthStore struct {
	months []kpimodels.KpiMonth
}

func (s *memMonthStore) FindOne(_ context.Context, filter interface{}, _ *options.FindOneOptions) (kpimodels.KpiMonth, error) {
	f := filter.(bson.M)
	for _, doc := range s.months {
		if doc.Year == f["year"].(string) && doc.Month == f["month"].(string) {
			return doc, nil
		}
	}
	return kpimodels.KpiMonth{}, common.ErrNotFound
}

func (s *memMonthStore) InsertOne(_ context.Context, data kpimodels.KpiMonth) (kpimodels.KpiMonth, error) {
	data.ID = primitive.NewObjectID()
	s.months = append(s.months, data)
	return data, nil
}

func (s *memMonthStore) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ *options.UpdateOptions) (kpimodels.KpiMonth, error) {
	id := filter.(bson.M)["_id"].(primitive.ObjectID)
	set := update.(bson.M)["$set"].(bson.M)
	for i, doc := range s.months {
		if doc.ID != id {
			continue
		}
		if v, ok := set["revenue"]; ok {
			doc.Revenue = v.(float64)
		}
		if v, ok := set["customers"]; ok {
			doc.Customers = v.(int64)
		}
		s.months[i] = doc
		return doc, nil
	}
	return kpimodels.KpiMonth{}, common.ErrNotFound
}

func (s *memMonthStore) Find(_ context.Context, filter interface{}, _ *options.FindOptions) ([]kpimodels.KpiMonth, error) {
	year := filter.(bson.M)["year"].(string)
	var result []kpimodels.KpiMonth
	for _, doc := range s.months {
		if doc.Year == year {
			result = append(result, doc)
		}
	}
	return result, nil
}

// memStatsStore giả lập document singleton customer_stats.
type memStatsStore struct {
	doc *kpimodels.CustomerStats
}

func (s *memStatsStore) FindOne(_ context.Context, filter interface{}, _ *options.FindOneOptions) (kpimodels.CustomerStats, error) {
	if s.doc != nil && s.doc.Key == filter.(bson.M)["key"].(string) {
		return *s.doc, nil
	}
	return kpimodels.CustomerStats{}, common.ErrNotFound
}

func (s *memStatsStore) InsertOne(_ context.Context, data kpimodels.CustomerStats) (kpimodels.CustomerStats, error) {
	data.ID = primitive.NewObjectID()
	s.doc = &data
	return data, nil
}

func (s *memStatsStore) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ *options.UpdateOptions) (kpimodels.CustomerStats, error) {
	if s.doc == nil || s.doc.ID != filter.(bson.M)["_id"].(primitive.ObjectID) {
		return kpimodels.CustomerStats{}, common.ErrNotFound
	}
	set := update.(bson.M)["$set"].(bson.M)
	if v, ok := set["totalCustomers"]; ok {
		s.doc.TotalCustomers = v.(int64)
	}
	if v, ok := set["totalWalkInCustomers"]; ok {
		s.doc.TotalWalkInCustomers = v.(int64)
	}
	return *s.doc, nil
}

func (s *memStatsStore) Find(_ context.Context, _ interface{}, _ *options.FindOptions) ([]kpimodels.CustomerStats, error) {
	return nil, nil
}

func newMemKpiService() (*KpiService, *memMonthStore, *memStatsStore) {
	months := &memMonthStore{}
	stats := &memStatsStore{}
	service := &KpiService{
		Years:  &memYearStore{years: map[string]kpimodels.KpiYear{}},
		Months: months,
		Stats:  stats,
	}
	return service, months, stats
}

func TestRecordPayment_TichLuyBucketThang(t *testing.T) {
	service, months, stats := newMemKpiService()
	ctx := context.Background()
	paidAt := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	// N payment tuần tự vào cùng một bucket: customers = N, revenue = tổng giá.
	// Payment amount 0 vẫn tính một lượt khách.
	for _, amount := range []float64{100, 200, 0} {
		if err := service.RecordPayment(ctx, amount, false, paidAt); err != nil {
			t.Fatalf("RecordPayment(%v) lỗi: %v", amount, err)
		}
	}

	bucket, err := months.FindOne(ctx, bson.M{"year": "2024", "month": "03"}, nil)
	if err != nil {
		t.Fatalf("Bucket tháng 03/2024 phải tồn tại: %v", err)
	}
	if bucket.Revenue != 300 {
		t.Errorf("Revenue = %v, muốn 300", bucket.Revenue)
	}
	if bucket.Customers != 3 {
		t.Errorf("Customers = %d, muốn 3", bucket.Customers)
	}
	if stats.doc == nil || stats.doc.TotalCustomers != 3 {
		t.Errorf("totalCustomers = %+v, muốn 3", stats.doc)
	}
}

func TestRecordPayment_KichBanNgay20240315(t *testing.T) {
	service, months, stats := newMemKpiService()
	ctx := context.Background()
	paidAt := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	// Payment 1500 của hội viên: tháng "03" năm "2024" +1500/+1, totalCustomers +1
	if err := service.RecordPayment(ctx, 1500, false, paidAt); err != nil {
		t.Fatalf("RecordPayment lỗi: %v", err)
	}

	if _, err := service.Years.FindOne(ctx, bson.M{"year": "2024"}, nil); err != nil {
		t.Errorf("Document năm 2024 phải được tạo lazily: %v", err)
	}
	bucket, err := months.FindOne(ctx, bson.M{"year": "2024", "month": "03"}, nil)
	if err != nil {
		t.Fatalf("Bucket tháng 03/2024 phải tồn tại: %v", err)
	}
	if bucket.Revenue != 1500 || bucket.Customers != 1 {
		t.Errorf("Bucket = {revenue: %v, customers: %d}, muốn {1500, 1}", bucket.Revenue, bucket.Customers)
	}
	if stats.doc.TotalCustomers != 1 || stats.doc.TotalWalkInCustomers != 0 {
		t.Errorf("Stats = {%d, %d}, muốn {1, 0} — walk-in không được tăng", stats.doc.TotalCustomers, stats.doc.TotalWalkInCustomers)
	}

	// Payment walk-in tiếp theo: chỉ tăng totalWalkInCustomers, totalCustomers giữ nguyên
	if err := service.RecordPayment(ctx, 50, true, paidAt); err != nil {
		t.Fatalf("RecordPayment walk-in lỗi: %v", err)
	}
	if stats.doc.TotalCustomers != 1 || stats.doc.TotalWalkInCustomers != 1 {
		t.Errorf("Stats = {%d, %d}, muốn {1, 1} — mỗi payment tăng đúng một counter", stats.doc.TotalCustomers, stats.doc.TotalWalkInCustomers)
	}
}

func TestGetYearOverview_ChuaCoStats(t *testing.T) {
	service, _, _ := newMemKpiService()

	_, err := service.GetYearOverview(context.Background(), "2024")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Chưa có customer_stats phải trả ErrNotFound, nhận: %v", err)
	}
}

func TestGetYearOverview_SoSanhHaiNam(t *testing.T) {
	service, _, _ := newMemKpiService()
	ctx := context.Background()

	// 2023: một payment 1000. 2024: hai payment 1500 (tháng 3) + 500 (tháng 4).
	if err := service.RecordPayment(ctx, 1000, false, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RecordPayment 2023 lỗi: %v", err)
	}
	if err := service.RecordPayment(ctx, 1500, false, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RecordPayment 2024-03 lỗi: %v", err)
	}
	if err := service.RecordPayment(ctx, 500, false, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RecordPayment 2024-04 lỗi: %v", err)
	}

	resp, err := service.GetYearOverview(ctx, "2024")
	if err != nil {
		t.Fatalf("GetYearOverview lỗi: %v", err)
	}

	if resp.TotalRevenue != 2000 {
		t.Errorf("TotalRevenue = %v, muốn 2000", resp.TotalRevenue)
	}
	if resp.TotalMonthlyCustomers != 2 {
		t.Errorf("TotalMonthlyCustomers = %d, muốn 2", resp.TotalMonthlyCustomers)
	}
	if len(resp.YearData) != 12 {
		t.Fatalf("YearData có %d dòng, muốn đủ 12 tháng", len(resp.YearData))
	}
	if resp.YearData[2].Revenue != 1500 || resp.YearData[2].Customers != 1 {
		t.Errorf("Tháng 03 = {%v, %d}, muốn {1500, 1}", resp.YearData[2].Revenue, resp.YearData[2].Customers)
	}
	// Active% tích lũy trên tổng khách toàn hệ thống (3 khách): tháng 3 = 33.33, tháng 4 = 66.67
	if resp.YearData[2].Active != 33.33 {
		t.Errorf("Active tháng 03 = %v, muốn 33.33", resp.YearData[2].Active)
	}
	if resp.YearData[3].Active != 66.67 {
		t.Errorf("Active tháng 04 = %v, muốn 66.67", resp.YearData[3].Active)
	}

	if resp.RevenueComparison == nil || *resp.RevenueComparison != 200 {
		t.Errorf("RevenueComparison = %v, muốn 200 (2000/1000)", resp.RevenueComparison)
	}
	if resp.CustomerComparison == nil || *resp.CustomerComparison != 200 {
		t.Errorf("CustomerComparison = %v, muốn 200 (2/1)", resp.CustomerComparison)
	}
	// So sánh active là hiệu số hai tỷ lệ: 66.67 − 33.33
	if resp.ActiveCustomersComparison == nil || *resp.ActiveCustomersComparison != 33.34 {
		t.Errorf("ActiveCustomersComparison = %v, muốn 33.34", resp.ActiveCustomersComparison)
	}
}
