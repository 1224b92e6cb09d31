// Package kpihdl - Handler trang overview KPI của admin.
package kpihdl

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gofiber/fiber/v3"

	basehdl "active_core/internal/api/base/handler"
	kpisvc "active_core/internal/api/kpi/service"
	"active_core/internal/common"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// KpiHandler xử lý API thống kê KPI.
type KpiHandler struct {
	KpiService *kpisvc.KpiService
}

// NewKpiHandler tạo KpiHandler mới.
func NewKpiHandler() (*KpiHandler, error) {
	svc, err := kpisvc.NewKpiService()
	if err != nil {
		return nil, fmt.Errorf("tạo KpiService: %w", err)
	}
	return &KpiHandler{KpiService: svc}, nil
}

// HandleGetYearOverview xử lý GET /admin/overview/kpi/:year.
// Trả 404 khi customer_stats chưa tồn tại (hệ thống chưa ghi nhận payment nào).
func (h *KpiHandler) HandleGetYearOverview(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		year := c.Params("year")
		if !yearPattern.MatchString(year) {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Năm phải gồm 4 chữ số", "status": "error",
			})
			return nil
		}

		overview, err := h.KpiService.GetYearOverview(c.Context(), year)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				c.Status(common.StatusNotFound).JSON(fiber.Map{
					"code": common.ErrCodeDatabaseQuery.Code, "message": "Chưa có dữ liệu thống kê", "status": "error",
				})
				return nil
			}
			var customErr *common.Error
			if errors.As(err, &customErr) {
				c.Status(customErr.StatusCode).JSON(fiber.Map{
					"code": customErr.Code.Code, "message": customErr.Message, "status": "error",
				})
				return nil
			}
			c.Status(common.StatusInternalServerError).JSON(fiber.Map{
				"code": common.ErrCodeDatabase.Code, "message": "Lỗi truy vấn thống kê: " + err.Error(), "status": "error",
			})
			return nil
		}

		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess,
			"data": overview, "status": "success",
		})
		return nil
	})
}
