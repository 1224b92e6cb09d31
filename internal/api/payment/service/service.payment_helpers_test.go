// Package paymentsvc - Test các helper thuần của luồng thanh toán.
package paymentsvc

import (
	"fmt"
	"testing"
	"time"

	customermodels "active_core/internal/api/customer/models"
)

func TestComputeExpiry_CongNgayTheoLich(t *testing.T) {
	// Gói 30 ngày mua ngày 2024-03-15 hết hạn 2024-04-14
	start := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	expiry := computeExpiry(start, 30)

	want := time.Date(2024, 4, 14, 10, 30, 0, 0, time.UTC)
	if !expiry.Equal(want) {
		t.Errorf("computeExpiry(2024-03-15, 30) = %v, muốn %v", expiry, want)
	}
}

func TestComputeExpiry_QuaNamNhuan(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	expiry := computeExpiry(start, 1)

	// 2024 là năm nhuận
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if !expiry.Equal(want) {
		t.Errorf("computeExpiry(2024-02-28, 1) = %v, muốn %v", expiry, want)
	}
}

func TestNewPaymentID_DinhDang(t *testing.T) {
	at := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got := newPaymentID(at)

	want := fmt.Sprintf("PAY-%d", at.UnixMilli())
	if got != want {
		t.Errorf("newPaymentID = %q, muốn %q", got, want)
	}
}

func TestCoerceCustomerType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{customermodels.CustomerTypeSenior, customermodels.CustomerTypeRegular},
		{customermodels.CustomerTypeStudent, customermodels.CustomerTypeStudent},
		{customermodels.CustomerTypeRegular, customermodels.CustomerTypeRegular},
		{"", customermodels.CustomerTypeRegular},
	}
	for _, c := range cases {
		if got := coerceCustomerType(c.in); got != c.want {
			t.Errorf("coerceCustomerType(%q) = %q, muốn %q", c.in, got, c.want)
		}
	}
}
