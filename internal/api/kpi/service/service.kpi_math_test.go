// Package kpisvc - Test toán so sánh năm của trang overview.
package kpisvc

import (
	"testing"
)

func TestCompareGrowth_CoPreviousData(t *testing.T) {
	got := compareGrowth(150, 100)
	if got == nil {
		t.Fatal("compareGrowth trả về nil khi có dữ liệu năm trước")
	}
	if *got != 150 {
		t.Errorf("compareGrowth(150, 100) = %v, muốn 150", *got)
	}

	got = compareGrowth(1, 3)
	if got == nil {
		t.Fatal("compareGrowth trả về nil khi có dữ liệu năm trước")
	}
	// (1/3)*100 làm tròn 2 chữ số
	if *got != 33.33 {
		t.Errorf("compareGrowth(1, 3) = %v, muốn 33.33", *got)
	}
}

func TestCompareGrowth_NamDauCoDuLieu(t *testing.T) {
	// Năm trước không có dữ liệu, năm nay có → quy ước 100
	got := compareGrowth(500, 0)
	if got == nil {
		t.Fatal("compareGrowth trả về nil khi năm nay có dữ liệu")
	}
	if *got != 100 {
		t.Errorf("compareGrowth(500, 0) = %v, muốn 100", *got)
	}
}

func TestCompareGrowth_CaHaiNamTrong(t *testing.T) {
	// Cả hai năm đều không có dữ liệu → nil (serialize thành null)
	if got := compareGrowth(0, 0); got != nil {
		t.Errorf("compareGrowth(0, 0) = %v, muốn nil", *got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{33.3333333, 33.33},
		{66.666666, 66.67},
		{100, 100},
		{0.005, 0.01},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Errorf("round2(%v) = %v, muốn %v", c.in, got, c.want)
		}
	}
}
