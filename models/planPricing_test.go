package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func boolPtr(b bool) *bool { return &b }

func TestAmenityCharge_FlatAndPercentage(t *testing.T) {
	listPrice := dec("1000000")

	flat := PlanAmenity{ID: 1, Name: "Parking", Price: dec("50000"), IsPercentage: boolPtr(false)}
	if got := AmenityCharge(listPrice, flat); !got.Equal(dec("50000")) {
		t.Errorf("flat charge = %s, want 50000", got)
	}

	pct := PlanAmenity{ID: 2, Name: "Corner Unit", Price: dec("2.5"), IsPercentage: boolPtr(true)}
	if got := AmenityCharge(listPrice, pct); !got.Equal(dec("25000")) {
		t.Errorf("percentage charge = %s, want 25000", got)
	}

	// nil IsPercentage behaves as flat
	nilPct := PlanAmenity{ID: 3, Price: dec("700")}
	if got := AmenityCharge(listPrice, nilPct); !got.Equal(dec("700")) {
		t.Errorf("nil-percentage charge = %s, want 700", got)
	}
}

func TestAccumulateAmenities_SkipsUnknownIds(t *testing.T) {
	catalog := []PlanAmenity{
		{ID: 1, Name: "Parking", Price: dec("50000")},
		{ID: 2, Name: "Corner Unit", Price: dec("10"), IsPercentage: boolPtr(true)},
	}

	total, selected := AccumulateAmenities(dec("1000"), []int{1, 99, 2}, catalog)
	if !total.Equal(dec("50100")) {
		t.Errorf("total = %s, want 50100", total)
	}
	if len(selected) != 2 {
		t.Fatalf("selected = %d entries, want 2", len(selected))
	}
	if selected[0].AmenityName != "Parking" || selected[1].AmenityName != "Corner Unit" {
		t.Errorf("selection order not preserved: %+v", selected)
	}
}

func TestComputePlanPricing_NetValueHasNoFloor(t *testing.T) {
	result := ComputePlanPricing(PricingInput{
		ListPrice: dec("100000"),
		Discounts: []PlanDiscount{
			{Name: "Promo", Amount: dec("150000")},
		},
		DownPaymentPercentage: dec("10"),
		DurationYears:         dec("1"),
		Frequency:             PaymentFrequencyMonthly,
	})

	if !result.NetValue.Equal(dec("-50000")) {
		t.Errorf("net value = %s, want -50000", result.NetValue)
	}
	if !result.DownPaymentAmount.Equal(dec("-5000")) {
		t.Errorf("down payment = %s, want -5000", result.DownPaymentAmount)
	}
}

func TestComputePlanPricing_Figures(t *testing.T) {
	catalog := []PlanAmenity{
		{ID: 1, Name: "Parking", Price: dec("50000")},
	}

	result := ComputePlanPricing(PricingInput{
		ListPrice:             dec("1000000"),
		SelectedAmenityIds:    []int{1},
		AmenityCatalog:        catalog,
		Discounts:             []PlanDiscount{{Name: "Early Bird", Amount: dec("50000")}},
		DownPaymentPercentage: dec("20"),
		DurationYears:         dec("2"),
		Frequency:             PaymentFrequencyQuarterly,
	})

	if !result.NetValue.Equal(dec("1000000")) {
		t.Errorf("net value = %s, want 1000000", result.NetValue)
	}
	if !result.DownPaymentAmount.Equal(dec("200000")) {
		t.Errorf("down payment = %s, want 200000", result.DownPaymentAmount)
	}
	if result.TotalInstallments != 8 {
		t.Errorf("installments = %d, want 8", result.TotalInstallments)
	}
	if !result.InstallmentAmount.Equal(dec("100000")) {
		t.Errorf("installment amount = %s, want 100000", result.InstallmentAmount)
	}
}

func TestComputePlanPricing_DeterministicForSameInput(t *testing.T) {
	input := PricingInput{
		ListPrice:             dec("777777.77"),
		Discounts:             []PlanDiscount{{Amount: dec("123.45")}},
		DownPaymentPercentage: dec("33"),
		DurationYears:         dec("3.5"),
		Frequency:             PaymentFrequencyMonthly,
	}

	a := ComputePlanPricing(input)
	b := ComputePlanPricing(input)
	if !a.NetValue.Equal(b.NetValue) || !a.InstallmentAmount.Equal(b.InstallmentAmount) || a.TotalInstallments != b.TotalInstallments {
		t.Errorf("same input produced different results: %+v vs %+v", a, b)
	}
}

func TestInstallmentCount(t *testing.T) {
	tests := []struct {
		name      string
		years     string
		frequency PaymentFrequency
		want      int
	}{
		{"one year monthly", "1", PaymentFrequencyMonthly, 12},
		{"two years quarterly", "2", PaymentFrequencyQuarterly, 8},
		{"three years yearly", "3", PaymentFrequencyYearly, 3},
		{"half year monthly", "0.5", PaymentFrequencyMonthly, 6},
		{"zero duration floors at one", "0", PaymentFrequencyMonthly, 1},
		{"tiny duration floors at one", "0.01", PaymentFrequencyYearly, 1},
		{"fractional rounds", "1.4", PaymentFrequencyYearly, 1},
		{"fractional rounds up", "1.5", PaymentFrequencyYearly, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := installmentCount(dec(tc.years), tc.frequency)
			if got != tc.want {
				t.Errorf("installmentCount(%s, %s) = %d, want %d", tc.years, tc.frequency, got, tc.want)
			}
		})
	}
}

func TestPaymentFrequencyMonths(t *testing.T) {
	if PaymentFrequencyMonthly.Months() != 1 {
		t.Error("monthly should be 1 month")
	}
	if PaymentFrequencyQuarterly.Months() != 3 {
		t.Error("quarterly should be 3 months")
	}
	if PaymentFrequencyYearly.Months() != 12 {
		t.Error("yearly should be 12 months")
	}
	if PaymentFrequency("bogus").Months() != 1 {
		t.Error("unknown frequency should fall back to 1 month")
	}
}
