package models

import (
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// PlanDiscount is one itemized discount line on a plan.
type PlanDiscount struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryId int             `json:"category_id,omitempty"`
}

// SelectedAmenity is an amenity chosen on a plan, with its charge resolved
// against the list price at selection time.
type SelectedAmenity struct {
	AmenityId        int             `json:"amenity_id"`
	AmenityName      string          `json:"amenity_name"`
	CalculatedAmount decimal.Decimal `json:"calculated_amount"`
}

// PricingInput carries everything the calculator needs. All amounts come
// from form fields already coerced through utils.ParseMoneyOrZero, so a
// blank field arrives here as zero rather than an error.
type PricingInput struct {
	ListPrice             decimal.Decimal
	Discounts             []PlanDiscount
	SelectedAmenityIds    []int
	AmenityCatalog        []PlanAmenity
	DownPaymentPercentage decimal.Decimal
	DurationYears         decimal.Decimal
	Frequency             PaymentFrequency
}

type PricingResult struct {
	AmenitiesTotal    decimal.Decimal   `json:"amenities_total"`
	NetValue          decimal.Decimal   `json:"net_value"`
	DownPaymentAmount decimal.Decimal   `json:"down_payment_amount"`
	Remaining         decimal.Decimal   `json:"remaining"`
	TotalInstallments int               `json:"total_installments"`
	InstallmentAmount decimal.Decimal   `json:"installment_amount"`
	SelectedAmenities []SelectedAmenity `json:"selected_amenities"`
}

// AmenityCharge resolves one catalog entry against the list price:
// percentage entries charge listPrice x price/100, flat entries charge price.
func AmenityCharge(listPrice decimal.Decimal, amenity PlanAmenity) decimal.Decimal {
	if amenity.IsPercentage != nil && *amenity.IsPercentage {
		return listPrice.Mul(amenity.Price).Div(decimalOneHundred)
	}
	return amenity.Price
}

// AccumulateAmenities sums the charges of the selected catalog entries.
// Ids that don't resolve to a catalog entry are skipped.
func AccumulateAmenities(listPrice decimal.Decimal, selectedIds []int, catalog []PlanAmenity) (decimal.Decimal, []SelectedAmenity) {
	byId := make(map[int]PlanAmenity, len(catalog))
	for _, a := range catalog {
		byId[a.ID] = a
	}

	total := decimal.Zero
	selected := make([]SelectedAmenity, 0, len(selectedIds))
	for _, id := range selectedIds {
		amenity, ok := byId[id]
		if !ok {
			continue
		}
		charge := AmenityCharge(listPrice, amenity)
		total = total.Add(charge)
		selected = append(selected, SelectedAmenity{
			AmenityId:        amenity.ID,
			AmenityName:      amenity.Name,
			CalculatedAmount: charge,
		})
	}
	return total, selected
}

func SumDiscounts(discounts []PlanDiscount) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		total = total.Add(d.Amount)
	}
	return total
}

// ComputePlanPricing derives the plan totals from its inputs. Pure: no DB,
// no clock, identical input gives identical output.
//
// The net value has no floor at zero; discounts larger than list price plus
// amenities produce a negative net value that propagates through the
// remaining figures unchanged.
func ComputePlanPricing(input PricingInput) PricingResult {
	amenitiesTotal, selected := AccumulateAmenities(input.ListPrice, input.SelectedAmenityIds, input.AmenityCatalog)

	netValue := input.ListPrice.Add(amenitiesTotal).Sub(SumDiscounts(input.Discounts))
	downPayment := netValue.Mul(input.DownPaymentPercentage).DivRound(decimalOneHundred, 2)
	remaining := netValue.Sub(downPayment)

	totalInstallments := installmentCount(input.DurationYears, input.Frequency)
	installmentAmount := remaining.DivRound(decimal.NewFromInt(int64(totalInstallments)), 2)

	return PricingResult{
		AmenitiesTotal:    amenitiesTotal,
		NetValue:          netValue,
		DownPaymentAmount: downPayment,
		Remaining:         remaining,
		TotalInstallments: totalInstallments,
		InstallmentAmount: installmentAmount,
		SelectedAmenities: selected,
	}
}

// installmentCount = round(durationYears x 12 / frequencyMonths), never
// below 1 so a zero or blank duration still yields a single installment.
func installmentCount(durationYears decimal.Decimal, frequency PaymentFrequency) int {
	months := decimal.NewFromInt(int64(frequency.Months()))
	count := int(durationYears.Mul(decimal.NewFromInt(12)).Div(months).Round(0).IntPart())
	if count < 1 {
		return 1
	}
	return count
}
