package models

import "testing"

func samplePlan() *InstallmentPlan {
	return &InstallmentPlan{
		LeadId:                1,
		ProjectId:             2,
		UnitId:                3,
		ListPrice:             dec("1000000"),
		DownPaymentPercentage: dec("20"),
		DurationYears:         dec("2"),
		Frequency:             PaymentFrequencyMonthly,
		Discounts: []InstallmentPlanDiscount{
			{Name: "Early Bird", Amount: dec("50000")},
			{Name: "Agent", Amount: dec("10000")},
		},
		SelectedAmenities: []InstallmentPlanAmenity{
			{AmenityId: 7, CalculatedAmount: dec("25000")},
			{AmenityId: 4, CalculatedAmount: dec("5000")},
		},
	}
}

func TestPlanFieldsEqual_IdenticalPlans(t *testing.T) {
	if !PlanFieldsEqual(samplePlan(), samplePlan()) {
		t.Error("identical plans should compare equal")
	}
}

func TestPlanFieldsEqual_IgnoresListOrder(t *testing.T) {
	a := samplePlan()
	b := samplePlan()
	b.Discounts[0], b.Discounts[1] = b.Discounts[1], b.Discounts[0]
	b.SelectedAmenities[0], b.SelectedAmenities[1] = b.SelectedAmenities[1], b.SelectedAmenities[0]

	if !PlanFieldsEqual(a, b) {
		t.Error("list order should not affect equality")
	}
}

func TestPlanFieldsEqual_IgnoresTrailingZeros(t *testing.T) {
	a := samplePlan()
	b := samplePlan()
	b.ListPrice = dec("1000000.00")
	b.Discounts[0].Amount = dec("50000.000")

	if !PlanFieldsEqual(a, b) {
		t.Error("trailing zeros should not affect equality")
	}
}

func TestPlanFieldsEqual_DetectsChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InstallmentPlan)
	}{
		{"list price", func(p *InstallmentPlan) { p.ListPrice = dec("999999") }},
		{"down payment pct", func(p *InstallmentPlan) { p.DownPaymentPercentage = dec("25") }},
		{"duration", func(p *InstallmentPlan) { p.DurationYears = dec("3") }},
		{"frequency", func(p *InstallmentPlan) { p.Frequency = PaymentFrequencyYearly }},
		{"lead", func(p *InstallmentPlan) { p.LeadId = 99 }},
		{"unit", func(p *InstallmentPlan) { p.UnitId = 99 }},
		{"discount amount", func(p *InstallmentPlan) { p.Discounts[0].Amount = dec("50001") }},
		{"discount removed", func(p *InstallmentPlan) { p.Discounts = p.Discounts[:1] }},
		{"amenity swapped", func(p *InstallmentPlan) { p.SelectedAmenities[0].AmenityId = 8 }},
		{"amenity added", func(p *InstallmentPlan) {
			p.SelectedAmenities = append(p.SelectedAmenities, InstallmentPlanAmenity{AmenityId: 9, CalculatedAmount: dec("1")})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := samplePlan()
			b := samplePlan()
			tc.mutate(b)
			if PlanFieldsEqual(a, b) {
				t.Errorf("change to %s should make plans unequal", tc.name)
			}
		})
	}
}

func TestPlanFieldsEqual_SubCentDifferencesCollapse(t *testing.T) {
	// Money compares at 2dp, so differences beyond that are not a change.
	a := samplePlan()
	b := samplePlan()
	b.ListPrice = dec("1000000.001")

	if !PlanFieldsEqual(a, b) {
		t.Error("sub-cent difference should round away")
	}
}

func TestPlanStatusEditable(t *testing.T) {
	editable := map[PlanStatus]bool{
		PlanStatusDraft:           true,
		PlanStatusRejected:        true,
		PlanStatusPendingApproval: false,
		PlanStatusApproved:        false,
		PlanStatusLocked:          false,
	}
	for status, want := range editable {
		if got := status.Editable(); got != want {
			t.Errorf("%s.Editable() = %v, want %v", status, got, want)
		}
	}
}

func TestCanEditVersion(t *testing.T) {
	cases := []struct {
		name     string
		planId   int
		status   PlanStatus
		latestId int
		wantErr  bool
	}{
		{"latest draft is editable", 10, PlanStatusDraft, 10, false},
		{"latest rejected is editable", 10, PlanStatusRejected, 10, false},
		{"stale version is refused", 10, PlanStatusDraft, 11, true},
		{"pending approval is read-only", 10, PlanStatusPendingApproval, 10, true},
		{"approved is read-only", 10, PlanStatusApproved, 10, true},
		{"locked is read-only", 10, PlanStatusLocked, 10, true},
	}
	for _, tc := range cases {
		plan := &InstallmentPlan{ID: tc.planId, RootId: "root-a", Status: tc.status}
		latest := &InstallmentPlan{ID: tc.latestId, RootId: "root-a"}
		err := CanEditVersion(plan, latest)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestCanEditVersion_NilLatest(t *testing.T) {
	plan := &InstallmentPlan{ID: 10, Status: PlanStatusDraft}
	if err := CanEditVersion(plan, nil); err == nil {
		t.Error("expected an error when the latest version is unknown")
	}
}

func TestCanBeReviewedBy(t *testing.T) {
	plan := &InstallmentPlan{ID: 10, Status: PlanStatusPendingApproval, ApprovalRequestedToId: 7}

	if !plan.CanBeReviewedBy(7) {
		t.Error("the requested approver must be allowed to review")
	}
	if plan.CanBeReviewedBy(8) {
		t.Error("a different user must not be allowed to review")
	}
	if plan.CanBeReviewedBy(0) {
		t.Error("an anonymous user must not be allowed to review")
	}

	unrequested := &InstallmentPlan{ID: 11, Status: PlanStatusDraft}
	if unrequested.CanBeReviewedBy(0) {
		t.Error("a plan with no requested approver must not be reviewable by user 0")
	}
}

func TestPricingInput_DuplicateAmenityIdsChargeOnce(t *testing.T) {
	catalog := []PlanAmenity{
		{ID: 1, Name: "Car Parking", Price: dec("50000"), IsPercentage: boolPtr(false)},
	}
	input := NewInstallmentPlan{
		ListPrice:          "1000000",
		SelectedAmenityIds: []int{1, 1, 1},
	}

	pricing := ComputePlanPricing(input.pricingInput(catalog))
	if !pricing.AmenitiesTotal.Equal(dec("50000")) {
		t.Errorf("amenities total = %s, want 50000 (charged once)", pricing.AmenitiesTotal)
	}
	if len(pricing.SelectedAmenities) != 1 {
		t.Errorf("selected amenities = %d, want 1", len(pricing.SelectedAmenities))
	}
}
