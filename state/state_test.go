package state

import (
	"testing"

	"github.com/mmdatafocus/estates_backend/models"
)

func sampleState() AppState {
	return AppState{
		PlanAmenities: []models.PlanAmenity{
			{ID: 1, Name: "Car Parking"},
			{ID: 2, Name: "Club Membership"},
		},
		InstallmentPlans: []models.InstallmentPlan{
			{ID: 10, RootId: "root-a", Version: 1, Status: models.PlanStatusDraft},
		},
		Payslips: []models.Payslip{
			{ID: 100, EmployeeId: 7, PeriodYear: 2025, PeriodMonth: 3},
		},
		Transactions: []models.Transaction{
			{ID: 1000, Type: models.TransactionTypeReceipt, Category: "Installment"},
		},
	}
}

func TestReduce_AddAppendsWithoutMutatingInput(t *testing.T) {
	before := sampleState()
	inputAmenities := before.PlanAmenities

	after := Reduce(before, Action{
		Type:    ActionAddPlanAmenity,
		Payload: models.PlanAmenity{ID: 3, Name: "Gym Access"},
	})

	if len(after.PlanAmenities) != 3 {
		t.Fatalf("expected 3 amenities after add, got %d", len(after.PlanAmenities))
	}
	if after.PlanAmenities[2].Name != "Gym Access" {
		t.Errorf("appended amenity = %q, want Gym Access", after.PlanAmenities[2].Name)
	}
	if len(inputAmenities) != 2 {
		t.Errorf("input slice length changed to %d", len(inputAmenities))
	}
	if inputAmenities[0].Name != "Car Parking" || inputAmenities[1].Name != "Club Membership" {
		t.Error("input slice contents were mutated")
	}
}

func TestReduce_UpdateReplacesMatchingId(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{
		Type:    ActionUpdatePlanAmenity,
		Payload: models.PlanAmenity{ID: 2, Name: "Club Membership (Gold)"},
	})

	if len(after.PlanAmenities) != 2 {
		t.Fatalf("expected 2 amenities after update, got %d", len(after.PlanAmenities))
	}
	if after.PlanAmenities[1].Name != "Club Membership (Gold)" {
		t.Errorf("updated amenity = %q", after.PlanAmenities[1].Name)
	}
	if before.PlanAmenities[1].Name != "Club Membership" {
		t.Error("input state was mutated by update")
	}
}

func TestReduce_UpdateUnknownIdAppends(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{
		Type:    ActionUpdateInstallmentPlan,
		Payload: models.InstallmentPlan{ID: 11, RootId: "root-a", Version: 2},
	})

	if len(after.InstallmentPlans) != 2 {
		t.Fatalf("expected unknown-id update to append, got %d plans", len(after.InstallmentPlans))
	}
	if after.InstallmentPlans[1].Version != 2 {
		t.Errorf("appended plan version = %d, want 2", after.InstallmentPlans[1].Version)
	}
}

func TestReduce_DeleteRemovesById(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{Type: ActionDeletePayslip, Payload: 100})

	if len(after.Payslips) != 0 {
		t.Fatalf("expected 0 payslips after delete, got %d", len(after.Payslips))
	}
	if len(before.Payslips) != 1 {
		t.Error("input state was mutated by delete")
	}

	unchanged := Reduce(before, Action{Type: ActionDeletePayslip, Payload: 999})
	if len(unchanged.Payslips) != 1 {
		t.Errorf("deleting an unknown id changed the collection: %d payslips", len(unchanged.Payslips))
	}
}

func TestReduce_AddTransaction(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{
		Type:    ActionAddTransaction,
		Payload: models.Transaction{ID: 1001, Type: models.TransactionTypePayment, Category: "Maintenance"},
	})

	if len(after.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(after.Transactions))
	}
	if len(before.Transactions) != 1 {
		t.Error("input transactions were mutated")
	}
}

func TestReduce_SetCollectionsReplacesEverything(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{
		Type: ActionSetCollections,
		Payload: Collections{
			Contacts: []models.Contact{{ID: 1, Name: "U Myo"}},
		},
	})

	if len(after.Contacts) != 1 {
		t.Fatalf("expected hydrated contacts, got %d", len(after.Contacts))
	}
	if len(after.PlanAmenities) != 0 || len(after.Transactions) != 0 {
		t.Error("hydration should replace the whole snapshot, not merge")
	}
}

func TestReduce_UnknownActionReturnsStateUnchanged(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{Type: ActionType("NO_SUCH_ACTION"), Payload: 42})

	if len(after.PlanAmenities) != 2 || len(after.InstallmentPlans) != 1 ||
		len(after.Payslips) != 1 || len(after.Transactions) != 1 {
		t.Error("unknown action changed the state")
	}
}

func TestReduce_WrongPayloadTypeIsIgnored(t *testing.T) {
	before := sampleState()

	after := Reduce(before, Action{Type: ActionAddPlanAmenity, Payload: "not an amenity"})
	if len(after.PlanAmenities) != 2 {
		t.Errorf("wrong payload type changed amenities: %d", len(after.PlanAmenities))
	}

	after = Reduce(before, Action{Type: ActionDeletePlanAmenity, Payload: "2"})
	if len(after.PlanAmenities) != 2 {
		t.Errorf("string id payload should be ignored, got %d amenities", len(after.PlanAmenities))
	}
}
