// Package state holds the in-memory application state and its reducer.
// Every mutation is an enumerated Action applied by the pure Reduce
// function; the Store (store.go) owns the current snapshot and persistence
// stays with the models layer.
package state

import (
	"github.com/mmdatafocus/estates_backend/models"
)

type ActionType string

const (
	ActionSetCollections        ActionType = "SET_COLLECTIONS"
	ActionAddInstallmentPlan    ActionType = "ADD_INSTALLMENT_PLAN"
	ActionUpdateInstallmentPlan ActionType = "UPDATE_INSTALLMENT_PLAN"
	ActionDeleteInstallmentPlan ActionType = "DELETE_INSTALLMENT_PLAN"
	ActionAddPlanAmenity        ActionType = "ADD_PLAN_AMENITY"
	ActionUpdatePlanAmenity     ActionType = "UPDATE_PLAN_AMENITY"
	ActionDeletePlanAmenity     ActionType = "DELETE_PLAN_AMENITY"
	ActionAddPayslip            ActionType = "ADD_PAYSLIP"
	ActionUpdatePayslip         ActionType = "UPDATE_PAYSLIP"
	ActionDeletePayslip         ActionType = "DELETE_PAYSLIP"
	ActionAddTransaction        ActionType = "ADD_TRANSACTION"
)

type Action struct {
	Type    ActionType
	Payload any
}

// AppState is the full in-memory snapshot the report screens and pickers
// read from.
type AppState struct {
	Contacts         []models.Contact
	Projects         []models.Project
	Units            []models.Unit
	InstallmentPlans []models.InstallmentPlan
	PlanAmenities    []models.PlanAmenity
	Payslips         []models.Payslip
	Transactions     []models.Transaction
	Users            []models.User
}

// Collections is the payload of ActionSetCollections (hydration).
type Collections AppState

// Reduce applies one action and returns the next state. Pure: the input
// state is never mutated, slices are copied before modification, unknown
// actions return the state unchanged.
func Reduce(s AppState, action Action) AppState {
	switch action.Type {
	case ActionSetCollections:
		if c, ok := action.Payload.(Collections); ok {
			return AppState(c)
		}
	case ActionAddInstallmentPlan:
		if p, ok := action.Payload.(models.InstallmentPlan); ok {
			s.InstallmentPlans = appendCopy(s.InstallmentPlans, p)
		}
	case ActionUpdateInstallmentPlan:
		if p, ok := action.Payload.(models.InstallmentPlan); ok {
			s.InstallmentPlans = replaceById(s.InstallmentPlans, p, func(v models.InstallmentPlan) int { return v.ID })
		}
	case ActionDeleteInstallmentPlan:
		if id, ok := action.Payload.(int); ok {
			s.InstallmentPlans = deleteById(s.InstallmentPlans, id, func(v models.InstallmentPlan) int { return v.ID })
		}
	case ActionAddPlanAmenity:
		if a, ok := action.Payload.(models.PlanAmenity); ok {
			s.PlanAmenities = appendCopy(s.PlanAmenities, a)
		}
	case ActionUpdatePlanAmenity:
		if a, ok := action.Payload.(models.PlanAmenity); ok {
			s.PlanAmenities = replaceById(s.PlanAmenities, a, func(v models.PlanAmenity) int { return v.ID })
		}
	case ActionDeletePlanAmenity:
		if id, ok := action.Payload.(int); ok {
			s.PlanAmenities = deleteById(s.PlanAmenities, id, func(v models.PlanAmenity) int { return v.ID })
		}
	case ActionAddPayslip:
		if p, ok := action.Payload.(models.Payslip); ok {
			s.Payslips = appendCopy(s.Payslips, p)
		}
	case ActionUpdatePayslip:
		if p, ok := action.Payload.(models.Payslip); ok {
			s.Payslips = replaceById(s.Payslips, p, func(v models.Payslip) int { return v.ID })
		}
	case ActionDeletePayslip:
		if id, ok := action.Payload.(int); ok {
			s.Payslips = deleteById(s.Payslips, id, func(v models.Payslip) int { return v.ID })
		}
	case ActionAddTransaction:
		if t, ok := action.Payload.(models.Transaction); ok {
			s.Transactions = appendCopy(s.Transactions, t)
		}
	}
	return s
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func replaceById[T any](in []T, v T, id func(T) int) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := range out {
		if id(out[i]) == id(v) {
			out[i] = v
			return out
		}
	}
	return append(out, v)
}

func deleteById[T any](in []T, target int, id func(T) int) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if id(v) == target {
			continue
		}
		out = append(out, v)
	}
	return out
}
