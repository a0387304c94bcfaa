package workflow

import (
	"testing"

	"github.com/mmdatafocus/estates_backend/models"
)

func TestCanTransition_LifecyclePairs(t *testing.T) {
	allowed := []struct {
		from models.PlanStatus
		to   models.PlanStatus
	}{
		{models.PlanStatusDraft, models.PlanStatusPendingApproval},
		{models.PlanStatusPendingApproval, models.PlanStatusApproved},
		{models.PlanStatusPendingApproval, models.PlanStatusRejected},
		{models.PlanStatusApproved, models.PlanStatusLocked},
		{models.PlanStatusRejected, models.PlanStatusPendingApproval},
	}
	for _, pair := range allowed {
		if !CanTransition(pair.from, pair.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", pair.from, pair.to)
		}
	}
}

func TestCanTransition_RefusedPairs(t *testing.T) {
	refused := []struct {
		from models.PlanStatus
		to   models.PlanStatus
	}{
		{models.PlanStatusDraft, models.PlanStatusApproved},
		{models.PlanStatusDraft, models.PlanStatusLocked},
		{models.PlanStatusDraft, models.PlanStatusRejected},
		{models.PlanStatusPendingApproval, models.PlanStatusDraft},
		{models.PlanStatusPendingApproval, models.PlanStatusLocked},
		{models.PlanStatusApproved, models.PlanStatusDraft},
		{models.PlanStatusApproved, models.PlanStatusRejected},
		{models.PlanStatusApproved, models.PlanStatusPendingApproval},
		{models.PlanStatusRejected, models.PlanStatusApproved},
		{models.PlanStatusRejected, models.PlanStatusDraft},
	}
	for _, pair := range refused {
		if CanTransition(pair.from, pair.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", pair.from, pair.to)
		}
	}
}

func TestCanTransition_LockedIsTerminal(t *testing.T) {
	targets := []models.PlanStatus{
		models.PlanStatusDraft,
		models.PlanStatusPendingApproval,
		models.PlanStatusApproved,
		models.PlanStatusRejected,
		models.PlanStatusLocked,
	}
	for _, to := range targets {
		if CanTransition(models.PlanStatusLocked, to) {
			t.Errorf("CanTransition(Locked, %s) = true, want false", to)
		}
	}
}

func TestCanTransition_NoSelfTransitions(t *testing.T) {
	statuses := []models.PlanStatus{
		models.PlanStatusDraft,
		models.PlanStatusPendingApproval,
		models.PlanStatusApproved,
		models.PlanStatusRejected,
		models.PlanStatusLocked,
	}
	for _, s := range statuses {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) = true, want false", s, s)
		}
	}
}
