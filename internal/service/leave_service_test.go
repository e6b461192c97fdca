package service

import (
	"context"
	"testing"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

func TestCreateLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(repository.NewLeaveRepository(db), nopNotifier{})
	staff := seedStaff(t, db, model.RoleCareGiver)

	leave, err := svc.CreateLeave(context.Background(), staff, CreateLeaveRequest{
		ReasonForLeave: "annual leave",
		StartDate:      "2026-09-07",
		EndDate:        "2026-09-11",
	})
	if err != nil {
		t.Fatalf("CreateLeave: %v", err)
	}
	if leave.Status != model.LeaveStatusPending {
		t.Errorf("status = %q, want pending", leave.Status)
	}
	if leave.StaffID == nil || *leave.StaffID != staff.ID {
		t.Errorf("staffID = %v, want %v", leave.StaffID, staff.ID)
	}
}

func TestCreateLeaveEndBeforeStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(repository.NewLeaveRepository(db), nopNotifier{})
	staff := seedStaff(t, db, model.RoleCareGiver)

	_, err := svc.CreateLeave(context.Background(), staff, CreateLeaveRequest{
		ReasonForLeave: "annual leave",
		StartDate:      "2026-09-11",
		EndDate:        "2026-09-07",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
	if apperr.FieldsOf(err)["endDate"] == "" {
		t.Error("expected an endDate field error")
	}
}

func TestCreateLeaveSingleDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(repository.NewLeaveRepository(db), nopNotifier{})
	staff := seedStaff(t, db, model.RoleCareGiver)

	if _, err := svc.CreateLeave(context.Background(), staff, CreateLeaveRequest{
		ReasonForLeave: "medical appointment",
		StartDate:      "2026-09-07",
		EndDate:        "2026-09-07",
	}); err != nil {
		t.Errorf("single-day leave: %v", err)
	}
}

func TestResolveLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(repository.NewLeaveRepository(db), nopNotifier{})
	staff := seedStaff(t, db, model.RoleCareGiver)

	leave, err := svc.CreateLeave(context.Background(), staff, CreateLeaveRequest{
		ReasonForLeave: "annual leave",
		StartDate:      "2026-09-07",
		EndDate:        "2026-09-11",
	})
	if err != nil {
		t.Fatalf("CreateLeave: %v", err)
	}

	resolved, err := svc.ResolveLeave(context.Background(), leave.ID, ResolveLeaveRequest{Status: model.LeaveStatusApproved})
	if err != nil {
		t.Fatalf("ResolveLeave: %v", err)
	}
	if resolved.Status != model.LeaveStatusApproved {
		t.Errorf("status = %q, want approved", resolved.Status)
	}
}

func TestResolveLeaveDeclineRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(repository.NewLeaveRepository(db), nopNotifier{})
	staff := seedStaff(t, db, model.RoleCareGiver)

	leave, err := svc.CreateLeave(context.Background(), staff, CreateLeaveRequest{
		ReasonForLeave: "annual leave",
		StartDate:      "2026-09-07",
		EndDate:        "2026-09-11",
	})
	if err != nil {
		t.Fatalf("CreateLeave: %v", err)
	}

	if _, err := svc.ResolveLeave(context.Background(), leave.ID, ResolveLeaveRequest{Status: model.LeaveStatusDeclined}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestListLeavesScopedToStaff(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaveService(repository.NewLeaveRepository(db), nopNotifier{})
	alice := seedStaff(t, db, model.RoleCareGiver)
	bob := seedStaff(t, db, model.RoleCareGiver)

	for _, staff := range []*model.User{alice, alice, bob} {
		if _, err := svc.CreateLeave(context.Background(), staff, CreateLeaveRequest{
			ReasonForLeave: "annual leave",
			StartDate:      "2026-09-07",
			EndDate:        "2026-09-11",
		}); err != nil {
			t.Fatalf("seed leave: %v", err)
		}
	}

	_, total, err := svc.ListLeaves(context.Background(), &alice.ID, "", 0, 50)
	if err != nil {
		t.Fatalf("ListLeaves: %v", err)
	}
	if total != 2 {
		t.Errorf("alice total = %d, want 2", total)
	}

	_, total, err = svc.ListLeaves(context.Background(), nil, "", 0, 50)
	if err != nil {
		t.Fatalf("ListLeaves: %v", err)
	}
	if total != 3 {
		t.Errorf("unscoped total = %d, want 3", total)
	}
}
