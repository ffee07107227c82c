package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ClubManager/internal/model"
)

func seedStaff(t *testing.T, svc *ClubService, name, role string) *model.StaffMember {
	t.Helper()
	m := &model.StaffMember{Name: name, Role: role, Active: true}
	if err := svc.CreateStaff(context.Background(), m); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return m
}

func TestStaffLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := NewClubService(db, testLogger())

	m := seedStaff(t, svc, "Ana Maric", "T")

	got, err := svc.GetStaff(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("get staff: %v", err)
	}
	if got.Name != "Ana Maric" || got.Role != "T" {
		t.Errorf("staff = %+v", got)
	}

	got.Role = "U"
	if err := svc.UpdateStaff(context.Background(), got); err != nil {
		t.Fatalf("update staff: %v", err)
	}

	if err := svc.DeleteStaff(context.Background(), m.ID); err != nil {
		t.Fatalf("delete staff: %v", err)
	}
	if _, err := svc.GetStaff(context.Background(), m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateStaffRejectsUnknownRole(t *testing.T) {
	db := openTestDB(t)
	svc := NewClubService(db, testLogger())

	err := svc.CreateStaff(context.Background(), &model.StaffMember{Name: "Ana", Role: "X"})
	if !hasViolation(err, CodeUnknownRole) {
		t.Fatalf("expected %s, got %v", CodeUnknownRole, err)
	}
}

func TestMeetingAttendees(t *testing.T) {
	db := openTestDB(t)
	svc := NewClubService(db, testLogger())

	coach := seedStaff(t, svc, "Ana Maric", "T")
	board := seedStaff(t, svc, "Petar Juric", "U")

	meeting := &model.Meeting{
		Date:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Title: "Spring planning",
	}
	if err := svc.CreateMeeting(context.Background(), meeting, []uint64{coach.ID, board.ID}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	_, attendees, err := svc.GetMeeting(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("get meeting: %v", err)
	}
	if len(attendees) != 2 {
		t.Fatalf("attendees = %d, want 2", len(attendees))
	}

	// Replacing the attendee list drops the removed member.
	if err := svc.UpdateMeeting(context.Background(), meeting, []uint64{coach.ID}); err != nil {
		t.Fatalf("update meeting: %v", err)
	}
	_, attendees, err = svc.GetMeeting(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("get meeting: %v", err)
	}
	if len(attendees) != 1 || attendees[0].ID != coach.ID {
		t.Errorf("attendees after update = %v", attendees)
	}

	if err := svc.DeleteMeeting(context.Background(), meeting.ID); err != nil {
		t.Fatalf("delete meeting: %v", err)
	}
	var linkCount int64
	if err := db.Model(&model.MeetingAttendee{}).Where("meeting_id = ?", meeting.ID).Count(&linkCount).Error; err != nil {
		t.Fatalf("count attendee links: %v", err)
	}
	if linkCount != 0 {
		t.Errorf("attendee links = %d, want 0", linkCount)
	}
}

func TestCreateMeetingRejectsUnknownAttendee(t *testing.T) {
	db := openTestDB(t)
	svc := NewClubService(db, testLogger())

	meeting := &model.Meeting{
		Date:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Title: "Spring planning",
	}
	err := svc.CreateMeeting(context.Background(), meeting, []uint64{99})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEquipmentValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewClubService(db, testLogger())

	err := svc.CreateEquipment(context.Background(), &model.Equipment{Name: "Cones", Type: "CONE", Quantity: 20})
	if !hasViolation(err, CodeUnknownEquipmentType) {
		t.Fatalf("expected %s, got %v", CodeUnknownEquipmentType, err)
	}

	err = svc.CreateEquipment(context.Background(), &model.Equipment{Name: "Balls", Type: "BALL", Quantity: -1})
	if !hasViolation(err, CodeNegativeQuantity) {
		t.Fatalf("expected %s, got %v", CodeNegativeQuantity, err)
	}

	e := &model.Equipment{Name: "Match balls", Type: "BALL", Quantity: 12, Condition: "OK"}
	if err := svc.CreateEquipment(context.Background(), e); err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	items, err := svc.ListEquipment(context.Background())
	if err != nil {
		t.Fatalf("list equipment: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("equipment items = %d, want 1", len(items))
	}
}
