package service

import (
	"context"
	"errors"
	"fmt"

	"ClubManager/internal/model"
	"ClubManager/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Staff roles and equipment types from the club's conventions.
const (
	CodeUnknownRole          = "unknown_role"
	CodeUnknownEquipmentType = "unknown_equipment_type"
	CodeNegativeQuantity     = "negative_quantity"
)

var staffRoles = map[string]bool{"U": true, "T": true, "F": true, "O": true}
var equipmentTypes = map[string]bool{"BALL": true, "KIT": true}

// ClubService covers the administrative entities: staff members, meetings
// and equipment inventory.
type ClubService struct {
	club   repository.ClubRepository
	logger *logrus.Logger
}

// NewClubService creates a ClubService.
func NewClubService(db *gorm.DB, logger *logrus.Logger) *ClubService {
	return &ClubService{
		club:   repository.NewClubRepository(db),
		logger: logger,
	}
}

func notFoundOr(err error, what string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

func (s *ClubService) CreateStaff(ctx context.Context, m *model.StaffMember) error {
	if !staffRoles[m.Role] {
		return NewValidationError([]Violation{
			violationf(CodeUnknownRole, "unknown staff role %q", m.Role),
		})
	}
	return s.club.CreateStaff(ctx, m)
}

func (s *ClubService) GetStaff(ctx context.Context, id uint64) (*model.StaffMember, error) {
	m, err := s.club.GetStaff(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "staff member", id)
	}
	return m, nil
}

func (s *ClubService) ListStaff(ctx context.Context) ([]*model.StaffMember, error) {
	return s.club.ListStaff(ctx)
}

func (s *ClubService) UpdateStaff(ctx context.Context, m *model.StaffMember) error {
	if !staffRoles[m.Role] {
		return NewValidationError([]Violation{
			violationf(CodeUnknownRole, "unknown staff role %q", m.Role),
		})
	}
	if _, err := s.club.GetStaff(ctx, m.ID); err != nil {
		return notFoundOr(err, "staff member", m.ID)
	}
	return s.club.UpdateStaff(ctx, m)
}

func (s *ClubService) DeleteStaff(ctx context.Context, id uint64) error {
	if _, err := s.club.GetStaff(ctx, id); err != nil {
		return notFoundOr(err, "staff member", id)
	}
	return s.club.DeleteStaff(ctx, id)
}

// CreateMeeting validates that every attendee exists before writing.
func (s *ClubService) CreateMeeting(ctx context.Context, m *model.Meeting, attendeeIDs []uint64) error {
	for _, id := range attendeeIDs {
		if _, err := s.club.GetStaff(ctx, id); err != nil {
			return notFoundOr(err, "staff member", id)
		}
	}
	return s.club.CreateMeeting(ctx, m, attendeeIDs)
}

func (s *ClubService) GetMeeting(ctx context.Context, id uint64) (*model.Meeting, []*model.StaffMember, error) {
	m, attendees, err := s.club.GetMeeting(ctx, id)
	if err != nil {
		return nil, nil, notFoundOr(err, "meeting", id)
	}
	return m, attendees, nil
}

func (s *ClubService) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	return s.club.ListMeetings(ctx)
}

func (s *ClubService) UpdateMeeting(ctx context.Context, m *model.Meeting, attendeeIDs []uint64) error {
	if _, _, err := s.club.GetMeeting(ctx, m.ID); err != nil {
		return notFoundOr(err, "meeting", m.ID)
	}
	for _, id := range attendeeIDs {
		if _, err := s.club.GetStaff(ctx, id); err != nil {
			return notFoundOr(err, "staff member", id)
		}
	}
	return s.club.UpdateMeeting(ctx, m, attendeeIDs)
}

func (s *ClubService) DeleteMeeting(ctx context.Context, id uint64) error {
	if _, _, err := s.club.GetMeeting(ctx, id); err != nil {
		return notFoundOr(err, "meeting", id)
	}
	return s.club.DeleteMeeting(ctx, id)
}

func (s *ClubService) validateEquipment(e *model.Equipment) error {
	var violations []Violation
	if !equipmentTypes[e.Type] {
		violations = append(violations, violationf(CodeUnknownEquipmentType,
			"unknown equipment type %q", e.Type))
	}
	if e.Quantity < 0 {
		violations = append(violations, violationf(CodeNegativeQuantity,
			"quantity must not be negative"))
	}
	if len(violations) > 0 {
		return NewValidationError(violations)
	}
	return nil
}

func (s *ClubService) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	if err := s.validateEquipment(e); err != nil {
		return err
	}
	return s.club.CreateEquipment(ctx, e)
}

func (s *ClubService) GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error) {
	e, err := s.club.GetEquipment(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "equipment", id)
	}
	return e, nil
}

func (s *ClubService) ListEquipment(ctx context.Context) ([]*model.Equipment, error) {
	return s.club.ListEquipment(ctx)
}

func (s *ClubService) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	if err := s.validateEquipment(e); err != nil {
		return err
	}
	if _, err := s.club.GetEquipment(ctx, e.ID); err != nil {
		return notFoundOr(err, "equipment", e.ID)
	}
	return s.club.UpdateEquipment(ctx, e)
}

func (s *ClubService) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, err := s.club.GetEquipment(ctx, id); err != nil {
		return notFoundOr(err, "equipment", id)
	}
	return s.club.DeleteEquipment(ctx, id)
}
