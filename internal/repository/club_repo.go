package repository

import (
	"context"

	"ClubManager/internal/model"

	"gorm.io/gorm"
)

// ClubRepository covers the administrative entities: staff, meetings and
// equipment inventory.
type ClubRepository interface {
	CreateStaff(ctx context.Context, s *model.StaffMember) error
	GetStaff(ctx context.Context, id uint64) (*model.StaffMember, error)
	ListStaff(ctx context.Context) ([]*model.StaffMember, error)
	UpdateStaff(ctx context.Context, s *model.StaffMember) error
	DeleteStaff(ctx context.Context, id uint64) error

	CreateMeeting(ctx context.Context, m *model.Meeting, attendeeIDs []uint64) error
	GetMeeting(ctx context.Context, id uint64) (*model.Meeting, []*model.StaffMember, error)
	ListMeetings(ctx context.Context) ([]*model.Meeting, error)
	UpdateMeeting(ctx context.Context, m *model.Meeting, attendeeIDs []uint64) error
	DeleteMeeting(ctx context.Context, id uint64) error

	CreateEquipment(ctx context.Context, e *model.Equipment) error
	GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error)
	ListEquipment(ctx context.Context) ([]*model.Equipment, error)
	UpdateEquipment(ctx context.Context, e *model.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a ClubRepository backed by GORM.
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) CreateStaff(ctx context.Context, s *model.StaffMember) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *clubRepository) GetStaff(ctx context.Context, id uint64) (*model.StaffMember, error) {
	var s model.StaffMember
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *clubRepository) ListStaff(ctx context.Context) ([]*model.StaffMember, error) {
	var list []*model.StaffMember
	if err := r.db.WithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *clubRepository) UpdateStaff(ctx context.Context, s *model.StaffMember) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *clubRepository) DeleteStaff(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.StaffMember{}, id).Error
}

// CreateMeeting writes the meeting and its attendee links in one transaction.
func (r *clubRepository) CreateMeeting(ctx context.Context, m *model.Meeting, attendeeIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for _, staffID := range attendeeIDs {
			link := &model.MeetingAttendee{MeetingID: m.ID, StaffID: staffID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *clubRepository) GetMeeting(ctx context.Context, id uint64) (*model.Meeting, []*model.StaffMember, error) {
	var m model.Meeting
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, nil, err
	}
	var attendees []*model.StaffMember
	err := r.db.WithContext(ctx).
		Joins("JOIN meeting_attendees ON meeting_attendees.staff_id = staff_members.id").
		Where("meeting_attendees.meeting_id = ?", id).
		Find(&attendees).Error
	if err != nil {
		return nil, nil, err
	}
	return &m, attendees, nil
}

func (r *clubRepository) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	var list []*model.Meeting
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateMeeting replaces the attendee set along with the meeting fields.
func (r *clubRepository) UpdateMeeting(ctx context.Context, m *model.Meeting, attendeeIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if err := tx.Where("meeting_id = ?", m.ID).Delete(&model.MeetingAttendee{}).Error; err != nil {
			return err
		}
		for _, staffID := range attendeeIDs {
			link := &model.MeetingAttendee{MeetingID: m.ID, StaffID: staffID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *clubRepository) DeleteMeeting(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&model.MeetingAttendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Meeting{}, id).Error
	})
}

func (r *clubRepository) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *clubRepository) GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error) {
	var e model.Equipment
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *clubRepository) ListEquipment(ctx context.Context) ([]*model.Equipment, error) {
	var list []*model.Equipment
	if err := r.db.WithContext(ctx).Order("type, name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *clubRepository) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *clubRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Equipment{}, id).Error
}
