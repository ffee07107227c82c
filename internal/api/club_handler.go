package api

import (
	"net/http"

	"ClubManager/internal/model"
	"ClubManager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ClubHandler covers staff members, meetings and equipment inventory.
type ClubHandler struct {
	club   *service.ClubService
	logger *logrus.Logger
}

// NewClubHandler creates a ClubHandler.
func NewClubHandler(db *gorm.DB, logger *logrus.Logger) *ClubHandler {
	return &ClubHandler{
		club:   service.NewClubService(db, logger),
		logger: logger,
	}
}

type staffRequest struct {
	Name     string  `json:"name" binding:"required"`
	Role     string  `json:"role" binding:"required"`
	Position string  `json:"position"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Active   bool    `json:"active"`
}

// CreateStaff adds a staff member.
// POST /api/staff
func (h *ClubHandler) CreateStaff(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	member := &model.StaffMember{
		Name:     req.Name,
		Role:     req.Role,
		Position: req.Position,
		Email:    req.Email,
		Phone:    req.Phone,
		Active:   req.Active,
	}
	if err := h.club.CreateStaff(c.Request.Context(), member); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// ListStaff lists staff members.
// GET /api/staff
func (h *ClubHandler) ListStaff(c *gin.Context) {
	list, err := h.club.ListStaff(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// GetStaff returns one staff member.
// GET /api/staff/:id
func (h *ClubHandler) GetStaff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	member, err := h.club.GetStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateStaff edits a staff member.
// PUT /api/staff/:id
func (h *ClubHandler) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	member := &model.StaffMember{
		ID:       id,
		Name:     req.Name,
		Role:     req.Role,
		Position: req.Position,
		Email:    req.Email,
		Phone:    req.Phone,
		Active:   req.Active,
	}
	if err := h.club.UpdateStaff(c.Request.Context(), member); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteStaff removes a staff member.
// DELETE /api/staff/:id
func (h *ClubHandler) DeleteStaff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.club.DeleteStaff(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type meetingRequest struct {
	Date        string   `json:"date" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Notes       string   `json:"notes"`
	AttendeeIDs []uint64 `json:"attendee_ids"`
}

// CreateMeeting records a meeting with its staff attendees.
// POST /api/meetings
func (h *ClubHandler) CreateMeeting(c *gin.Context) {
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	meeting := &model.Meeting{Date: date, Title: req.Title, Notes: req.Notes}
	if err := h.club.CreateMeeting(c.Request.Context(), meeting, req.AttendeeIDs); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, meeting)
}

// ListMeetings lists meetings, newest first.
// GET /api/meetings
func (h *ClubHandler) ListMeetings(c *gin.Context) {
	list, err := h.club.ListMeetings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// GetMeeting returns a meeting with its attendees.
// GET /api/meetings/:id
func (h *ClubHandler) GetMeeting(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	meeting, attendees, err := h.club.GetMeeting(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting, "attendees": attendees})
}

// UpdateMeeting edits a meeting and replaces its attendee set.
// PUT /api/meetings/:id
func (h *ClubHandler) UpdateMeeting(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	meeting := &model.Meeting{ID: id, Date: date, Title: req.Title, Notes: req.Notes}
	if err := h.club.UpdateMeeting(c.Request.Context(), meeting, req.AttendeeIDs); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

// DeleteMeeting removes a meeting and its attendee links.
// DELETE /api/meetings/:id
func (h *ClubHandler) DeleteMeeting(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.club.DeleteMeeting(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type equipmentRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Quantity     int    `json:"quantity"`
	Condition    string `json:"condition"`
	PurchaseDate string `json:"purchase_date"`
	Description  string `json:"description"`
}

func (r *equipmentRequest) toModel(id uint64) (*model.Equipment, error) {
	e := &model.Equipment{
		ID:          id,
		Name:        r.Name,
		Type:        r.Type,
		Quantity:    r.Quantity,
		Condition:   r.Condition,
		Description: r.Description,
	}
	if r.PurchaseDate != "" {
		d, err := parseDate(r.PurchaseDate)
		if err != nil {
			return nil, err
		}
		e.PurchaseDate = &d
	}
	return e, nil
}

// CreateEquipment adds an inventory item.
// POST /api/equipment
func (h *ClubHandler) CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	item, err := req.toModel(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase_date"})
		return
	}
	if err := h.club.CreateEquipment(c.Request.Context(), item); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListEquipment lists inventory items.
// GET /api/equipment
func (h *ClubHandler) ListEquipment(c *gin.Context) {
	list, err := h.club.ListEquipment(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// GetEquipment returns one inventory item.
// GET /api/equipment/:id
func (h *ClubHandler) GetEquipment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.club.GetEquipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateEquipment edits an inventory item.
// PUT /api/equipment/:id
func (h *ClubHandler) UpdateEquipment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	item, err := req.toModel(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase_date"})
		return
	}
	if err := h.club.UpdateEquipment(c.Request.Context(), item); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEquipment removes an inventory item.
// DELETE /api/equipment/:id
func (h *ClubHandler) DeleteEquipment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.club.DeleteEquipment(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
