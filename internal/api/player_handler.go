package api

import (
	"net/http"
	"time"

	"ClubManager/internal/model"
	"ClubManager/internal/repository"
	"ClubManager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlayerHandler exposes player registration, listing, membership and
// category operations.
type PlayerHandler struct {
	players    *service.PlayerService
	membership *service.MembershipService
	logger     *logrus.Logger
}

// NewPlayerHandler creates a PlayerHandler.
func NewPlayerHandler(db *gorm.DB, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		players:    service.NewPlayerService(db, logger),
		membership: service.NewMembershipService(db, logger),
		logger:     logger,
	}
}

type playerRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Position    string `json:"position" binding:"required"`
	Category    string `json:"category"`
	MemberSince string `json:"member_since"`
}

func (r *playerRequest) toInput() (*service.PlayerInput, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	in := &service.PlayerInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: dob,
		Position:    model.Position(r.Position),
		Category:    model.Category(r.Category),
	}
	if r.MemberSince != "" {
		since, err := parseDate(r.MemberSince)
		if err != nil {
			return nil, err
		}
		in.MemberSince = &since
	}
	return in, nil
}

// CreatePlayer registers a player.
// POST /api/players
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + err.Error()})
		return
	}
	player, err := h.players.CreatePlayer(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

// ListPlayers lists players with optional filters.
// GET /api/players?category=SEN&first_name=&last_name=&date_of_birth=&position=
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	filter := repository.PlayerFilter{
		Category:  model.Category(c.Query("category")),
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Position:  model.Position(c.Query("position")),
	}
	if dob := c.Query("date_of_birth"); dob != "" {
		parsed, err := parseDate(dob)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth"})
			return
		}
		filter.DateOfBirth = &parsed
	}
	players, err := h.players.ListPlayers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": players})
}

// ListEligible returns roster candidates for a category and match date.
// GET /api/players/eligible?category=SEN&date=2026-05-01
func (h *PlayerHandler) ListEligible(c *gin.Context) {
	category := model.Category(c.Query("category"))
	asOf := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := parseDate(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		asOf = parsed
	}
	players, err := h.players.ListEligible(c.Request.Context(), category, asOf)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": players})
}

// GetPlayer returns a player with both history logs.
// GET /api/players/:id
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.players.GetPlayer(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdatePlayer edits the basic player fields.
// PUT /api/players/:id
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + err.Error()})
		return
	}
	player, err := h.players.UpdatePlayer(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// DeletePlayer removes a player.
// DELETE /api/players/:id
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.players.DeletePlayer(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeCategory moves a player to a new age bracket.
// POST /api/players/:id/category
func (h *PlayerHandler) ChangeCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.membership.ChangeCategory(c.Request.Context(), id, model.Category(req.Category)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated"})
}

// SetMembership activates, deactivates or extends a player's membership.
// POST /api/players/:id/membership
func (h *PlayerHandler) SetMembership(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Active bool   `json:"active"`
		Until  string `json:"until"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	var until *time.Time
	if req.Until != "" {
		parsed, err := parseDate(req.Until)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid until date"})
			return
		}
		until = &parsed
	}
	if err := h.membership.SetMembership(c.Request.Context(), id, req.Active, until); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "membership updated"})
}
