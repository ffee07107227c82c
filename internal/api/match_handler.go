package api

import (
	"net/http"

	"ClubManager/internal/model"
	"ClubManager/internal/repository"
	"ClubManager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatchHandler exposes match creation, editing and deletion. All mutations
// run through the match service's transactional apply.
type MatchHandler struct {
	matches *service.MatchService
	logger  *logrus.Logger
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(db *gorm.DB, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{
		matches: service.NewMatchService(db, logger),
		logger:  logger,
	}
}

type matchRequest struct {
	Date         string                `json:"date" binding:"required"`
	HomeOrAway   string                `json:"home_or_away" binding:"required,oneof=H A"`
	Opponent     string                `json:"opponent" binding:"required"`
	HomeScore    int                   `json:"home_score"`
	AwayScore    int                   `json:"away_score"`
	Category     string                `json:"category" binding:"required"`
	StarterIDs   []uint64              `json:"starter_ids" binding:"required"`
	BenchIDs     []uint64              `json:"bench_ids"`
	CaptainID    uint64                `json:"captain_id" binding:"required"`
	GoalkeeperID uint64                `json:"goalkeeper_id" binding:"required"`
	Goals        []service.GoalEntry   `json:"goals"`
	Assists      []service.AssistEntry `json:"assists"`
	Cards        []service.CardEntry   `json:"cards"`
}

func (r *matchRequest) toInput() (*service.MatchInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &service.MatchInput{
		Date:         date,
		HomeOrAway:   r.HomeOrAway,
		Opponent:     r.Opponent,
		HomeScore:    r.HomeScore,
		AwayScore:    r.AwayScore,
		Category:     model.Category(r.Category),
		StarterIDs:   r.StarterIDs,
		BenchIDs:     r.BenchIDs,
		CaptainID:    r.CaptainID,
		GoalkeeperID: r.GoalkeeperID,
		Goals:        r.Goals,
		Assists:      r.Assists,
		Cards:        r.Cards,
	}, nil
}

// CreateMatch validates and applies a match with its roster and events.
// POST /api/matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + err.Error()})
		return
	}
	match, err := h.matches.CreateMatch(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// ListMatches lists matches, newest first.
// GET /api/matches?category=SEN&date=2026-05-01
func (h *MatchHandler) ListMatches(c *gin.Context) {
	filter := repository.MatchFilter{
		Category: model.Category(c.Query("category")),
	}
	if d := c.Query("date"); d != "" {
		parsed, err := parseDate(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		filter.Date = &parsed
	}
	matches, err := h.matches.ListMatches(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": matches})
}

// GetMatch returns a match with roster and events.
// GET /api/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.matches.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetMatchByUUID returns a match addressed by its public identifier.
// GET /api/matches/uuid/:uuid
func (h *MatchHandler) GetMatchByUUID(c *gin.Context) {
	detail, err := h.matches.GetMatchByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateMatch replaces a match. Counter contributions are reversed and
// re-applied atomically, so edits never double count.
// PUT /api/matches/:id
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + err.Error()})
		return
	}
	match, err := h.matches.UpdateMatch(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// DeleteMatch removes a match and reverses its counter contributions.
// DELETE /api/matches/:id
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.matches.DeleteMatch(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
