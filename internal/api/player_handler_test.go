package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ClubManager/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	moderncSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// newTestRouter wires the player routes against a fresh in-memory database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(moderncSqlite.New(moderncSqlite.Config{
		DSN:        dsn,
		DriverName: "sqlite",
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&model.Player{},
		&model.PlayerCategoryHistory{},
		&model.MembershipHistory{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewPlayerHandler(db, logger)
	r := gin.New()
	r.POST("/api/players", h.CreatePlayer)
	r.GET("/api/players/:id", h.GetPlayer)
	r.POST("/api/players/:id/category", h.ChangeCategory)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlayerEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/players", map[string]any{
		"first_name":    "Ivan",
		"last_name":     "Horvat",
		"date_of_birth": "1995-03-15",
		"position":      "MF",
		"category":      "SEN",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var created model.Player
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 || !created.IsActiveMember {
		t.Errorf("created player = %+v", created)
	}
}

func TestCreatePlayerEndpointMissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/players", map[string]any{
		"first_name": "Ivan",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestValidationErrorsCarryViolations(t *testing.T) {
	r, _ := newTestRouter(t)

	// A 25 year old cannot register as a junior.
	w := doJSON(t, r, http.MethodPost, "/api/players", map[string]any{
		"first_name":    "Luka",
		"last_name":     "Babic",
		"date_of_birth": "2000-01-01",
		"position":      "DF",
		"category":      "JUN",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error      string `json:"error"`
		Violations []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"violations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Violations) == 0 {
		t.Fatalf("expected violations in body, got %s", w.Body.String())
	}
	if resp.Violations[0].Code == "" || resp.Violations[0].Message == "" {
		t.Errorf("violation should carry code and message: %+v", resp.Violations[0])
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/players/99", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestChangeCategoryEndpointRejectsRegression(t *testing.T) {
	r, db := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/players", map[string]any{
		"first_name":    "Marko",
		"last_name":     "Novak",
		"date_of_birth": "2015-02-01",
		"position":      "FW",
		"category":      "JUN",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created model.Player
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/players/%d/category", created.ID), map[string]any{
		"category": "SP",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var p model.Player
	if err := db.First(&p, created.ID).Error; err != nil {
		t.Fatalf("reload player: %v", err)
	}
	if p.Category != model.CategoryJUN {
		t.Errorf("category changed despite rejection: %s", p.Category)
	}
}
