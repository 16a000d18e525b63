package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/10kkyvl/planetarium-api/config"
	"github.com/10kkyvl/planetarium-api/internal/models"
	"github.com/10kkyvl/planetarium-api/internal/server"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := filepath.Join(t.TempDir(), "planetarium.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return server.NewRouter(db), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func registerUser(t *testing.T, r *gin.Engine, username string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/user/register",
		`{"username":"`+username+`","password":"securepassword123"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, w.Code, w.Body.String())
	}
}

func loginUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/user/token",
		`{"username":"`+username+`","password":"securepassword123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeBody(t, w, &body)
	if body.AccessToken == "" {
		t.Fatalf("login %s: empty access token", username)
	}
	return body.AccessToken
}

func promoteToStaff(t *testing.T, db *gorm.DB, username string) {
	t.Helper()

	var role models.Role
	if err := db.Where("name = ?", models.RoleStaff).First(&role).Error; err != nil {
		t.Fatalf("staff role missing: %v", err)
	}
	if err := db.Model(&models.User{}).Where("username = ?", username).Update("role_id", role.ID).Error; err != nil {
		t.Fatalf("failed to promote %s: %v", username, err)
	}
}

// seedCatalog creates a themed show scheduled in a 10x15 dome and returns
// the session.
func seedCatalog(t *testing.T, db *gorm.DB) models.Session {
	t.Helper()

	show := models.Show{
		ID:          uuid.New(),
		Title:       "Journey to the Stars",
		Description: "An amazing journey through our galaxy",
		Themes:      []models.Theme{{ID: uuid.New(), Name: "Space Exploration"}},
	}
	if err := db.Create(&show).Error; err != nil {
		t.Fatalf("failed to seed show: %v", err)
	}
	dome := models.Dome{ID: uuid.New(), Name: "Main Dome", Rows: 10, SeatsInRow: 15}
	if err := db.Create(&dome).Error; err != nil {
		t.Fatalf("failed to seed dome: %v", err)
	}
	session := models.Session{
		ID:       uuid.New(),
		ShowID:   show.ID,
		DomeID:   dome.ID,
		ShowTime: time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
