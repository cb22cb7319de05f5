package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/config"
	"github.com/startupsaga/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.AppConfig{
		SessionSecret: "test-secret",
		GinMode:       gin.TestMode,
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
		SiteBaseURL:   "https://startupsaga.in",
	}
	return NewAPI(gdb, cfg)
}

func decodeStartup(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	startup, ok := resp["startup"].(map[string]any)
	if !ok {
		t.Fatalf("expected response to include startup object: %s", w.Body.String())
	}
	return startup
}

func postJSON(t *testing.T, handlerFn gin.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handlerFn(c)
	return w
}

func TestCreateStartupDefaultsToPublished(t *testing.T) {
	api := setupTestAPI(t)

	w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{
		"name":    "Zerodha",
		"tagline": "Broking without brokerage",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	startup := decodeStartup(t, w)
	if startup["Slug"] != "zerodha" {
		t.Fatalf("expected slug zerodha, got %v", startup["Slug"])
	}
	if startup["Status"] != "published" {
		t.Fatalf("expected published, got %v", startup["Status"])
	}
}

func TestCreateStartupRequiresName(t *testing.T) {
	api := setupTestAPI(t)

	w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{
		"tagline": "no name",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetStartupBySlugAnswersRedirectAfterRename(t *testing.T) {
	api := setupTestAPI(t)

	w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{"name": "Freshdesk"})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed startup: %d", w.Code)
	}
	startupID := int(decodeStartup(t, w)["ID"].(float64))

	body, _ := json.Marshal(map[string]any{"slug": "freshworks"})
	req := httptest.NewRequest(http.MethodPut, "/admin/api/startups/"+strconv.Itoa(startupID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	uw := httptest.NewRecorder()
	uc, _ := gin.CreateTestContext(uw)
	uc.Request = req
	uc.Params = gin.Params{gin.Param{Key: "id", Value: strconv.Itoa(startupID)}}
	api.UpdateStartup(uc)
	if uw.Code != http.StatusOK {
		t.Fatalf("rename: %d: %s", uw.Code, uw.Body.String())
	}

	gw := httptest.NewRecorder()
	gc, _ := gin.CreateTestContext(gw)
	gc.Request = httptest.NewRequest(http.MethodGet, "/api/startups/freshdesk", nil)
	gc.Params = gin.Params{gin.Param{Key: "slug", Value: "freshdesk"}}
	api.GetStartupBySlug(gc)

	if gw.Code != http.StatusMovedPermanently {
		t.Fatalf("expected status 301, got %d: %s", gw.Code, gw.Body.String())
	}
	var redirect struct {
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.Unmarshal(gw.Body.Bytes(), &redirect); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if redirect.RedirectTo != "/startups/freshworks/" {
		t.Fatalf("expected /startups/freshworks/, got %q", redirect.RedirectTo)
	}
}

func TestGetStartupBySlugUnknownIs404(t *testing.T) {
	api := setupTestAPI(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/startups/ghost", nil)
	c.Params = gin.Params{gin.Param{Key: "slug", Value: "ghost"}}
	api.GetStartupBySlug(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestListStartupsHidesDrafts(t *testing.T) {
	api := setupTestAPI(t)

	if w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{"name": "Live Co"}); w.Code != http.StatusCreated {
		t.Fatalf("seed published: %d", w.Code)
	}
	if w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{"name": "Stealth Co", "status": "draft"}); w.Code != http.StatusCreated {
		t.Fatalf("seed draft: %d", w.Code)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/startups", nil)
	api.ListStartups(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	startups, ok := resp["startups"].([]any)
	if !ok || len(startups) != 1 {
		t.Fatalf("draft leaked into the public list: %s", w.Body.String())
	}
	if name := startups[0].(map[string]any)["Name"]; name != "Live Co" {
		t.Fatalf("unexpected startup %v in the public list", name)
	}
	if total := resp["total"].(float64); total != 1 {
		t.Fatalf("expected total 1, got %v", total)
	}
}

func TestCreateStartupSlugConflict(t *testing.T) {
	api := setupTestAPI(t)

	if w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{"name": "Swiggy"}); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	// Same name lands on a suffixed slug rather than a conflict.
	w := postJSON(t, api.CreateStartup, "/admin/api/startups", map[string]any{"name": "Swiggy"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if slug := decodeStartup(t, w)["Slug"]; slug != "swiggy-1" {
		t.Fatalf("expected swiggy-1, got %v", slug)
	}
}
