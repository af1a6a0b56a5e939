package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func seededJobsRepo(t *testing.T) *InMemoryRepository {
	t.Helper()

	repo := NewInMemoryRepository()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, p := range []Posting{
		{ID: "line-cook", Title: "Line Cook", Active: true},
		{ID: "bartender", Title: "Bartender", Active: true},
		{ID: "lifeguard", Title: "Lifeguard", Active: false},
	} {
		p.Department = "Food & Beverage"
		p.Location = "Port San Antonio"
		p.EmploymentType = TypeSeasonal
		p.Description = "Join the summer team."
		p.PostedAt = base.Add(time.Duration(i) * 24 * time.Hour)
		if err := repo.Create(context.Background(), &p); err != nil {
			t.Fatal(err)
		}
	}
	return repo
}

func setupJobsRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(repo))

	r.GET("/api/jobs", h.ListOpen())
	r.GET("/api/jobs/:id", h.GetOpen())
	r.GET("/api/admin/jobs", h.ListAll())
	r.POST("/api/admin/jobs", h.Create())
	r.PUT("/api/admin/jobs/:id", h.Update())
	r.DELETE("/api/admin/jobs/:id", h.Delete())
	return r
}

func call(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJobs(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	var resp struct {
		Jobs []Posting `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(resp.Jobs))
	for i, p := range resp.Jobs {
		ids[i] = p.ID
	}
	return ids
}

func TestListOpen_ActiveNewestFirst(t *testing.T) {
	r := setupJobsRouter(seededJobsRepo(t))

	w := call(r, http.MethodGet, "/api/jobs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	ids := decodeJobs(t, w)
	if len(ids) != 2 || ids[0] != "bartender" || ids[1] != "line-cook" {
		t.Fatalf("unexpected order %v", ids)
	}

	w = call(r, http.MethodGet, "/api/admin/jobs", nil)
	if ids := decodeJobs(t, w); len(ids) != 3 || ids[0] != "lifeguard" {
		t.Fatalf("admin list should include inactive postings, got %v", ids)
	}
}

func TestGetOpen_HidesInactive(t *testing.T) {
	r := setupJobsRouter(seededJobsRepo(t))

	if w := call(r, http.MethodGet, "/api/jobs/line-cook", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := call(r, http.MethodGet, "/api/jobs/lifeguard", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for inactive posting, got %d", w.Code)
	}
	if w := call(r, http.MethodGet, "/api/jobs/unknown", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	repo := seededJobsRepo(t)
	r := setupJobsRouter(repo)

	payload := map[string]any{
		"title":          "Sous Chef",
		"department":     "Kitchen",
		"location":       "Port San Antonio",
		"employmentType": TypeFullTime,
		"description":    "Lead the line.",
		"requirements":   []string{"3 years experience"},
		"active":         true,
	}

	w := call(r, http.MethodPost, "/api/admin/jobs", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created Posting
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	payload["active"] = false
	if w := call(r, http.MethodPut, "/api/admin/jobs/"+created.ID, payload); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := call(r, http.MethodGet, "/api/jobs/"+created.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deactivated posting should be hidden, got %d", w.Code)
	}

	if w := call(r, http.MethodDelete, "/api/admin/jobs/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := call(r, http.MethodPut, "/api/admin/jobs/"+created.ID, payload); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreate_Validation(t *testing.T) {
	r := setupJobsRouter(NewInMemoryRepository())

	w := call(r, http.MethodPost, "/api/admin/jobs", map[string]any{
		"title":          "Sous Chef",
		"department":     "Kitchen",
		"location":       "Port San Antonio",
		"employmentType": "internship",
		"description":    "Lead the line.",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown employment type, got %d", w.Code)
	}

	w = call(r, http.MethodPost, "/api/admin/jobs", map[string]any{
		"title":          "Sous Chef",
		"employmentType": TypeFullTime,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", w.Code)
	}
}
