package content

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portsanantonio/internal/auth"

	"github.com/gin-gonic/gin"
)

func setupContentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(NewService(NewInMemoryRepository(), nil))

	r.GET("/api/footer", h.GetFooter)
	r.GET("/api/legal/:type", h.GetLegal)

	admin := r.Group("/api/admin", func(c *gin.Context) {
		c.Set(auth.ContextUserEmail, "editor@example.com")
	})
	admin.PUT("/footer", h.SaveFooter)
	admin.PUT("/legal/:type", h.SaveLegal)

	return r
}

func send(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
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

func TestFooterEndpoints(t *testing.T) {
	r := setupContentRouter()

	if w := send(r, http.MethodGet, "/api/footer", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before first save, got %d", w.Code)
	}

	w := send(r, http.MethodPut, "/api/admin/footer", sampleFooter())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = send(r, http.MethodGet, "/api/footer", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var footer Footer
	_ = json.Unmarshal(w.Body.Bytes(), &footer)
	if footer.UpdatedBy != "editor@example.com" {
		t.Fatalf("expected editor to be recorded, got %q", footer.UpdatedBy)
	}

	bad := sampleFooter()
	bad.Email = "nope"
	if w := send(r, http.MethodPut, "/api/admin/footer", bad); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", w.Code)
	}
}

func TestLegalEndpoints(t *testing.T) {
	r := setupContentRouter()

	page := map[string]any{
		"title":    "Refund Policy",
		"sections": []map[string]string{{"heading": "Eligibility", "body": "Within 24 hours."}},
	}

	if w := send(r, http.MethodPut, "/api/admin/legal/refund", page); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := send(r, http.MethodGet, "/api/legal/refund", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := send(r, http.MethodGet, "/api/legal/cookies", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unsaved page, got %d", w.Code)
	}
	if w := send(r, http.MethodGet, "/api/legal/imprint", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown type, got %d", w.Code)
	}
	if w := send(r, http.MethodPut, "/api/admin/legal/imprint", page); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", w.Code)
	}
}
