package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	service := NewService(NewInMemoryUserRepository())
	handler := NewHandler(service)

	r := gin.New()
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/admin/staff", handler.CreateStaff)
	r.GET("/api/auth/me", func(c *gin.Context) {
		c.Set(ContextUserID, c.GetHeader("X-Test-User"))
		handler.Me(c)
	})

	return r, service
}

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateStaffSuccess(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := postJSON(r, "/api/admin/staff", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
		"role":     "EDITOR",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password hash leaked in response: %s", w.Body.String())
	}
}

func TestCreateStaffMissingFields(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := postJSON(r, "/api/admin/staff", map[string]string{
		"email": "test@example.com",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestCreateStaffDuplicateEmail(t *testing.T) {
	r, _ := setupTestRouter(t)

	payload := map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	}

	// First request (should succeed)
	if w := postJSON(r, "/api/admin/staff", payload); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	// Second request (should fail)
	if w := postJSON(r, "/api/admin/staff", payload); w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	r, service := setupTestRouter(t)

	user, err := service.Register(context.Background(), "Ana", "ana@example.com", "Password@123", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	w := postJSON(r, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "Password@123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	claims, err := ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}

	w = postJSON(r, "/api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "nope",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestMe(t *testing.T) {
	r, service := setupTestRouter(t)

	user, _ := service.Register(context.Background(), "Ana", "ana@example.com", "Password@123", RoleEditor)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("X-Test-User", user.ID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"email":"ana@example.com"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without user, got %d", w.Code)
	}
}
