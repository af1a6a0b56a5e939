package github

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func autoCommitRouter(client *Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/admin/auto-commit", NewHandler(client).AutoCommit)
	return r
}

func postCommit(r http.Handler, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auto-commit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAutoCommit(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	r := autoCommitRouter(newTestClient(t, srv))

	w := postCommit(r, map[string]string{
		"path":    "content/legal/privacy.json",
		"content": `{"title":"Privacy"}`,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := fake.files["content/legal/privacy.json"]; !ok {
		t.Fatal("file was not committed")
	}
}

func TestAutoCommit_Rejections(t *testing.T) {
	_, srv := newFakeGitHub(t)
	r := autoCommitRouter(newTestClient(t, srv))

	if w := postCommit(r, map[string]string{"path": "content/../main.go", "content": "x"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for traversal, got %d", w.Code)
	}
	if w := postCommit(r, map[string]string{"path": "content/a.json"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without content, got %d", w.Code)
	}
}

func TestAutoCommit_NotConfigured(t *testing.T) {
	r := autoCommitRouter(nil)

	w := postCommit(r, map[string]string{"path": "content/a.json", "content": "x"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
