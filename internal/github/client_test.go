package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeGitHub emulates the contents API for a single repository.
type fakeGitHub struct {
	mu    sync.Mutex
	files map[string][]byte
	puts  int
	token string
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *httptest.Server) {
	t.Helper()

	f := &fakeGitHub{files: make(map[string][]byte)}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.token = r.Header.Get("Authorization")

	const prefix = "/repos/acme/site/contents/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)

	switch r.Method {
	case http.MethodGet:
		data, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sha":     "sha-" + path,
			"content": base64.StdEncoding.EncodeToString(data),
		})

	case http.MethodPut:
		var body struct {
			Message string `json:"message"`
			Content string `json:"content"`
			Branch  string `json:"branch"`
			SHA     string `json:"sha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		_, exists := f.files[path]
		if exists && body.SHA == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"sha wasn't supplied"}`))
			return
		}

		data, _ := base64.StdEncoding.DecodeString(body.Content)
		f.files[path] = data
		f.puts++

		status := http.StatusCreated
		if exists {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"path": path, "sha": "sha-" + path},
			"commit":  map[string]string{"sha": "commit-1", "html_url": "https://github.test/commit-1"},
		})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(Options{
		Token:  "tok",
		Owner:  "acme",
		Repo:   "site",
		APIURL: srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestCommitFile_CreateUpdateUnchanged(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	res, err := client.CommitFile(ctx, "content/footer.json", []byte(`{"a":1}`), "Update footer")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.CommitSHA != "commit-1" || res.Path != "content/footer.json" {
		t.Fatalf("unexpected result %+v", res)
	}
	if fake.token != "Bearer tok" {
		t.Errorf("expected bearer token, got %q", fake.token)
	}

	if _, err := client.CommitFile(ctx, "content/footer.json", []byte(`{"a":2}`), "Update footer"); err != nil {
		t.Fatalf("update: %v", err)
	}

	res, err = client.CommitFile(ctx, "content/footer.json", []byte(`{"a":2}`), "Update footer")
	if err != nil {
		t.Fatalf("unchanged: %v", err)
	}
	if !res.Unchanged {
		t.Errorf("expected unchanged result")
	}

	if fake.puts != 2 {
		t.Errorf("expected 2 writes, got %d", fake.puts)
	}
	if string(fake.files["content/footer.json"]) != `{"a":2}` {
		t.Errorf("unexpected stored content %s", fake.files["content/footer.json"])
	}
}

func TestCommitFile_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	if _, err := client.CommitFile(context.Background(), "content/x.json", []byte("{}"), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewClient_RequiresConfig(t *testing.T) {
	if _, err := NewClient(Options{Owner: "acme", Repo: "site"}); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{
		"content/footer.json",
		"content/legal/privacy.json",
	}
	invalid := []string{
		"",
		"content/",
		"/content/footer.json",
		"content/../go.mod",
		"content/./footer.json",
		"content//footer.json",
		"footer.json",
		".github/workflows/deploy.yml",
		"content\\footer.json",
	}

	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v, want nil", p, err)
		}
	}
	for _, p := range invalid {
		if err := ValidatePath(p); err == nil {
			t.Errorf("ValidatePath(%q) = nil, want error", p)
		}
	}
}
