package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

func seededRepo(t *testing.T) *InMemoryRepository {
	t.Helper()
	ctx := context.Background()

	repo := NewInMemoryRepository()
	for _, c := range SampleCategories() {
		c := c
		if err := repo.UpsertCategory(ctx, &c); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range SampleDishes() {
		d := d
		if err := repo.CreateDish(ctx, &d); err != nil {
			t.Fatal(err)
		}
	}
	return repo
}

func setupMenuTestRouter(repo Repository, storage Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service := NewService(repo, storage, 10)
	handler := NewHandler(service)
	admin := NewAdminHandler(service)

	r.GET("/api/menu/dishes", handler.ListDishes)
	r.GET("/api/menu/dishes/:id", handler.GetDish)
	r.GET("/api/menu/categories", handler.ListCategories)
	r.POST("/api/cart/quote", handler.QuoteCart)

	r.POST("/api/admin/dishes", admin.CreateDish)
	r.PUT("/api/admin/dishes/:id", admin.UpdateDish)
	r.DELETE("/api/admin/dishes/:id", admin.DeleteDish)
	r.POST("/api/admin/dishes/:id/image", admin.UploadImage)
	r.PUT("/api/admin/categories/:id", admin.UpsertCategory)

	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListDishes_AppliesFilters(t *testing.T) {
	r := setupMenuTestRouter(seededRepo(t), nil)

	w := doJSON(r, http.MethodGet, "/api/menu/dishes?category=starters&price=lte10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Dishes []Dish `json:"dishes"`
		Count  int    `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	assertIDs(t, resp.Dishes, "edamame", "chicken-strips", "spring-rolls")
	if resp.Count != 3 {
		t.Errorf("expected count 3, got %d", resp.Count)
	}
}

func TestListDishes_EmptyResultIsArray(t *testing.T) {
	r := setupMenuTestRouter(seededRepo(t), nil)

	w := doJSON(r, http.MethodGet, "/api/menu/dishes?search=lobster", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"dishes":[]`) {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestListDishes_InvalidBucket(t *testing.T) {
	r := setupMenuTestRouter(seededRepo(t), nil)

	w := doJSON(r, http.MethodGet, "/api/menu/dishes?price=cheap", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetDish_NotFound(t *testing.T) {
	r := setupMenuTestRouter(seededRepo(t), nil)

	w := doJSON(r, http.MethodGet, "/api/menu/dishes/lobster", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListCategories_Sorted(t *testing.T) {
	r := setupMenuTestRouter(seededRepo(t), nil)

	w := doJSON(r, http.MethodGet, "/api/menu/categories", nil)

	var resp struct {
		Categories []Category `json:"categories"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	if len(resp.Categories) != 4 || resp.Categories[0].ID != "starters" {
		t.Fatalf("unexpected categories: %+v", resp.Categories)
	}
}

func TestQuoteCart(t *testing.T) {
	r := setupMenuTestRouter(seededRepo(t), nil)

	w := doJSON(r, http.MethodPost, "/api/cart/quote", map[string]any{
		"lines": []CartLine{{DishID: "chicken-strips", Quantity: 3}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var quote CartQuote
	_ = json.Unmarshal(w.Body.Bytes(), &quote)
	if quote.Total != 33 {
		t.Fatalf("expected total 33, got %v", quote.Total)
	}

	w = doJSON(r, http.MethodPost, "/api/cart/quote", map[string]any{
		"lines": []CartLine{{DishID: "halloumi-salad", Quantity: 1}},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unavailable dish, got %d", w.Code)
	}
}

func TestCreateDish(t *testing.T) {
	repo := seededRepo(t)
	r := setupMenuTestRouter(repo, nil)

	w := doJSON(r, http.MethodPost, "/api/admin/dishes", map[string]any{
		"categoryId": "desserts",
		"name":       "Crème Brûlée",
		"shortDesc":  "Vanilla custard",
		"price":      7,
		"available":  true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	dish, err := repo.GetDish(context.Background(), "crème-brûlée")
	if err != nil {
		t.Fatalf("dish not stored: %v", err)
	}
	if dish.Price == nil || *dish.Price != 7 {
		t.Fatalf("unexpected price: %v", dish.Price)
	}
}

func TestCreateDish_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"duplicate", map[string]any{"id": "edamame", "categoryId": "starters", "name": "Edamame"}, http.StatusConflict},
		{"unknown category", map[string]any{"categoryId": "brunch", "name": "Pancakes"}, http.StatusBadRequest},
		{"negative price", map[string]any{"categoryId": "starters", "name": "Olives", "price": -1}, http.StatusBadRequest},
		{"missing name", map[string]any{"id": "x", "categoryId": "starters"}, http.StatusBadRequest},
		{"variant without label", map[string]any{
			"categoryId": "drinks", "name": "Lemonade",
			"variants": []map[string]any{{"price": 3}},
		}, http.StatusBadRequest},
		{"duplicate variant", map[string]any{
			"categoryId": "drinks", "name": "Lemonade",
			"variants": []map[string]any{{"label": "glass", "price": 3}, {"label": "glass", "price": 4}},
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupMenuTestRouter(seededRepo(t), nil)
			w := doJSON(r, http.MethodPost, "/api/admin/dishes", tt.body)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateAndDeleteDish(t *testing.T) {
	repo := seededRepo(t)
	r := setupMenuTestRouter(repo, nil)

	w := doJSON(r, http.MethodPut, "/api/admin/dishes/edamame", map[string]any{
		"categoryId": "starters",
		"name":       "Spicy Edamame",
		"price":      6,
		"dietTags":   []string{"vegan"},
		"available":  false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	dish, _ := repo.GetDish(context.Background(), "edamame")
	if dish.Name != "Spicy Edamame" || dish.Available {
		t.Fatalf("update not applied: %+v", dish)
	}

	w = doJSON(r, http.MethodDelete, "/api/admin/dishes/edamame", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/admin/dishes/edamame", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func multipartImage(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("fake image bytes"))
	_ = mw.Close()

	return body, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	repo := seededRepo(t)
	storage := &fakeStorage{}
	r := setupMenuTestRouter(repo, storage)

	body, ct := multipartImage(t, "Edamame.JPG")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/dishes/edamame/image", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(storage.keys) != 1 || !strings.HasPrefix(storage.keys[0], "dishes/edamame/") || !strings.HasSuffix(storage.keys[0], ".jpg") {
		t.Fatalf("unexpected object keys: %v", storage.keys)
	}

	dish, _ := repo.GetDish(context.Background(), "edamame")
	if dish.ImageURL != "https://cdn.test/"+storage.keys[0] {
		t.Fatalf("image url not recorded: %q", dish.ImageURL)
	}
}

func TestUploadImage_Rejections(t *testing.T) {
	t.Run("bad extension", func(t *testing.T) {
		r := setupMenuTestRouter(seededRepo(t), &fakeStorage{})
		body, ct := multipartImage(t, "menu.gif")
		req := httptest.NewRequest(http.MethodPost, "/api/admin/dishes/edamame/image", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("storage disabled", func(t *testing.T) {
		r := setupMenuTestRouter(seededRepo(t), nil)
		body, ct := multipartImage(t, "edamame.png")
		req := httptest.NewRequest(http.MethodPost, "/api/admin/dishes/edamame/image", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}

func TestUpsertCategory(t *testing.T) {
	repo := seededRepo(t)
	r := setupMenuTestRouter(repo, nil)

	w := doJSON(r, http.MethodPut, "/api/admin/categories/brunch", map[string]any{
		"name":      "Brunch",
		"sortOrder": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	categories, _ := repo.ListCategories(context.Background())
	if categories[0].ID != "brunch" {
		t.Fatalf("expected brunch first, got %+v", categories)
	}
}

func TestSlugify(t *testing.T) {
	for in, want := range map[string]string{
		"Chicken Strips (4pcs)": "chicken-strips-4pcs",
		"  Fresh   Juice ":      "fresh-juice",
		"Crème Brûlée":          "crème-brûlée",
	} {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
