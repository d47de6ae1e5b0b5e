package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"heladeria/internal/aigen"
	"heladeria/internal/domain"
	"heladeria/internal/repository"
	"heladeria/internal/service"
	"heladeria/internal/storage"
)

type fakeText struct {
	description string
	err         error
}

func (f *fakeText) Describe(ctx context.Context, name string, category domain.Category) (string, error) {
	return f.description, f.err
}

type fakeImage struct {
	data []byte
	err  error
}

func (f *fakeImage) Generate(ctx context.Context, name string, category domain.Category) ([]byte, error) {
	return f.data, f.err
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	return setupServerWithModels(t, &fakeText{description: "Descripción generada."}, &fakeImage{data: []byte("png")})
}

func setupServerWithModels(t *testing.T, text aigen.TextModel, image aigen.ImageModel) *Server {
	t.Helper()
	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	productsSvc := service.NewProductService(store)
	ordersSvc := service.NewOrderService(ordersRepo)
	images := storage.NewMemoryStore()
	ai := aigen.NewGenerator(text, image, images)
	return NewServer(productsSvc, ordersSvc, ai, images)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestProductFlow(t *testing.T) {
	s := setupServer(t)

	// create
	w := doJSON(t, s, http.MethodPost, "/products", map[string]any{
		"name": "Helado de Vainilla", "category": "helado", "price": 4.99,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create code %v: %s", w.Code, w.Body.String())
	}
	created := decode[domain.Product](t, w)
	if created.ID == "" || !created.IsActive {
		t.Fatalf("created product: %+v", created)
	}

	// get
	w = doJSON(t, s, http.MethodGet, "/products/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get code %v", w.Code)
	}

	// update
	w = doJSON(t, s, http.MethodPut, "/products/"+created.ID, map[string]any{"price": 5.49})
	if w.Code != http.StatusOK {
		t.Fatalf("update code %v: %s", w.Code, w.Body.String())
	}
	updated := decode[domain.Product](t, w)
	if updated.Price != 5.49 || updated.Name != "Helado de Vainilla" {
		t.Fatalf("update result: %+v", updated)
	}

	// list
	w = doJSON(t, s, http.MethodGet, "/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list code %v", w.Code)
	}
	if list := decode[[]domain.Product](t, w); len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}

	// soft delete
	w = doJSON(t, s, http.MethodDelete, "/products/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete code %v", w.Code)
	}
	msg := decode[map[string]string](t, w)
	if msg["message"] == "" {
		t.Fatalf("delete body: %s", w.Body.String())
	}

	// deleted product is invisible
	w = doJSON(t, s, http.MethodGet, "/products/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/products", nil)
	if list := decode[[]domain.Product](t, w); len(list) != 0 {
		t.Fatalf("deleted product still listed: %v", list)
	}
}

func TestCreateProduct_PromotionRejected(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/products", map[string]any{
		"name": "Helado", "category": "helado", "price": 4.99,
		"isOnPromotion": true, "promotionalPrice": 5.99,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	body := decode[map[string]any](t, w)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("no fields in body: %s", w.Body.String())
	}
	if _, ok := fields["promotionalPrice"]; !ok {
		t.Fatalf("promotionalPrice not named: %v", fields)
	}
}

func TestOrderFlow(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/orders", map[string]any{
		"customerName":  "Juan Pérez",
		"customerEmail": "juan@ejemplo.com",
		"deliveryAddress": map[string]any{
			"street": "Calle Mayor 1", "city": "Madrid",
		},
		"items": []map[string]any{
			{"id": "p1", "name": "Helado", "price": 4.99, "quantity": 2},
			{"id": "p2", "name": "Tarta", "price": 6.99, "quantity": 1},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order %v: %s", w.Code, w.Body.String())
	}
	o := decode[domain.Order](t, w)
	if o.TotalAmount != 16.97 {
		t.Fatalf("total: %v", o.TotalAmount)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("status: %v", o.Status)
	}

	// list
	w = doJSON(t, s, http.MethodGet, "/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list orders %v", w.Code)
	}
	if list := decode[[]domain.Order](t, w); len(list) != 1 {
		t.Fatalf("expected 1 order, got %d", len(list))
	}

	// status update
	w = doJSON(t, s, http.MethodPatch, "/orders/"+o.ID+"/status", map[string]any{"status": "processing"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status %v: %s", w.Code, w.Body.String())
	}
	if upd := decode[domain.Order](t, w); upd.Status != domain.OrderStatusProcessing {
		t.Fatalf("status not updated: %v", upd.Status)
	}
}

func TestCreateOrder_ValidationNamesFields(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/orders", map[string]any{
		"customerName": "Juan",
		"deliveryAddress": map[string]any{
			"street": "Calle Mayor 1", "city": "Madrid",
		},
		"items": []map[string]any{{"id": "p1", "name": "Helado", "price": 4.99, "quantity": 1}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	body := decode[map[string]any](t, w)
	fields, _ := body["fields"].(map[string]any)
	if _, ok := fields["customerEmail"]; !ok {
		t.Fatalf("customerEmail not named: %s", w.Body.String())
	}
}

func TestGenerateContent(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/ai/generate", map[string]any{
		"productName": "Helado de Mango", "category": "helado",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate %v: %s", w.Code, w.Body.String())
	}
	res := decode[map[string]string](t, w)
	if res["description"] == "" || res["imageUrl"] == "" {
		t.Fatalf("incomplete result: %v", res)
	}

	// missing fields
	w = doJSON(t, s, http.MethodPost, "/ai/generate", map[string]any{"productName": "Helado"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
}

func TestGenerateContent_TextFailure(t *testing.T) {
	s := setupServerWithModels(t, &fakeText{err: errors.New("model unreachable")}, &fakeImage{data: []byte("png")})

	w := doJSON(t, s, http.MethodPost, "/ai/generate", map[string]any{
		"productName": "Helado", "category": "helado",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", w.Code)
	}
	body := decode[map[string]string](t, w)
	if body["error"] != "Failed to generate content" {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestGenerateContent_ImageFailureDegrades(t *testing.T) {
	s := setupServerWithModels(t, &fakeText{description: "Descripción."}, &fakeImage{err: errors.New("model unreachable")})

	w := doJSON(t, s, http.MethodPost, "/ai/generate", map[string]any{
		"productName": "Helado", "category": "helado",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected partial success, got %v: %s", w.Code, w.Body.String())
	}
	res := decode[map[string]string](t, w)
	if res["imageUrl"] != aigen.Placeholder {
		t.Fatalf("expected placeholder, got %q", res["imageUrl"])
	}
}

func TestUploadImage(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/upload-image", map[string]any{
		"image":       base64.StdEncoding.EncodeToString([]byte("fake-image-bytes")),
		"fileName":    "foto.png",
		"contentType": "image/png",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload %v: %s", w.Code, w.Body.String())
	}
	res := decode[map[string]string](t, w)
	if !strings.HasPrefix(res["imageUrl"], "memory://products/") || !strings.HasSuffix(res["imageUrl"], ".png") {
		t.Fatalf("unexpected url: %q", res["imageUrl"])
	}

	// missing payload
	w = doJSON(t, s, http.MethodPost, "/upload-image", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/products", nil)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("missing CORS header, got %q", got)
	}

	// preflight
	w = doJSON(t, s, http.MethodOptions, "/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("preflight code %v", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("missing allow-methods header")
	}
}
