package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gymbook/internal/catalog/validator"
	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/logger"
	"gymbook/pkg/middleware"
	"gymbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockCatalogService struct {
	classes []map[string]any
	books   []map[string]any
	count   int64
	created *model.Book
	err     error
}

func (m *mockCatalogService) PublicClasses(_ context.Context, _ int64, _ string) ([]map[string]any, error) {
	return m.classes, m.err
}

func (m *mockCatalogService) AllBooks(_ context.Context) ([]map[string]any, error) {
	return m.books, m.err
}

func (m *mockCatalogService) CountBooks(_ context.Context) (int64, error) {
	return m.count, m.err
}

func (m *mockCatalogService) CreateBook(_ context.Context, book *model.Book) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.created = book
	return "book1", nil
}

func newHandler(svc *mockCatalogService) http.Handler {
	log := logger.New(logger.Config{Level: logger.ERROR})
	router := httprouter.New()
	NewCatalogHandler(svc, validator.NewBookValidator(log), log).RegisterRoutes(router)
	return middleware.CORS("*")(router)
}

func TestPublicClasses_Endpoint(t *testing.T) {
	svc := &mockCatalogService{
		classes: []map[string]any{
			{"id": "yoga1", "name": "Yoga", "time": "09:00", "capacity": 10, "enrolled": 3},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/publicClasses?limit=50&orderBy=time", nil)
	rec := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60, s-maxage=300" {
		t.Errorf("Cache-Control = %q", got)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["ok"] != true || body["count"] != float64(1) {
		t.Errorf("envelope = %v", body)
	}
}

func TestCountBooks_Endpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/countBooks", nil)
	rec := httptest.NewRecorder()
	newHandler(&mockCatalogService{count: 7}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"count":7}` {
		t.Errorf("body = %s", body)
	}
}

func TestAllBooks_Endpoint(t *testing.T) {
	svc := &mockCatalogService{books: []map[string]any{{"id": "b1", "title": "DUNE"}}}

	req := httptest.NewRequest(http.MethodGet, "/getAllBooks", nil)
	rec := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(rec, req)

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(items) != 1 || items[0]["id"] != "b1" {
		t.Errorf("items = %v", items)
	}
}

func TestCreateBook_Endpoint(t *testing.T) {
	svc := &mockCatalogService{}

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"dune","author":"frank herbert"}`))
	rec := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.created == nil || svc.created.Title != "dune" {
		t.Errorf("service received %+v", svc.created)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["ok"] != true || body["id"] != "book1" {
		t.Errorf("envelope = %v", body)
	}
}

// Store failures surface the repository's public message and status, never
// the driver error text.
func TestBooks_StoreFailures(t *testing.T) {
	cause := errors.New("connection reset by peer")

	tests := []struct {
		name     string
		path     string
		appErr   error
		wantBody string
	}{
		{"all books", "/getAllBooks", apperrors.Internal("Failed to fetch books", cause), `{"error":"Failed to fetch books"}`},
		{"count books", "/countBooks", apperrors.Internal("Error counting books", cause), `{"error":"Error counting books"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			newHandler(&mockCatalogService{err: tt.appErr}).ServeHTTP(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.wantBody {
				t.Errorf("body = %s, want %s", body, tt.wantBody)
			}
			if strings.Contains(rec.Body.String(), "connection reset") {
				t.Error("driver error leaked into the response")
			}
		})
	}
}

func TestPublicClasses_StoreFailure(t *testing.T) {
	svc := &mockCatalogService{err: apperrors.Internal("Failed to fetch classes", errors.New("cursor closed"))}

	req := httptest.NewRequest(http.MethodGet, "/publicClasses", nil)
	rec := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["ok"] != false || body["error"] != "Failed to fetch classes" {
		t.Errorf("envelope = %v", body)
	}
}

func TestCreateBook_ValidationFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"author":"anonymous"}`))
	rec := httptest.NewRecorder()
	newHandler(&mockCatalogService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["ok"] != false {
		t.Errorf("ok = %v", body["ok"])
	}
	fields := body["fields"].([]any)
	if len(fields) != 1 || fields[0].(map[string]any)["field"] != "Title" {
		t.Errorf("fields = %v", fields)
	}
}

func TestPublicClasses_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/publicClasses", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	newHandler(&mockCatalogService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
