package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"tableside/internal/domain"
	apperrors "tableside/internal/errors"
)

type mockRepository struct {
	InsertFunc        func(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	FindByIDFunc      func(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	FindAvailableFunc func(ctx context.Context) ([]domain.MenuItem, error)
	FindAllFunc       func(ctx context.Context) ([]domain.MenuItem, error)
	UpdateFunc        func(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	DeleteFunc        func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockRepository) Insert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	return m.InsertFunc(ctx, item)
}

func (m *mockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) FindAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	return m.FindAvailableFunc(ctx)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	return m.UpdateFunc(ctx, item)
}

func (m *mockRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFunc(ctx, id)
}

func newTestRouter(repo Repository) *chi.Mux {
	c := NewController(repo, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/menu", c.HandleList)
	r.Post("/menu", c.HandleCreate)
	r.Put("/menu/{id}", c.HandleUpdate)
	r.Delete("/menu/{id}", c.HandleDelete)
	return r
}

func TestHandleCreate_RejectsBadCategory(t *testing.T) {
	inserts := 0
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
			inserts++
			return &item, nil
		},
	}
	router := newTestRouter(repo)

	body := `{"name":"Mystery Dish","category":"Snacks","price":50}`
	req := httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if inserts != 0 {
		t.Errorf("expected no insert on validation failure, got %d", inserts)
	}
}

func TestHandleCreate_DefaultsAvailabilityAndPrepTime(t *testing.T) {
	var inserted domain.MenuItem
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
			inserted = item
			item.ID = primitive.NewObjectID()
			return &item, nil
		},
	}
	router := newTestRouter(repo)

	body := `{"name":"Tomato Soup","category":"Starters","price":120}`
	req := httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !inserted.IsAvailable {
		t.Error("expected item available by default")
	}
	if inserted.PrepMinutes != domain.DefaultPrepMinutes {
		t.Errorf("expected default prep time, got %d", inserted.PrepMinutes)
	}
}

func TestHandleUpdate_MergesOnlySuppliedFields(t *testing.T) {
	id := primitive.NewObjectID()
	stored := domain.MenuItem{
		ID:          id,
		Name:        "Tomato Soup",
		Description: "Classic soup",
		Category:    domain.CategoryStarters,
		Price:       120,
		IsAvailable: true,
		PrepMinutes: 15,
	}

	var updated domain.MenuItem
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, got primitive.ObjectID) (*domain.MenuItem, error) {
			item := stored
			return &item, nil
		},
		UpdateFunc: func(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
			updated = item
			return &item, nil
		},
	}
	router := newTestRouter(repo)

	body := `{"price":140,"isAvailable":false}`
	req := httptest.NewRequest(http.MethodPut, "/menu/"+id.Hex(), strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if updated.Price != 140 || updated.IsAvailable {
		t.Errorf("expected price/availability updated, got %+v", updated)
	}
	if updated.Name != stored.Name || updated.Description != stored.Description {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id primitive.ObjectID) error {
			return apperrors.NewNotFoundError("menu item not found")
		},
	}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/menu/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleList_ServesAvailableOnly(t *testing.T) {
	repo := &mockRepository{
		FindAvailableFunc: func(ctx context.Context) ([]domain.MenuItem, error) {
			return []domain.MenuItem{
				{ID: primitive.NewObjectID(), Name: "Tomato Soup", IsAvailable: true},
			}, nil
		},
	}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(items) != 1 || items[0]["name"] != "Tomato Soup" {
		t.Errorf("unexpected response %v", items)
	}
}
