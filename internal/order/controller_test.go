package order

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
)

func newTestOrderRouter(svc *Service) *chi.Mux {
	c := NewController(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/orders", c.HandleCreate)
	r.Put("/orders/{id}/status", c.HandleUpdateStatus)
	r.Post("/orders/{id}/archive", c.HandleArchive)
	r.Post("/payments/verify", c.HandleVerifyPayment)
	return r
}

func TestHandleUpdateStatus_BadValueIs400(t *testing.T) {
	svc := newTestService(&mockOrderRepository{}, &mockTableRepository{}, &mockMenuRepository{}, &mockGateway{}, &recordingPublisher{})
	router := newTestOrderRouter(svc)

	body := `{"status":"burnt"}`
	req := httptest.NewRequest(http.MethodPut, "/orders/"+primitive.NewObjectID().Hex()+"/status", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleArchive_RespondsOK(t *testing.T) {
	tableID := primitive.NewObjectID()
	orders := &mockOrderRepository{
		UpdateStatusFunc: func(ctx context.Context, id primitive.ObjectID, status string) (*domain.Order, error) {
			return &domain.Order{ID: id, TableID: tableID, Status: status}, nil
		},
	}
	tables := &mockTableRepository{
		FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*domain.Table, error) {
			return &domain.Table{ID: tableID}, nil
		},
	}
	menu := &mockMenuRepository{
		FindByIDsFunc: func(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
			return nil, nil
		},
	}
	svc := newTestService(orders, tables, menu, &mockGateway{}, &recordingPublisher{})
	router := newTestOrderRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/orders/"+primitive.NewObjectID().Hex()+"/archive", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp["ok"] {
		t.Errorf("expected {\"ok\":true}, got %s", rec.Body.String())
	}
}

func TestHandleVerifyPayment_MismatchShape(t *testing.T) {
	svc := newTestService(&mockOrderRepository{}, &mockTableRepository{}, &mockMenuRepository{}, &mockGateway{}, &recordingPublisher{})
	router := newTestOrderRouter(svc)

	body := `{"razorpay_order_id":"gw_1","razorpay_payment_id":"pay_1","razorpay_signature":"bad","orderId":"` + primitive.NewObjectID().Hex() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["success"] != false {
		t.Errorf("expected success false, got %v", resp)
	}
}
