package table

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"tableside/internal/domain"
	"tableside/internal/dto"
	apperrors "tableside/internal/errors"
)

type Repository interface {
	Insert(ctx context.Context, table domain.Table) (*domain.Table, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Table, error)
	FindAll(ctx context.Context) ([]domain.Table, error)
}

type Controller struct {
	repo   Repository
	qr     *QRService
	logger *zap.Logger
}

func NewController(repo Repository, qr *QRService, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, qr: qr, logger: logger}
}

// HandleCreate provisions a table with a fresh opaque token. The token
// never changes afterwards.
func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "request body must be valid JSON"})
		return
	}

	if req.Number <= 0 {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "number must be a positive integer"})
		return
	}

	table := domain.Table{
		Number:   req.Number,
		Token:    uuid.NewString(),
		IsActive: true,
	}

	created, err := c.repo.Insert(r.Context(), table)
	if err != nil {
		c.logger.Error("creating table failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create table"})
		return
	}

	c.writeJSON(w, http.StatusCreated, toDTO(*created))
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	tables, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.logger.Error("listing tables failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch tables"})
		return
	}

	out := make([]dto.TableDTO, 0, len(tables))
	for _, t := range tables {
		out = append(out, toDTO(t))
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *Controller) HandleQR(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "id must be a valid object id"})
		return
	}

	table, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
			return
		}
		c.logger.Error("fetching table failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch table"})
		return
	}

	dataURL, err := c.qr.DataURL(table.Token)
	if err != nil {
		c.logger.Error("generating qr code failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate QR code"})
		return
	}

	c.writeJSON(w, http.StatusOK, dto.TableQRResponse{
		DataURL: dataURL,
		URL:     c.qr.OrderingURL(table.Token),
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func toDTO(t domain.Table) dto.TableDTO {
	return dto.TableDTO{
		ID:        t.ID.Hex(),
		Number:    t.Number,
		Token:     t.Token,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}
