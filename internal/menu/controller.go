package menu

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"tableside/internal/domain"
	"tableside/internal/dto"
	apperrors "tableside/internal/errors"
)

type Repository interface {
	Insert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	FindAvailable(ctx context.Context) ([]domain.MenuItem, error)
	FindAll(ctx context.Context) ([]domain.MenuItem, error)
	Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

// HandleList serves the public menu: available items only.
func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := c.repo.FindAvailable(r.Context())
	if err != nil {
		c.logger.Error("listing menu failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error fetching menu items"})
		return
	}
	c.writeJSON(w, http.StatusOK, toDTOs(items))
}

// HandleListAll serves every item, including unavailable ones, for
// staff tooling.
func (c *Controller) HandleListAll(w http.ResponseWriter, r *http.Request) {
	items, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.logger.Error("listing all menu items failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error fetching menu items"})
		return
	}
	c.writeJSON(w, http.StatusOK, toDTOs(items))
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	item := domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		PrepMinutes: req.PrepMinutes,
	}
	if item.PrepMinutes <= 0 {
		item.PrepMinutes = domain.DefaultPrepMinutes
	}

	created, err := c.repo.Insert(r.Context(), item)
	if err != nil {
		c.logger.Error("creating menu item failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error creating menu item"})
		return
	}

	c.writeJSON(w, http.StatusCreated, toDTO(*created))
}

// HandleUpdate merges the supplied fields into the stored item;
// omitted fields keep their stored value.
func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		c.writeValidationError(w, "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a valid object id",
		})
		return
	}

	var req dto.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		c.handleRepoError(w, err, "Error updating menu item")
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if req.Category != "" {
		if !domain.IsValidCategory(req.Category) {
			c.writeValidationError(w, "invalid category", apperrors.ValidationDetail{
				Field:   "category",
				Message: "category must be one of Starters, Main Course, Drinks, Desserts",
			})
			return
		}
		item.Category = req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.writeValidationError(w, "invalid price", apperrors.ValidationDetail{
				Field:   "price",
				Message: "price must be non-negative",
			})
			return
		}
		item.Price = *req.Price
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.PrepMinutes != nil && *req.PrepMinutes > 0 {
		item.PrepMinutes = *req.PrepMinutes
	}

	updated, err := c.repo.Update(r.Context(), *item)
	if err != nil {
		c.handleRepoError(w, err, "Error updating menu item")
		return
	}

	c.writeJSON(w, http.StatusOK, toDTO(*updated))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		c.writeValidationError(w, "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a valid object id",
		})
		return
	}

	if err := c.repo.Delete(r.Context(), id); err != nil {
		c.handleRepoError(w, err, "Error deleting menu item")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
}

func (c *Controller) validateCreateRequest(req dto.CreateMenuItemRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !domain.IsValidCategory(req.Category) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "category",
			Message: "category must be one of Starters, Main Course, Drinks, Desserts",
		})
	}

	if req.Price < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *Controller) handleRepoError(w http.ResponseWriter, err error, fallback string) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Menu item not found"})
		return
	}
	c.logger.Error("menu repository error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": fallback})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func toDTO(item domain.MenuItem) dto.MenuItemDTO {
	return dto.MenuItemDTO{
		ID:          item.ID.Hex(),
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		Price:       item.Price,
		IsAvailable: item.IsAvailable,
		PrepMinutes: item.PrepMinutes,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toDTOs(items []domain.MenuItem) []dto.MenuItemDTO {
	out := make([]dto.MenuItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toDTO(item))
	}
	return out
}
