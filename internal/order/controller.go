package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableside/internal/dto"
	apperrors "tableside/internal/errors"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resolved, err := c.service.Create(r.Context(), req)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, resolved)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	includeServed := r.URL.Query().Get("includeServed") == "true"

	orders, err := c.service.List(r.Context(), includeServed)
	if err != nil {
		c.handleServiceError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, orders)
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resolved, err := c.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		c.handleServiceError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resolved)
}

func (c *Controller) HandleArchive(w http.ResponseWriter, r *http.Request) {
	_, err := c.service.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.handleServiceError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (c *Controller) HandlePay(w http.ResponseWriter, r *http.Request) {
	resp, err := c.service.InitiatePayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if _, ok := apperrors.IsUpstreamError(err); ok {
			c.logger.Error("payment initiation failed", zap.Error(err))
			c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create payment"})
			return
		}
		c.handleServiceError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, dto.VerifyPaymentResponse{Success: false, Message: "request body must be valid JSON"})
		return
	}

	_, err := c.service.VerifyPayment(r.Context(), req)
	if err != nil {
		if _, ok := apperrors.IsValidationError(err); ok {
			c.writeJSON(w, http.StatusBadRequest, dto.VerifyPaymentResponse{Success: false, Message: "Invalid signature"})
			return
		}
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, dto.VerifyPaymentResponse{Success: false, Message: "Order not found"})
			return
		}
		c.logger.Error("payment verification failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, dto.VerifyPaymentResponse{Success: false})
		return
	}

	c.writeJSON(w, http.StatusOK, dto.VerifyPaymentResponse{Success: true})
}

func (c *Controller) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		return
	}
	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "an unexpected error occurred"})
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
