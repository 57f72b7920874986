package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	feedbackerrors "gymbook/internal/feedback/errors"
	"gymbook/internal/feedback/service"
	"gymbook/internal/feedback/validator"
	apperrors "gymbook/pkg/errors"
	httputil "gymbook/pkg/http"
	"gymbook/pkg/logger"
	"gymbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type FeedbackHandler struct {
	service   service.FeedbackService
	validator *validator.FeedbackValidator
	log       *logger.Logger
}

func NewFeedbackHandler(svc service.FeedbackService, v *validator.FeedbackValidator, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{service: svc, validator: v, log: log}
}

func (h *FeedbackHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/sendFeedbackEmail", h.Submit)
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserAgent = r.UserAgent()
	req.ClientIP = middleware.ClientIPExtractor(r)

	if err := h.validator.Validate(&req); err != nil {
		switch {
		case errors.Is(err, feedbackerrors.ErrInvalidName):
			h.writeFailure(w, http.StatusBadRequest, "Invalid name")
		case errors.Is(err, feedbackerrors.ErrInvalidEmail):
			h.writeFailure(w, http.StatusBadRequest, "Invalid email")
		default:
			h.writeFailure(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, feedbackerrors.ErrAttachmentTooBig),
			errors.Is(err, feedbackerrors.ErrTotalTooBig):
			h.writeFailure(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotConfigured):
			h.writeFailure(w, http.StatusInternalServerError, "Notifications not configured")
		case apperrors.IsAppError(err):
			h.log.Error("sendFeedbackEmail failed", "error", err)
			appErr := apperrors.AsAppError(err)
			h.writeFailure(w, appErr.StatusCode(), appErr.Message)
		default:
			h.log.Error("sendFeedbackEmail failed", "error", err)
			h.writeFailure(w, http.StatusInternalServerError, "Email sending failed")
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"sent": result}); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}

func (h *FeedbackHandler) writeFailure(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

func (h *FeedbackHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}
