package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gymbook/internal/identity"
	ledgererrors "gymbook/internal/ledger/errors"
	"gymbook/internal/ledger/service"
	httputil "gymbook/pkg/http"
	"gymbook/pkg/logger"
	"gymbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Stable user-facing messages for the ledger's expected failures. Nothing
// else from inside a transaction reaches a client verbatim.
const (
	msgMissingInput  = "Missing userId or classId"
	msgClassNotFound = "Class not found"
	msgClassFull     = "Class is full"
	msgAlreadyBooked = "Already booked"
	msgNotBooked     = "Not booked"
	msgInvalidToken  = "Invalid idToken"
	msgBookingFailed = "Booking operation failed"
)

type LedgerHandler struct {
	service service.LedgerService
	log     *logger.Logger
}

func NewLedgerHandler(service service.LedgerService, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, log: log}
}

func (h *LedgerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookClass", h.Book)
	router.POST("/cancelClass", h.Cancel)
	router.POST("/sendClassReminder", h.Remind)
}

type bookingRequest struct {
	UserID  string `json:"userId,omitempty"`
	ClassID string `json:"classId"`
	IDToken string `json:"idToken,omitempty"`
}

type bookResponse struct {
	OK        bool                `json:"ok"`
	BookingID string              `json:"bookingId"`
	Class     model.ClassSnapshot `json:"class"`
	User      model.UserSnapshot  `json:"user"`
}

type cancelResponse struct {
	OK        bool                `json:"ok"`
	BookingID string              `json:"bookingId"`
	Class     model.ClassSnapshot `json:"class"`
	User      struct {
		ID string `json:"id"`
	} `json:"user"`
}

type failureResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (h *LedgerHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, msgMissingInput)
		return
	}

	result, err := h.service.Reserve(r.Context(), req.UserID, req.ClassID, req.IDToken)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, bookResponse{
		OK:        true,
		BookingID: result.BookingID,
		Class:     result.Class,
		User:      result.User,
	})
}

func (h *LedgerHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, msgMissingInput)
		return
	}

	result, err := h.service.Cancel(r.Context(), req.UserID, req.ClassID, req.IDToken)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}

	resp := cancelResponse{
		OK:        true,
		BookingID: result.BookingID,
		Class:     result.Class,
	}
	resp.User.ID = result.User.ID
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *LedgerHandler) Remind(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ClassID == "" {
		h.writeFailure(w, http.StatusBadRequest, "classId is required")
		return
	}

	result, err := h.service.Remind(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ledgererrors.ErrClassNotFound):
			h.writeFailure(w, http.StatusNotFound, msgClassNotFound)
		case errors.Is(err, service.ErrNotConfigured):
			h.writeFailure(w, http.StatusInternalServerError, "Notifications not configured")
		default:
			h.log.Error("Reminder failed", "class_id", req.ClassID, "error", err)
			h.writeFailure(w, http.StatusInternalServerError, "sendClassReminder failed")
		}
		return
	}

	body := map[string]any{
		"class":      result.Class,
		"recipients": result.Recipients,
	}
	if result.DryRun {
		body["dryRun"] = true
		body["count"] = len(result.Recipients)
	} else {
		body["sent"] = result.Sent
		if result.Bcc != "" {
			body["bcc"] = result.Bcc
		}
	}
	if err := httputil.WriteSuccess(w, body); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}

// writeLedgerError maps every expected failure to its fixed message with a
// client-error status. Anything unexpected gets a generic message; the raw
// detail only goes to the log.
func (h *LedgerHandler) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	var msg string
	switch {
	case errors.Is(err, ledgererrors.ErrMissingInput):
		msg = msgMissingInput
	case errors.Is(err, ledgererrors.ErrClassNotFound):
		msg = msgClassNotFound
	case errors.Is(err, ledgererrors.ErrClassFull):
		msg = msgClassFull
	case errors.Is(err, ledgererrors.ErrAlreadyBooked):
		msg = msgAlreadyBooked
	case errors.Is(err, ledgererrors.ErrNotBooked):
		msg = msgNotBooked
	case errors.Is(err, identity.ErrInvalidToken),
		errors.Is(err, identity.ErrNoSubject),
		errors.Is(err, identity.ErrNoSigningKey):
		msg = msgInvalidToken
	default:
		h.log.Error("Ledger operation failed",
			"path", r.URL.Path,
			"error", err,
		)
		msg = msgBookingFailed
	}

	h.writeFailure(w, http.StatusBadRequest, msg)
}

func (h *LedgerHandler) writeFailure(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, failureResponse{OK: false, Error: msg})
}

func (h *LedgerHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}
