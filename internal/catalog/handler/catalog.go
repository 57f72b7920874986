package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gymbook/internal/catalog/service"
	"gymbook/internal/catalog/validator"
	apperrors "gymbook/pkg/errors"
	httputil "gymbook/pkg/http"
	"gymbook/pkg/logger"
	"gymbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// cacheControl marks the public class listing as cacheable by browsers and
// shared caches; the data changes slowly and staleness is harmless.
const cacheControl = "public, max-age=60, s-maxage=300"

type CatalogHandler struct {
	service   service.CatalogService
	validator *validator.BookValidator
	log       *logger.Logger
}

func NewCatalogHandler(svc service.CatalogService, v *validator.BookValidator, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, validator: v, log: log}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/publicClasses", h.PublicClasses)
	router.GET("/getAllBooks", h.AllBooks)
	router.GET("/countBooks", h.CountBooks)
	router.POST("/books", h.CreateBook)
}

func (h *CatalogHandler) PublicClasses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	var limit int64
	if raw := query.Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	data, err := h.service.PublicClasses(r.Context(), limit, query.Get("orderBy"))
	if err != nil {
		h.log.Error("publicClasses failed", "error", err)
		appErr := apperrors.AsAppError(err)
		h.writeJSON(w, appErr.StatusCode(), map[string]any{
			"ok":    false,
			"error": appErr.Message,
		})
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"count": len(data),
		"data":  data,
	})
}

func (h *CatalogHandler) AllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := h.service.AllBooks(r.Context())
	if err != nil {
		h.log.Error("Failed to fetch books", "error", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) CountBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.service.CountBooks(r.Context())
	if err != nil {
		h.log.Error("Error counting books", "error", err)
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var book model.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "Invalid request body"})
		return
	}
	book.ID = ""

	if err := h.validator.Validate(&book); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.writeJSON(w, http.StatusBadRequest, map[string]any{
				"ok":     false,
				"error":  "Validation failed",
				"fields": validationErrs,
			})
			return
		}
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	id, err := h.service.CreateBook(r.Context(), &book)
	if err != nil {
		h.log.Error("Failed to create book", "error", err)
		appErr := apperrors.AsAppError(err)
		h.writeJSON(w, appErr.StatusCode(), map[string]any{"ok": false, "error": appErr.Message})
		return
	}

	if err := httputil.WriteCreated(w, map[string]any{"id": id}); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "error", err)
	}
}

// writeError lets the AppError pick its own status and public message.
func (h *CatalogHandler) writeError(w http.ResponseWriter, err error) {
	if werr := httputil.WriteError(w, err); werr != nil {
		h.log.Error("failed to write JSON response", "error", werr)
	}
}
