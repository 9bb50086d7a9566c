package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"storefront-api/internal/catalog"
	"storefront-api/internal/models"
	"storefront-api/internal/storefront"
	"storefront-api/internal/telemetry"
)

// maxUploadSize bounds every request body, including multipart item submissions
const maxUploadSize = 10 << 20

// CatalogHandler handles browsing and seller submissions
type CatalogHandler struct {
	session   *storefront.Session
	telemetry *telemetry.StorefrontTelemetry
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(session *storefront.Session, st *telemetry.StorefrontTelemetry) *CatalogHandler {
	return &CatalogHandler{session: session, telemetry: st}
}

// Browse handles GET /v1/catalog - q and category update the filter inputs when present
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("category") {
		selector, err := catalog.ParseSelector(query.Get("category"))
		if err != nil {
			slog.Warn("Browse rejected, unknown category", "category", query.Get("category"))
			writeDomainError(w, err)
			return
		}
		h.session.SetCategory(selector)
	}
	if query.Has("q") {
		h.session.SetQuery(query.Get("q"))
	}

	writeJSONResponse(w, http.StatusOK, h.session.Browse())
}

// Reset handles POST /v1/catalog/reset - "View All"
func (h *CatalogHandler) Reset(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.session.ResetFilters())
}

// GetItem handles GET /v1/catalog/{itemId}
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := h.session.Item(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, models.NewItemResponse(item))
}

// SubmitItem handles POST /v1/catalog/items with a JSON body or a multipart
// form carrying the picture as the "image" file
func (h *CatalogHandler) SubmitItem(w http.ResponseWriter, r *http.Request) {
	var (
		sub catalog.Submission
		err error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		sub, err = submissionFromForm(w, r)
		if err != nil {
			if errors.Is(err, catalog.ErrEmptyImage) {
				writeDomainError(w, err)
				return
			}
			slog.Warn("Invalid multipart submission", "error", err, "remote_addr", r.RemoteAddr)
			writeErrorResponse(w, http.StatusBadRequest, models.CodeBadRequest, "Invalid multipart form", nil)
			return
		}
	} else if !decodeJSON(w, r, &sub) {
		return
	}

	item, err := h.session.SubmitItem(sub)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.telemetry.RecordItemSubmitted(r.Context(), string(item.Category))
	writeJSONResponse(w, http.StatusCreated, models.NewItemResponse(item))
}

func submissionFromForm(w http.ResponseWriter, r *http.Request) (catalog.Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return catalog.Submission{}, err
	}

	sub := catalog.Submission{
		Title:       r.FormValue("title"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Image:       strings.TrimSpace(r.FormValue("image")),
	}

	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return sub, nil
	}
	if err != nil {
		return catalog.Submission{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return catalog.Submission{}, err
	}

	sub.Image, err = catalog.EncodeImage(data)
	if err != nil {
		return catalog.Submission{}, err
	}
	return sub, nil
}
