package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"markitdown/internal/config"
	"markitdown/internal/domain"
	"markitdown/internal/httputil"
	"markitdown/internal/middleware"
	"markitdown/internal/service"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ServiceName identifies this service in health responses.
const ServiceName = "markitdown-service"

// Conversion handles conversion HTTP requests
type Conversion struct {
	service *service.Conversion
	logger  *slog.Logger
}

// NewConversion creates a new conversion handler
func NewConversion(svc *service.Conversion, logger *slog.Logger) *Conversion {
	return &Conversion{
		service: svc,
		logger:  logger,
	}
}

// healthResponse is the fixed /health payload
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// convertFileResponse is the success payload for POST /convert
type convertFileResponse struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename"`
	Markdown     string `json:"markdown"`
	OriginalSize int64  `json:"original_size"`
	MarkdownSize int    `json:"markdown_size"`
}

// convertURLRequest is the body for POST /convert-url
type convertURLRequest struct {
	URL string `json:"url"`
}

// Validate implements request validation
func (r convertURLRequest) Validate() error {
	// Required only: malformed URLs must reach the converter and surface
	// as conversion failures, not input errors.
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required),
	)
}

// convertURLResponse is the success payload for POST /convert-url
type convertURLResponse struct {
	Success      bool   `json:"success"`
	URL          string `json:"url"`
	Markdown     string `json:"markdown"`
	MarkdownSize int    `json:"markdown_size"`
}

// HealthCheck reports service liveness
// GET /health
func (h *Conversion) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: ServiceName,
	})
}

// ConvertFile converts an uploaded file to markdown
// POST /convert
//
// Expects multipart form data with a required "file" part and an optional
// "filename" field that overrides the uploaded file's reported name.
func (h *Conversion) ConvertFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MultipartMemoryBytes); err != nil {
		if httputil.IsTooLarge(err) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.handleError(w, r, &domain.ValidationError{Message: "No file provided"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file part with an empty filename parses as a plain form
		// value, so it lands in Value rather than File.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			h.handleError(w, r, &domain.ValidationError{Message: "No file selected"})
			return
		}
		h.handleError(w, r, &domain.ValidationError{Message: "No file provided"})
		return
	}
	defer file.Close()

	// Optional override of the uploaded file's reported name
	filename := r.FormValue("filename")
	if filename == "" {
		filename = header.Filename
	}

	result, err := h.service.ConvertFile(r.Context(), file, filename)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, convertFileResponse{
		Success:      true,
		Filename:     result.Filename,
		Markdown:     result.Markdown,
		OriginalSize: result.OriginalSize,
		MarkdownSize: result.MarkdownSize,
	})
}

// ConvertURL converts the document behind a URL to markdown
// POST /convert-url
func (h *Conversion) ConvertURL(w http.ResponseWriter, r *http.Request) {
	var req convertURLRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		if httputil.IsTooLarge(err) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.handleError(w, r, &domain.ValidationError{Message: "No URL provided"})
		return
	}

	if err := req.Validate(); err != nil {
		h.handleError(w, r, &domain.ValidationError{Message: "No URL provided"})
		return
	}

	result, err := h.service.ConvertURL(r.Context(), req.URL)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, convertURLResponse{
		Success:      true,
		URL:          result.URL,
		Markdown:     result.Markdown,
		MarkdownSize: result.MarkdownSize,
	})
}

// NotFound is the fallback for undefined routes
func (h *Conversion) NotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, http.StatusNotFound, "Endpoint not found")
}

// handleError converts domain errors to HTTP responses. Client errors keep
// the {"error": ...} shape; conversion failures are logged in full and
// reported as {"success": false, "error": ...}.
func (h *Conversion) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() < http.StatusInternalServerError {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	h.logger.Error("conversion failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r),
		"error", err,
	)
	httputil.RespondFailure(w, http.StatusInternalServerError, err.Error())
}
