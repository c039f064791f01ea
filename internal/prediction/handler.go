// AngelaMos | 2026
// handler.go

package prediction

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/middleware"
	"github.com/carterperez-dev/glowguard-api/internal/upload"
)

// multipartOverhead covers boundaries and part headers on top of the file.
const multipartOverhead = 1 << 20

type Handler struct {
	service   *Service
	maxBytes  int64
	maxPixels int64
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		maxBytes:  service.store.MaxBytes(),
		maxPixels: service.store.MaxPixels(),
	}
}

// RegisterRoutes mounts the prediction routes. analyzeLimit wraps only the
// analyze endpoint; pass nil to leave it unlimited.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth func(http.Handler) http.Handler,
	analyzeLimit func(http.Handler) http.Handler,
) {
	r.Route("/predictions", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			if analyzeLimit != nil {
				r.Use(analyzeLimit)
			}
			r.Post("/analyze", h.Analyze)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/history/{userID}", h.History)
			r.Get("/{predictionID}", h.Get)
		})
	})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.service.metrics.RecordUploadRejection("size")
			core.JSONError(w, fileTooLargeError(h.maxBytes))
			return
		}
		core.BadRequest(w, "multipart field \"file\" is required")
		return
	}
	defer file.Close() //nolint:errcheck // read-only multipart file

	resp, err := h.service.Analyze(
		r.Context(),
		middleware.GetUserID(r.Context()),
		header.Filename,
		file,
	)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) writeAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrUnsupportedExtension):
		core.JSONError(w, core.NewAppError(
			err,
			"unsupported file type; allowed: jpg, jpeg, png, gif, webp",
			http.StatusUnsupportedMediaType,
			"UNSUPPORTED_MEDIA_TYPE",
		))
	case errors.Is(err, upload.ErrFileTooLarge):
		core.JSONError(w, fileTooLargeError(h.maxBytes))
	case errors.Is(err, upload.ErrImageTooLarge):
		core.JSONError(w, core.NewAppError(
			err,
			"image exceeds the maximum of "+strconv.FormatInt(h.maxPixels, 10)+" pixels",
			http.StatusRequestEntityTooLarge,
			"IMAGE_TOO_LARGE",
		))
	case errors.Is(err, upload.ErrCorruptImage),
		errors.Is(err, upload.ErrEmptyFile):
		core.JSONError(w, core.NewAppError(
			err,
			"invalid image file",
			http.StatusBadRequest,
			"INVALID_IMAGE",
		))
	case errors.Is(err, classifier.ErrModelNotLoaded):
		core.JSONError(w, ModelUnavailableError())
	default:
		core.InternalServerError(w, err)
	}
}

func fileTooLargeError(maxBytes int64) *core.AppError {
	return core.NewAppError(
		upload.ErrFileTooLarge,
		"file exceeds the maximum size of "+strconv.FormatInt(maxBytes, 10)+" bytes",
		http.StatusRequestEntityTooLarge,
		"FILE_TOO_LARGE",
	)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}
	params.Normalize()

	items, total, err := h.service.History(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "userID"),
		params,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "not authorized to view this history")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, items, params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Detail(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "predictionID"),
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "not authorized to view this prediction")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
