// Package handler exposes the KYC pipeline over HTTP. It owns multipart
// parsing and response shaping only; everything else lives in the service.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kyc-gateway/internal/kyc"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// DefaultMaxUploadBytes bounds each uploaded part when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Service runs one verification over a document/selfie pair.
type Service interface {
	Analyze(ctx context.Context, idDocument, selfie []byte) (*kyc.Result, error)
}

// Handler handles KYC analysis endpoints.
type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxUploadBytes caps the size of each uploaded file part.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// New creates a KYC Handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:        service,
		logger:         logger,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the analysis routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/kyc/analyze", h.handleAnalyze)
}

// handleAnalyze accepts a multipart form with an "id_document" part and a
// "selfie" part and returns the public decision.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	// One form, two parts, both bounded. ParseMultipartForm spills anything
	// over the threshold to disk, so read limits apply per part below.
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.WarnContext(ctx, "invalid multipart form",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected multipart form with id_document and selfie"))
		return
	}

	idDocument, err := h.readPart(r, "id_document")
	if err != nil {
		h.writePartError(ctx, w, requestID, "id_document", err)
		return
	}
	selfie, err := h.readPart(r, "selfie")
	if err != nil {
		h.writePartError(ctx, w, requestID, "selfie", err)
		return
	}

	result, err := h.service.Analyze(ctx, idDocument, selfie)
	if err != nil {
		de := dErrors.From(err)
		if de.Code == dErrors.CodeInternal || de.Code == dErrors.CodeUpstream {
			h.logger.ErrorContext(ctx, "analysis failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AnalyzeResponse{
		RequestID: result.RequestID,
		Decision:  publicDecision(result.Decision),
	})
}

var errPartTooLarge = errors.New("uploaded part exceeds size limit")

// readPart returns the named file part's bytes. A missing part is reported
// like an empty one: the caller cannot be verified either way.
func (h *Handler) readPart(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, errPartTooLarge
	}
	return data, nil
}

func (h *Handler) writePartError(ctx context.Context, w http.ResponseWriter, requestID, part string, err error) {
	h.logger.WarnContext(ctx, "unreadable upload part",
		"request_id", requestID,
		"part", part,
		"error", err.Error(),
	)
	if errors.Is(err, errPartTooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "uploaded file too large"))
		return
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "could not read "+part))
}
