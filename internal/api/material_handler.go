package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sagelearning/sage-api/internal/api/shared"
	"github.com/sagelearning/sage-api/internal/platform/logger"
	"github.com/sagelearning/sage-api/internal/service/study"
)

// maxUploadBytes bounds document and audio uploads.
const maxUploadBytes = 32 << 20 // 32 MiB

// MaterialHandler handles material ingestion HTTP requests.
type MaterialHandler struct {
	studyService study.Service
	logger       *slog.Logger
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(studyService study.Service, logger *slog.Logger) *MaterialHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MaterialHandler")
	}

	return &MaterialHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "material_handler")),
	}
}

// IngestText handles POST /materials/text requests.
func (h *MaterialHandler) IngestText(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req IngestTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	material, err := h.studyService.IngestText(r.Context(), userID, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, materialToResponse(material))
}

// UploadDocument handles POST /materials/upload requests: a multipart
// form with a single "file" field.
func (h *MaterialHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, mediaType, ok := h.readUpload(w, r, "file")
	if !ok {
		return
	}

	material, err := h.studyService.IngestFile(r.Context(), userID, data, mediaType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, materialToResponse(material))
}

// TranscribeAudio handles POST /materials/transcribe requests: a
// multipart form with a single "file" field holding an audio recording.
func (h *MaterialHandler) TranscribeAudio(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, mediaType, ok := h.readUpload(w, r, "file")
	if !ok {
		return
	}

	material, err := h.studyService.Transcribe(r.Context(), userID, data, mediaType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, materialToResponse(material))
}

// GetMaterial handles GET /materials/{id} requests.
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	materialID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	material, err := h.studyService.GetMaterial(r.Context(), userID, materialID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, materialToResponse(material))
}

// readUpload pulls a bounded multipart file field out of the request,
// returning its bytes and declared content type. Writes an error
// response and reports failure when the form is unusable.
func (h *MaterialHandler) readUpload(
	w http.ResponseWriter,
	r *http.Request,
	field string,
) ([]byte, string, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or oversized upload")
		return nil, "", false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+field+" field")
		return nil, "", false
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn("failed to close upload", slog.String("error", err.Error()))
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read upload")
		return nil, "", false
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	return data, mediaType, true
}
