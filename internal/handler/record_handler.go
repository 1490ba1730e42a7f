package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/service"
)

// RecordHandler serves the records of one vertical and accepts documents for
// the verticals that have an extraction phase.
type RecordHandler struct {
	tab      service.Tab
	maxBytes int64
	logger   *zap.Logger
}

// NewRecordHandler creates a RecordHandler for tab.
func NewRecordHandler(tab service.Tab, maxBytes int64, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		tab:      tab,
		maxBytes: maxBytes,
		logger:   logger.Named("handler." + string(tab.Vertical())),
	}
}

// List handles GET /api/v1/{vertical}
// @Summary List records
// @Description Records of a vertical held in memory, newest first
// @Tags records
// @Produce json
// @Param vertical path string true "Vertical" Enums(offres, entreprises, ecoles, conseils)
// @Success 200 {object} Response{data=[]domain.JobOffer}
// @Router /{vertical} [get]
func (h *RecordHandler) List(c *gin.Context) {
	RespondOK(c, h.tab.List())
}

// Get handles GET /api/v1/{vertical}/:id
// @Summary Get record
// @Tags records
// @Produce json
// @Param vertical path string true "Vertical" Enums(offres, entreprises, ecoles, conseils)
// @Param id path string true "Record ID"
// @Success 200 {object} Response{data=domain.JobOffer}
// @Failure 404 {object} ErrorResponseBody "Record not found"
// @Router /{vertical}/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.tab.Get(c.Param("id"))
	if err != nil {
		HandleError(c, h.logger, err, h.tab.Messages())
		return
	}
	RespondOK(c, record)
}

// Upload handles POST /api/v1/{vertical}/upload
// @Summary Process a document
// @Description Extract every record of an image, PDF or spreadsheet, enrich each one and save it.
// @Description The batch runs in the background (202) unless wait=true, in which case the new records are returned (201).
// @Tags records
// @Accept multipart/form-data
// @Produce json
// @Param vertical path string true "Vertical" Enums(offres, entreprises, ecoles)
// @Param file formData file true "Source document (PDF, JPG, PNG, WEBP, GIF, XLSX, XLS)"
// @Param model formData string false "Generation backend" Enums(gemini, deepseek)
// @Param wait query bool false "Block until the batch is done"
// @Success 201 {object} Response{data=[]domain.JobOffer} "Batch completed"
// @Success 202 {object} Response{data=service.LaneState} "Batch started"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 409 {object} ErrorResponseBody "A batch is already running"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "No record found in the document"
// @Failure 502 {object} ErrorResponseBody "Model error"
// @Failure 503 {object} ErrorResponseBody "API key not configured"
// @Router /{vertical}/upload [post]
func (h *RecordHandler) Upload(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "Le champ file est obligatoire.")
		return
	}
	defer func() { _ = file.Close() }()

	model, err := domain.ParseModel(c.PostForm("model"))
	if err != nil {
		HandleError(c, h.logger, err, h.tab.Messages())
		return
	}

	doc, err := ReadUpload(file, header, h.maxBytes)
	if err != nil {
		HandleError(c, h.logger, err, h.tab.Messages())
		return
	}

	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		batch, err := h.tab.Process(c.Request.Context(), doc, model)
		if err != nil {
			HandleError(c, h.logger, err, h.tab.Messages())
			return
		}
		RespondCreated(c, batch)
		return
	}

	if err := h.tab.StartDocument(c.Request.Context(), doc, model); err != nil {
		HandleError(c, h.logger, err, h.tab.Messages())
		return
	}
	RespondAccepted(c, h.tab.State())
}
