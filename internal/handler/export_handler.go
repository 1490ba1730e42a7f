package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seogen/internal/csvexport"
	"seogen/internal/service"
	"seogen/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves a vertical's records as CSV or XLSX downloads.
type ExportHandler struct {
	tab    service.Tab
	logger *zap.Logger
	now    func() time.Time
}

// NewExportHandler creates an ExportHandler for tab.
func NewExportHandler(tab service.Tab, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		tab:    tab,
		logger: logger.Named("handler.export." + string(tab.Vertical())),
		now:    time.Now,
	}
}

// CSV handles GET /api/v1/{vertical}/export.csv
// @Summary Export records as CSV
// @Description Semicolon-separated UTF-8 CSV with BOM, newest record first
// @Tags exports
// @Produce text/csv
// @Param vertical path string true "Vertical" Enums(offres, entreprises, ecoles, conseils)
// @Success 200 {file} file "CSV file"
// @Router /{vertical}/export.csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	header, rows := h.tab.Table()

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, header, rows); err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Échec de l'export CSV.")
		return
	}

	filename := csvexport.BuildFilename(string(h.tab.Vertical()), "csv", h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// XLSX handles GET /api/v1/{vertical}/export.xlsx
// @Summary Export records as XLSX
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param vertical path string true "Vertical" Enums(offres, entreprises, ecoles, conseils)
// @Success 200 {file} file "Excel workbook"
// @Router /{vertical}/export.xlsx [get]
func (h *ExportHandler) XLSX(c *gin.Context) {
	header, rows := h.tab.Table()

	data, err := xlsxexport.Build(string(h.tab.Vertical()), header, rows)
	if err != nil {
		h.logger.Error("xlsx export failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Échec de l'export Excel.")
		return
	}

	filename := csvexport.BuildFilename(string(h.tab.Vertical()), "xlsx", h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
