package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"fmgimport/internal/domain"
	"fmgimport/internal/service"
)

// ExportHandler handles entity table export endpoints.
type ExportHandler struct {
	exportService service.ExportService
	sourceService service.MapSourceService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService, sourceService service.MapSourceService) *ExportHandler {
	return &ExportHandler{exportService: exportService, sourceService: sourceService}
}

// Create handles POST /api/v1/exports
// @Summary Export entity tables of a map
// @Description Render the cultures, countries, provinces, burgs, religions and rivers of a map export as CSV or XLSX.
// @Description Without publish the file is returned as an attachment; with publish it is uploaded and a download URL returned.
// @Tags exports
// @Accept multipart/form-data
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,json
// @Param map formData file true "Map export (.map)"
// @Param format query string false "Export format (csv or xlsx)" default(csv)
// @Param publish query bool false "Upload the file and return a presigned URL"
// @Success 200 {file} binary "Export file"
// @Success 201 {object} Response{data=service.ExportResult} "Export published"
// @Failure 400 {object} ErrorResponseBody "Missing map file or unsupported format"
// @Failure 413 {object} ErrorResponseBody "Map file too large"
// @Failure 422 {object} ErrorResponseBody "Map file lacks a required record batch"
// @Failure 503 {object} ErrorResponseBody "Object storage not configured"
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	file, header, err := c.Request.FormFile("map")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "map field is required")
		return
	}
	defer func() { _ = file.Close() }()

	text, err := h.sourceService.Read(file, header.Size)
	if err != nil {
		HandleError(c, err)
		return
	}

	mapName := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	result, err := h.exportService.Export(c.Request.Context(), &service.ExportInput{
		MapText: text,
		MapName: mapName,
		Format:  format,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("publish") == "true" {
		if _, err := h.exportService.Publish(c.Request.Context(), result); err != nil {
			HandleError(c, err)
			return
		}
		RespondCreated(c, result)
		return
	}

	contentType := result.ContentType
	if format == domain.ExportFormatCSV {
		contentType += "; charset=utf-8"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, contentType, result.Data)
}
