package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fmgimport/internal/service"
)

// ImportHandler handles map import endpoints.
type ImportHandler struct {
	importService service.ImportService
	sourceService service.MapSourceService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, sourceService service.MapSourceService) *ImportHandler {
	return &ImportHandler{importService: importService, sourceService: sourceService}
}

// Create handles POST /api/v1/imports
// @Summary Import a map export
// @Description Create the scene, document collections, documents and annotations for a map export
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param map formData file true "Map export (.map)"
// @Param background formData string false "Background image path of the scene"
// @Param scene_name formData string false "Scene name; derived from the background image when empty"
// @Success 201 {object} Response{data=service.ImportResult} "Import complete"
// @Failure 400 {object} ErrorResponseBody "Missing or empty map file"
// @Failure 409 {object} ErrorResponseBody "Another import is running"
// @Failure 413 {object} ErrorResponseBody "Map file too large"
// @Failure 422 {object} ErrorResponseBody "Map file lacks a required record batch"
// @Failure 500 {object} ErrorResponseBody "Import failed"
// @Router /imports [post]
func (h *ImportHandler) Create(c *gin.Context) {
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

	result, err := h.importService.Import(c.Request.Context(), &service.ImportInput{
		MapText:         text,
		BackgroundImage: c.PostForm("background"),
		SceneName:       c.PostForm("scene_name"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}
