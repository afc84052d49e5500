package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fmgimport/internal/service"
)

// LibraryHandler serves read-back of imported collections, documents and scenes.
type LibraryHandler struct {
	libraryService service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// ListCollections handles GET /api/v1/collections
// @Summary List collections
// @Description List document collections created by imports, newest first
// @Tags library
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Collection,meta=PagMeta} "List of collections"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /collections [get]
func (h *LibraryHandler) ListCollections(c *gin.Context) {
	offset, limit := parsePagination(c)
	collections, total, err := h.libraryService.ListCollections(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, collections, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetCollection handles GET /api/v1/collections/:id
// @Summary Get collection by ID
// @Tags library
// @Produce json
// @Param id path string true "Collection ID (UUID)"
// @Success 200 {object} Response{data=domain.Collection} "Collection details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Collection not found"
// @Router /collections/{id} [get]
func (h *LibraryHandler) GetCollection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	collection, err := h.libraryService.GetCollection(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, collection)
}

// ListDocuments handles GET /api/v1/collections/:id/documents
// @Summary List documents in a collection
// @Description List the documents of a collection in creation order
// @Tags library
// @Produce json
// @Param id path string true "Collection ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "List of documents"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Collection not found"
// @Router /collections/{id}/documents [get]
func (h *LibraryHandler) ListDocuments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	docs, total, err := h.libraryService.ListDocuments(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetScene handles GET /api/v1/scenes/:id
// @Summary Get scene by ID
// @Description Get a scene with the annotations placed on it
// @Tags library
// @Produce json
// @Param id path string true "Scene ID (UUID)"
// @Success 200 {object} Response{data=service.SceneDetail} "Scene with annotations"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Scene not found"
// @Router /scenes/{id} [get]
func (h *LibraryHandler) GetScene(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.libraryService.GetScene(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
