package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fmgimport/internal/handler"
	"fmgimport/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	corsOrigins []string,
	importH *handler.ImportHandler,
	exportH *handler.ExportHandler,
	libraryH *handler.LibraryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/imports", importH.Create)
	v1.POST("/exports", exportH.Create)

	collections := v1.Group("/collections")
	collections.GET("", libraryH.ListCollections)
	collections.GET("/:id", libraryH.GetCollection)
	collections.GET("/:id/documents", libraryH.ListDocuments)

	v1.GET("/scenes/:id", libraryH.GetScene)

	return r
}
