package routes

import (
	"github.com/gin-gonic/gin"

	"meeting-digest/internal/api/v1/handlers"
	"meeting-digest/internal/api/v1/services"
)

// ServiceContainer holds all services needed by the routes
type ServiceContainer struct {
	MediaService         services.MediaService
	TranscriptionService services.TranscriptionService
	SummaryService       services.SummaryService
	PipelineService      services.PipelineService
	ArtifactService      services.ArtifactService
}

// RegisterRoutes registers the digest endpoints on router
func RegisterRoutes(router gin.IRoutes, container *ServiceContainer) {
	mediaHandler := handlers.NewMediaHandler(container.MediaService)
	router.POST("/extract-audio", mediaHandler.ExtractAudio)

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	router.POST("/transcribe", transcriptionHandler.Transcribe)

	summaryHandler := handlers.NewSummaryHandler(container.SummaryService)
	router.POST("/summarize", summaryHandler.Summarize)

	if container.PipelineService != nil {
		pipelineHandler := handlers.NewPipelineHandler(container.PipelineService)
		router.POST("/process", pipelineHandler.Process)
	}

	if container.ArtifactService != nil {
		artifactHandler := handlers.NewArtifactHandler(container.ArtifactService)
		router.GET("/artifacts/:id", artifactHandler.Download)
	}
}
