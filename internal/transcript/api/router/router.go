package router

import (
	"transcript_service/internal/transcript/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes 註冊轉錄服務的路由
// @title Transcript Service API
// @version 1.0
// @description API documentation for Transcript Service
// @host localhost:8000
// @BasePath /
func RegisterRoutes(app *fiber.App, transcriptHandler *handlers.TranscriptHandler) {
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/health", transcriptHandler.Health)
	api.Post("/transcribe", transcriptHandler.Transcribe)
	api.Get("/job/:job_id", transcriptHandler.GetJob)
	api.Post("/regenerate-chapters", transcriptHandler.Regenerate)
	api.Post("/export", transcriptHandler.Export)
	api.Get("/thumbnail/:filename", transcriptHandler.GetThumbnail)
}
