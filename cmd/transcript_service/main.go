package main

import (
	"fmt"
	"log"
	"os"

	_ "transcript_service/cmd/transcript_service/docs" // 引入生成的 Swagger 文檔
	"transcript_service/internal/transcript/api/handlers"
	"transcript_service/internal/transcript/api/router"
	"transcript_service/internal/transcript/app"
	"transcript_service/internal/transcript/repository"
	"transcript_service/pkg/config"
	"transcript_service/pkg/logger"
	testtool "transcript_service/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.TranscriptService, config.EnvConfig.TranscriptServiceLogPath)
	cfg := config.LoadConfig[config.Transcript](config.EnvConfig.TranscriptService, config.EnvConfig.TranscriptServiceYAMLPath)

	// 非正式環境開啟 pprof，方便排查卡住的 pipeline goroutine
	testtool.StartPprof()

	// 1. 建立外部工具協作者
	downloader := app.NewYtdlpDownloader(cfg.Ytdlp.BinPath, cfg.DownloadDir)
	transcriber := app.NewWhisperTranscriber(cfg.Whisper.BinPath, cfg.Whisper.ModelPath, cfg.Whisper.Language)
	processor := app.NewOllamaProcessor(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout)

	// 2. 建立 job registry 與 stage pipeline
	jobRepo := repository.NewJobRepository()
	pipeline := app.NewPipeline(downloader, transcriber, processor, jobRepo, cfg.StageTimeout)

	usecase := app.NewTranscriptUseCase(jobRepo, pipeline, processor)
	transcriptHandler := handlers.NewTranscriptHandler(usecase, cfg.DownloadDir)

	// 3. 建立 Fiber 應用
	r := fiber.New()

	// 添加日誌中間件
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.TranscriptServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 將日誌輸出到檔案
	}))

	// 4. 前端靜態檔
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
		r.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(cfg.StaticDir + "/index.html")
		})
	}

	// 5. 註冊 API 路由
	router.RegisterRoutes(r, transcriptHandler)

	// 6. 啟動服務
	logger.Log.Info(fmt.Sprintf("TranscriptService listening on : %s", cfg.Port))
	if err := r.Listen(cfg.IP + ":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
