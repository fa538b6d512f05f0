package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"transcript_service/internal/transcript/app"
	"transcript_service/internal/transcript/domain"
	"transcript_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TranscriptHandler 處理轉錄工作相關的 HTTP 請求
type TranscriptHandler struct {
	Usecase     app.TranscriptUseCase
	DownloadDir string
}

// NewTranscriptHandler 建立新的 TranscriptHandler
func NewTranscriptHandler(usecase app.TranscriptUseCase, downloadDir string) *TranscriptHandler {
	return &TranscriptHandler{
		Usecase:     usecase,
		DownloadDir: downloadDir,
	}
}

// sanitizeTitle 清掉 LLM 可能留在標題裡的標記符號
// registry 中保留原樣以便除錯，只在回傳給前端時清理
func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(title, "**", "")
	title = strings.ReplaceAll(title, "`", "")
	title = strings.Trim(title, `"' `)
	return title
}

// Transcribe 建立轉錄工作
// @Summary 建立轉錄工作
// @Description 送交影片/Podcast URL，立即回傳 job_id 供輪詢
// @Tags Transcript
// @Accept json
// @Produce json
// @Param request body domain.TranscribeReq true "轉錄請求"
// @Success 200 {object} domain.TranscribeRes "工作已建立"
// @Failure 400 {object} string "URL 格式錯誤"
// @Router /api/transcribe [post]
func (h *TranscriptHandler) Transcribe(c *fiber.Ctx) error {
	var req domain.TranscribeReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Transcribe request", zap.String("url", req.URL))

	jobID, err := h.Usecase.Submit(req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "URL 格式不合法"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(domain.TranscribeRes{JobID: jobID})
}

// GetJob 查詢工作狀態
// @Summary 查詢工作狀態
// @Description 輪詢工作進度，直到 status 為 complete 或 error
// @Tags Transcript
// @Produce json
// @Param job_id path string true "工作 ID"
// @Success 200 {object} domain.Job "工作目前狀態"
// @Failure 404 {object} string "找不到工作"
// @Router /api/job/{job_id} [get]
func (h *TranscriptHandler) GetJob(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	job, err := h.Usecase.GetJob(jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "找不到工作"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// 標題清理只做在表現層
	if job.Result != nil {
		cleaned := *job.Result
		cleaned.Title = sanitizeTitle(cleaned.Title)
		job.Result = &cleaned
	}

	return c.JSON(job)
}

// Regenerate 重新產生章節與重點
// @Summary 重新產生章節與重點
// @Description 只重跑 LLM 後處理，不重新下載或轉錄
// @Tags Transcript
// @Accept json
// @Produce json
// @Param request body domain.RegenerateReq true "既有逐字稿"
// @Success 200 {object} domain.Narrative "章節與重點"
// @Failure 500 {object} string "後處理失敗"
// @Router /api/regenerate-chapters [post]
func (h *TranscriptHandler) Regenerate(c *fiber.Ctx) error {
	var req domain.RegenerateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	narrative, err := h.Usecase.Regenerate(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(narrative)
}

// Export 匯出文件
// @Summary 匯出文件
// @Description 將編輯完成的逐字稿匯出成 PDF 或 DOCX
// @Tags Transcript
// @Accept json
// @Produce application/octet-stream
// @Param request body domain.ExportReq true "匯出內容與格式"
// @Success 200 {file} binary "文件內容"
// @Failure 500 {object} string "匯出失敗"
// @Router /api/export [post]
func (h *TranscriptHandler) Export(c *fiber.Ctx) error {
	var req domain.ExportReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	res, err := h.Usecase.Export(req)
	if err != nil {
		logger.Log.Errorf("Export err :", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, res.MediaType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.FileName))
	return c.Send(res.Content)
}

// GetThumbnail 下載縮圖
// @Summary 下載縮圖
// @Description 回傳下載目錄中的縮圖檔案
// @Tags Transcript
// @Produce image/jpeg
// @Param filename path string true "縮圖檔名"
// @Success 200 {file} binary "圖片內容"
// @Failure 404 {object} string "找不到縮圖"
// @Router /api/thumbnail/{filename} [get]
func (h *TranscriptHandler) GetThumbnail(c *fiber.Ctx) error {
	filename := c.Params("filename")

	// 只允許下載目錄內的縮圖檔，避免路徑跳脫
	if filename != filepath.Base(filename) ||
		(!strings.HasSuffix(filename, "_thumb.jpg") && !strings.HasSuffix(filename, "_thumb.png")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "找不到縮圖"})
	}

	path := filepath.Join(h.DownloadDir, filename)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := c.SendFile(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "找不到縮圖"})
	}
	return nil
}

// Health 服務健康檢查
// @Summary 服務健康檢查
// @Description 回報 Ollama 等外部協作服務狀態
// @Tags Transcript
// @Produce json
// @Success 200 {object} domain.HealthRes "健康狀態"
// @Router /api/health [get]
func (h *TranscriptHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.Usecase.Health(c.Context()))
}
