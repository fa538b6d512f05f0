package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"transcript_service/internal/transcript/domain"
	"transcript_service/internal/transcript/repository"
	"transcript_service/pkg/export"
	"transcript_service/pkg/logger"

	"github.com/google/uuid"
)

// pipelineRunner 抽象 pipeline 執行，測試時可注入 mock
type pipelineRunner interface {
	Run(ctx context.Context, jobID, url string)
}

// TranscriptUseCase 這裡封裝了對外提供的應用服務
type TranscriptUseCase interface {
	Submit(rawURL string) (string, error)
	GetJob(jobID string) (domain.Job, error)
	Regenerate(ctx context.Context, req domain.RegenerateReq) (*domain.Narrative, error)
	Export(req domain.ExportReq) (*domain.ExportRes, error)
	Health(ctx context.Context) domain.HealthRes
}

type transcriptUseCase struct {
	jobRepo   repository.JobRepository
	pipeline  pipelineRunner
	processor NarrativeProcessor
}

// NewTranscriptUseCase 建立一個新的 TranscriptUseCase
func NewTranscriptUseCase(
	jobRepo repository.JobRepository,
	pipeline pipelineRunner,
	processor NarrativeProcessor,
) TranscriptUseCase {
	return &transcriptUseCase{
		jobRepo:   jobRepo,
		pipeline:  pipeline,
		processor: processor,
	}
}

// validateURL 檢查送交的 URL 語法是否合法
func validateURL(rawURL string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return domain.ErrInvalidInput
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.ErrInvalidInput
	}
	if u.Host == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Submit 建立轉錄工作並立刻回傳 job id，pipeline 在背景執行
// URL 不合法時直接回傳 ErrInvalidInput，不會建立任何工作
func (u *transcriptUseCase) Submit(rawURL string) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}

	// 與原系統一致，取 uuid 前 8 碼當 job id
	jobID := uuid.New().String()[:8]
	if err := u.jobRepo.Create(jobID); err != nil {
		return "", err
	}

	logger.Log.Info(fmt.Sprintf("jobID[%s] 建立轉錄工作 url[%s]", jobID, rawURL))

	// 背景執行，submit 不等待 pipeline；不同工作互不阻塞
	go u.pipeline.Run(context.Background(), jobID, rawURL)

	return jobID, nil
}

// GetJob 回傳工作目前狀態的 snapshot，輪詢永遠不會因為沒進度而失敗
func (u *transcriptUseCase) GetJob(jobID string) (domain.Job, error) {
	return u.jobRepo.Get(jobID)
}

// Regenerate 只重跑 LLM 後處理，不重新下載或轉錄，也不動任何既有工作
func (u *transcriptUseCase) Regenerate(ctx context.Context, req domain.RegenerateReq) (*domain.Narrative, error) {
	narrative, err := u.processor.GenerateNarrative(ctx, req.Transcript, req.Segments, req.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProcessing, err)
	}
	return narrative, nil
}

// Export 同步將編輯完成的逐字稿匯出成文件，不經過 job registry
func (u *transcriptUseCase) Export(req domain.ExportReq) (*domain.ExportRes, error) {
	exportReq := export.Request{
		Title:         req.Title,
		Channel:       req.Channel,
		Transcript:    req.Transcript,
		FontName:      req.FontName,
		FontSize:      req.FontSize,
		ThumbnailPath: req.ThumbnailPath,
		Takeaways:     req.Takeaways,
	}
	for _, ch := range req.Chapters {
		exportReq.Chapters = append(exportReq.Chapters, export.Chapter{
			Timestamp: ch.Timestamp,
			Title:     ch.Title,
		})
	}
	for _, h := range req.Highlights {
		exportReq.Highlights = append(exportReq.Highlights, export.Highlight{
			Text:  h.Text,
			Color: h.Color,
		})
	}

	var (
		content   []byte
		mediaType string
		ext       string
		err       error
	)
	switch req.Format {
	case "docx":
		content, err = export.ToDOCX(exportReq)
		mediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		ext = ".docx"
	default:
		content, err = export.ToPDF(exportReq)
		mediaType = "application/pdf"
		ext = ".pdf"
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExport, err)
	}

	name := req.Title
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "transcript"
	}

	return &domain.ExportRes{
		Content:   content,
		MediaType: mediaType,
		FileName:  name + ext,
	}, nil
}

// Health 檢查外部協作服務是否存活
func (u *transcriptUseCase) Health(ctx context.Context) domain.HealthRes {
	type pinger interface {
		Ping(ctx context.Context) bool
	}

	ollamaOK := false
	if p, ok := u.processor.(pinger); ok {
		ollamaOK = p.Ping(ctx)
	}

	res := domain.HealthRes{
		Status:  "ok",
		Ollama:  ollamaOK,
		Message: "Ready",
	}
	if !ollamaOK {
		res.Status = "degraded"
		res.Message = "Ollama not running - start with 'ollama serve'"
	}
	return res
}
