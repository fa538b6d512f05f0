package app

import (
	"context"
	"fmt"
	"time"

	"transcript_service/internal/transcript/domain"
	"transcript_service/internal/transcript/repository"
	"transcript_service/pkg/logger"
)

// MediaDownloader 媒體取得協作者（yt-dlp）
type MediaDownloader interface {
	Extract(ctx context.Context, url string) (*domain.MediaInfo, error)
	Cleanup(audioPath string)
}

// Transcriber 語音轉文字協作者（whisper.cpp）
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*domain.Transcription, error)
}

// NarrativeProcessor LLM 後處理協作者（Ollama）
type NarrativeProcessor interface {
	GenerateNarrative(ctx context.Context, transcript string, segments []domain.Segment, title string) (*domain.Narrative, error)
	FormatTranscript(ctx context.Context, text string, chapters []domain.Chapter) (string, error)
}

// Pipeline 驅動單一工作走完 下載 -> 轉錄 -> 後處理 -> 完成 的固定階段序列
// 同一工作的階段嚴格依序執行；不同工作各自在獨立 goroutine 中互不阻塞
// 工作狀態只由執行該工作的 pipeline 寫入
type Pipeline struct {
	downloader  MediaDownloader
	transcriber Transcriber
	processor   NarrativeProcessor
	jobRepo     repository.JobRepository

	// stageTimeout 單一階段的逾時，0 表示不限制
	// 外部工具卡死時工作會轉為 error 而不是永遠停在非終態
	stageTimeout time.Duration
}

// NewPipeline 建立 stage pipeline
func NewPipeline(
	downloader MediaDownloader,
	transcriber Transcriber,
	processor NarrativeProcessor,
	jobRepo repository.JobRepository,
	stageTimeout time.Duration,
) *Pipeline {
	return &Pipeline{
		downloader:   downloader,
		transcriber:  transcriber,
		processor:    processor,
		jobRepo:      jobRepo,
		stageTimeout: stageTimeout,
	}
}

// stageContext 為單一階段加上逾時
func (p *Pipeline) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.stageTimeout > 0 {
		return context.WithTimeout(ctx, p.stageTimeout)
	}
	return context.WithCancel(ctx)
}

// Run 執行完整 pipeline，任一階段失敗即轉為 error 終態並停止
// 不自動重試：外部工具自己已有重試，壞輸入重試只是浪費時間
func (p *Pipeline) Run(ctx context.Context, jobID, url string) {
	var audioPath string
	defer func() {
		// 音訊檔用完即刪，縮圖保留給 thumbnail endpoint
		p.downloader.Cleanup(audioPath)
	}()

	// 階段 1：下載音訊
	p.jobRepo.SetProgress(jobID, domain.JobDownloading, 10, "下載音訊中...")

	stageCtx, cancel := p.stageContext(ctx)
	media, err := p.downloader.Extract(stageCtx, url)
	cancel()
	if err != nil {
		p.fail(jobID, fmt.Sprintf("下載階段失敗 : %v", err))
		return
	}
	audioPath = media.AudioPath

	// 階段 2：語音轉文字
	p.jobRepo.SetProgress(jobID, domain.JobTranscribing, 30, "轉錄音訊中（可能需要幾分鐘）...")

	stageCtx, cancel = p.stageContext(ctx)
	transcription, err := p.transcriber.Transcribe(stageCtx, audioPath)
	cancel()
	if err != nil {
		p.fail(jobID, fmt.Sprintf("轉錄階段失敗 : %v", err))
		return
	}

	// 階段 3：產生章節與重點
	// 沒有章節與重點的逐字稿視為不完整結果，失敗就是整個工作失敗
	p.jobRepo.SetProgress(jobID, domain.JobProcessing, 70, "產生章節與重點中...")

	stageCtx, cancel = p.stageContext(ctx)
	narrative, err := p.processor.GenerateNarrative(stageCtx, transcription.Text, transcription.Segments, media.Title)
	cancel()
	if err != nil {
		p.fail(jobID, fmt.Sprintf("後處理階段失敗 : %v", err))
		return
	}

	// 階段 4：排版逐字稿並移除宣傳內容
	p.jobRepo.SetProgress(jobID, domain.JobProcessing, 85, "排版逐字稿並移除宣傳內容中...")

	stageCtx, cancel = p.stageContext(ctx)
	formatted, err := p.processor.FormatTranscript(stageCtx, transcription.Text, narrative.Chapters)
	cancel()
	if err != nil {
		p.fail(jobID, fmt.Sprintf("後處理階段失敗 : %v", err))
		return
	}

	// 完成：組裝結果並與狀態一起發佈
	// Title 保留 LLM 原始輸出，清理留給表現層，保持紀錄可除錯
	result := &domain.TranscriptResult{
		Title:         media.Title,
		Transcript:    formatted,
		RawTranscript: transcription.Text,
		Segments:      transcription.Segments,
		Chapters:      narrative.Chapters,
		Takeaways:     narrative.Takeaways,
		Language:      transcription.Language,
		ThumbnailPath: media.ThumbnailPath,
		Channel:       media.Channel,
	}
	p.jobRepo.Complete(jobID, result, "完成！")

	logger.Log.Info(fmt.Sprintf("jobID[%s] 轉錄工作完成 title[%s] segments[%d]", jobID, media.Title, len(transcription.Segments)))
}

// fail 將工作轉為 error 終態並記錄
func (p *Pipeline) fail(jobID, message string) {
	logger.Log.Error(fmt.Sprintf("jobID[%s] %s", jobID, message))
	p.jobRepo.Fail(jobID, message)
}
