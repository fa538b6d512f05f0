package domain

// JobStatus definition job status
type JobStatus string

const (
	// JobQueued 工作已建立，尚未開始
	JobQueued JobStatus = "queued"
	// JobDownloading 下載音訊中
	JobDownloading JobStatus = "downloading"
	// JobTranscribing 語音轉文字中
	JobTranscribing JobStatus = "transcribing"
	// JobProcessing LLM 後處理中（章節、重點、排版）
	JobProcessing JobStatus = "processing"
	// JobComplete 工作完成（終態）
	JobComplete JobStatus = "complete"
	// JobError 工作失敗（終態）
	JobError JobStatus = "error"
)

// IsTerminal 判斷狀態是否為終態（complete / error）
func (s JobStatus) IsTerminal() bool {
	return s == JobComplete || s == JobError
}

// Segment 一段帶時間戳的逐字稿片段，順序即時間順序
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Chapter 章節標記，Timestamp 格式 "MM:SS" 或 "HH:MM:SS"
type Chapter struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// TranscriptResult 工作完成後的完整輸出
type TranscriptResult struct {
	Title         string    `json:"title"`
	Transcript    string    `json:"transcript"`     // LLM 排版後（含段落標題、移除業配內容）
	RawTranscript string    `json:"raw_transcript"` // whisper 原始輸出
	Segments      []Segment `json:"segments"`
	Chapters      []Chapter `json:"chapters"`
	Takeaways     []string  `json:"takeaways"`
	Language      string    `json:"language"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	Channel       string    `json:"channel,omitempty"`
}

// Job 轉錄工作的完整狀態，registry 中的唯一單位
// 終態時 Result / Error 恰好只有一個被設定
type Job struct {
	ID       string            `json:"job_id"`
	Status   JobStatus         `json:"status"`
	Progress int               `json:"progress"` // 0-100，非終態時單調遞增
	Message  string            `json:"message"`
	Result   *TranscriptResult `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// MediaInfo 媒體取得（yt-dlp）的輸出
type MediaInfo struct {
	AudioPath     string
	Title         string
	Duration      float64
	ThumbnailPath string
	Channel       string
}

// Transcription 語音轉文字引擎的輸出
type Transcription struct {
	Text     string
	Segments []Segment
	Language string
}

// Narrative LLM 後處理輸出的章節與重點
type Narrative struct {
	Chapters  []Chapter `json:"chapters"`
	Takeaways []string  `json:"takeaways"`
}
