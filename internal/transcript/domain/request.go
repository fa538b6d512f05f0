package domain

// TranscribeReq usecase submit transcription request
type TranscribeReq struct {
	URL string `json:"url"`
}

// TranscribeRes usecase submit transcription response
type TranscribeRes struct {
	JobID string `json:"job_id"`
}

// RegenerateReq 重新產生章節與重點的請求，只經過 LLM，不重新下載或轉錄
type RegenerateReq struct {
	Transcript string    `json:"transcript"`
	Segments   []Segment `json:"segments"`
	Title      string    `json:"title"`
}

// HighlightSpan 匯出時要上色的文字片段
type HighlightSpan struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// ExportReq 匯出文件請求，一次性使用不落地
type ExportReq struct {
	Title         string          `json:"title"`
	Chapters      []Chapter       `json:"chapters"`
	Takeaways     []string        `json:"takeaways"`
	Transcript    string          `json:"transcript"`
	Format        string          `json:"format"` // "pdf" 或 "docx"
	FontName      string          `json:"font_name"`
	FontSize      int             `json:"font_size"`
	Highlights    []HighlightSpan `json:"highlights,omitempty"`
	ThumbnailPath string          `json:"thumbnail_path,omitempty"`
	Channel       string          `json:"channel,omitempty"`
}

// ExportRes usecase export response
type ExportRes struct {
	Content   []byte
	MediaType string
	FileName  string
}

// HealthRes 服務健康狀態
type HealthRes struct {
	Status  string `json:"status"` // "ok" 或 "degraded"
	Ollama  bool   `json:"ollama"`
	Message string `json:"message"`
}
