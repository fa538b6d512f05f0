package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"transcript_service/internal/transcript/domain"
	errprocess "transcript_service/pkg/err"
	"transcript_service/pkg/logger"
)

const (
	// maxPromptSegments 送進 LLM 的最大 segment 數，避免 token 爆量
	maxPromptSegments = 100
	// maxPromptChars 時間戳逐字稿送進 LLM 的字元上限
	maxPromptChars = 8000
	// formatChunkSize 排版時每個 chunk 的字元上限
	formatChunkSize = 4000
)

// ollamaGenerateReq /api/generate 請求
type ollamaGenerateReq struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// ollamaGenerateRes /api/generate 回應
type ollamaGenerateRes struct {
	Response string `json:"response"`
}

// OllamaProcessor 透過本地 Ollama 產生章節、重點與排版後逐字稿
type OllamaProcessor struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProcessor 建立 Ollama 客戶端，timeout 為單次生成的逾時
func NewOllamaProcessor(baseURL, model string, timeout time.Duration) *OllamaProcessor {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaProcessor{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// generate 呼叫 /api/generate 並回傳 response 純文字
func (p *OllamaProcessor) generate(ctx context.Context, prompt string, temperature float64, numPredict int) (string, error) {
	body, err := json.Marshal(ollamaGenerateReq{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumPredict:  numPredict,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	resBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error: %s", string(resBody))
	}

	var res ollamaGenerateRes
	if err := json.Unmarshal(resBody, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// GenerateNarrative 由逐字稿產生章節與重點
// LLM 回應不一定是乾淨的 JSON，取第一個 { 到最後一個 } 之間解析
// 解析失敗時回傳 degenerate 結果而不是錯誤，讓使用者至少拿得到逐字稿
func (p *OllamaProcessor) GenerateNarrative(ctx context.Context, transcript string, segments []domain.Segment, title string) (*domain.Narrative, error) {
	var timestamped strings.Builder
	for i, seg := range segments {
		if i >= maxPromptSegments {
			break
		}
		timestamped.WriteString(fmt.Sprintf("[%s] %s\n", FormatTimestamp(seg.Start), seg.Text))
	}
	context8k := timestamped.String()
	if len(context8k) > maxPromptChars {
		context8k = context8k[:maxPromptChars]
	}

	prompt := fmt.Sprintf(`Analyze this video/podcast transcript and generate:
1. CHAPTERS: Identify 4-8 logical chapters/sections with timestamps. Format each as:
   [MM:SS] Chapter Title

2. KEY TAKEAWAYS: Extract 5-10 most important points, insights, or actionable items.

Title: %s

Transcript with timestamps:
%s

Respond in this exact JSON format:
{
    "chapters": [
        {"timestamp": "00:00", "title": "Introduction"},
        {"timestamp": "02:30", "title": "Main Topic"}
    ],
    "takeaways": [
        "First key insight or takeaway",
        "Second key insight or takeaway"
    ]
}

JSON Response:`, title, context8k)

	response, err := p.generate(ctx, prompt, 0.3, 1500)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("title[%s] Ollama 產生章節失敗 : %v", title, err))
	}

	if narrative, ok := parseNarrativeJSON(response); ok {
		return narrative, nil
	}

	logger.Log.Warn(fmt.Sprintf("title[%s] LLM 回應無法解析為 JSON，回傳 degenerate 結果", title))
	return &domain.Narrative{
		Chapters:  []domain.Chapter{{Timestamp: "00:00", Title: "Full Content"}},
		Takeaways: []string{"See transcript for details"},
	}, nil
}

// parseNarrativeJSON 從 LLM 回應中擷取並解析 JSON
func parseNarrativeJSON(response string) (*domain.Narrative, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	var narrative domain.Narrative
	if err := json.Unmarshal([]byte(response[start:end+1]), &narrative); err != nil {
		return nil, false
	}
	return &narrative, true
}

// FormatTranscript 將逐字稿分段排版並移除宣傳性內容
// 依 4000 字元切 chunk 逐一處理，單一 chunk 失敗時保留原文
func (p *OllamaProcessor) FormatTranscript(ctx context.Context, text string, chapters []domain.Chapter) (string, error) {
	chunks := splitChunks(text, formatChunkSize)
	formatted := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		prompt := fmt.Sprintf(`Format this transcript section for readability. You must:

1. REMOVE any mentions of:
   - Subscribing to channel
   - Liking the video
   - Hitting the bell/notification
   - Sponsor segments or ad reads
   - Patreon/membership promotions
   - Social media follows
   - "Check out my other videos"
   - Any self-promotional content

2. ORGANIZE into logical paragraphs (3-5 sentences each)

3. ADD section headings where topics change. Format headings as: **Heading Title**

4. FIX grammar and remove filler words (um, uh, you know, like)

5. Keep all the actual educational/informational content intact

Transcript section %d/%d:
%s

Formatted output (with **bold** section headings):`, i+1, len(chunks), chunk)

		response, err := p.generate(ctx, prompt, 0.2, 3000)
		if err != nil {
			logger.Log.Warn(fmt.Sprintf("chunk[%d/%d] 排版失敗，保留原文 : %v", i+1, len(chunks), err))
			formatted = append(formatted, chunk)
			continue
		}
		formatted = append(formatted, response)
	}

	return strings.Join(formatted, "\n\n"), nil
}

// splitChunks 以單字為界將文字切成不超過 size 字元的片段
func splitChunks(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var chunks []string
	var current []string
	length := 0

	for _, word := range words {
		if length+len(word)+1 > size && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			length = len(word)
		} else {
			current = append(current, word)
			length += len(word) + 1
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// Ping 檢查 Ollama 是否存活
func (p *OllamaProcessor) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
