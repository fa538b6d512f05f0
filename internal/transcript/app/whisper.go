package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"transcript_service/internal/transcript/domain"
	errprocess "transcript_service/pkg/err"
)

// whisperOutput whisper.cpp -oj 產生的 JSON 結構中會用到的欄位
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// WhisperTranscriber 以 whisper.cpp 將音訊轉成帶時間戳的逐字稿
type WhisperTranscriber struct {
	binPath   string
	modelPath string
	language  string
	runner    commandRunner
	mkdirTemp func(dir, pattern string) (string, error)
	readFile  func(name string) ([]byte, error)
}

// NewWhisperTranscriber 建立 whisper.cpp 轉錄器
func NewWhisperTranscriber(binPath, modelPath, language string) *WhisperTranscriber {
	return &WhisperTranscriber{
		binPath:   binPath,
		modelPath: modelPath,
		language:  language,
		runner:    &execRunner{},
		mkdirTemp: os.MkdirTemp,
		readFile:  os.ReadFile,
	}
}

// buildWhisperArgs 組出 whisper.cpp 的參數，-oj 輸出 JSON 便於解析時間戳
func buildWhisperArgs(modelPath, audioPath, outputBase, language string) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-of", outputBase,
		"-oj",
	}

	lang := strings.TrimSpace(language)
	if lang != "" && !strings.EqualFold(lang, "auto") {
		args = append(args, "-l", lang)
	}

	return args
}

// Transcribe 執行 whisper.cpp 並解析 JSON 輸出成全文與 segments
// 可能耗時數分鐘，呼叫端以 goroutine 執行避免阻塞其他工作
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (*domain.Transcription, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("audioPath[%s] 無法存取音訊檔 : %v", audioPath, err))
	}

	tempDir, err := t.mkdirTemp("", "transcript-whisper-*")
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("audioPath[%s] 建立暫存目錄失敗 : %v", audioPath, err))
	}
	defer os.RemoveAll(tempDir)

	outputBase := filepath.Join(tempDir, "transcript")
	args := buildWhisperArgs(t.modelPath, audioPath, outputBase, t.language)

	result, err := t.runner.Run(ctx, t.binPath, args...)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("audioPath[%s] whisper.cpp 轉錄失敗 : %v, stderr: %s", audioPath, err, result.Stderr))
	}

	content, err := t.readFile(outputBase + ".json")
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("audioPath[%s] whisper.cpp 完成但找不到 JSON 輸出 : %v", audioPath, err))
	}

	return parseWhisperOutput(content)
}

// parseWhisperOutput 將 whisper.cpp 的 JSON 輸出轉成 domain.Transcription
// offsets 單位為毫秒，轉成秒
func parseWhisperOutput(content []byte) (*domain.Transcription, error) {
	var out whisperOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("解析 whisper JSON 輸出失敗 : %v", err))
	}

	segments := make([]domain.Segment, 0, len(out.Transcription))
	var full strings.Builder
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, domain.Segment{
			Start: float64(seg.Offsets.From) / 1000.0,
			End:   float64(seg.Offsets.To) / 1000.0,
			Text:  text,
		})
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(text)
	}

	language := out.Result.Language
	if language == "" {
		language = "en"
	}

	return &domain.Transcription{
		Text:     full.String(),
		Segments: segments,
		Language: language,
	}, nil
}

// FormatTimestamp 將秒數轉成 MM:SS 或 HH:MM:SS
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
