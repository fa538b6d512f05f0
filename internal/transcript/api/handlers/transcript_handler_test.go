package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transcript_service/internal/transcript/domain"
	"transcript_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	m.Run()
}

// MockUseCase 模擬應用服務
type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Submit(rawURL string) (string, error) {
	args := m.Called(rawURL)
	return args.String(0), args.Error(1)
}

func (m *MockUseCase) GetJob(jobID string) (domain.Job, error) {
	args := m.Called(jobID)
	return args.Get(0).(domain.Job), args.Error(1)
}

func (m *MockUseCase) Regenerate(ctx context.Context, req domain.RegenerateReq) (*domain.Narrative, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Narrative), args.Error(1)
}

func (m *MockUseCase) Export(req domain.ExportReq) (*domain.ExportRes, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportRes), args.Error(1)
}

func (m *MockUseCase) Health(ctx context.Context) domain.HealthRes {
	args := m.Called(ctx)
	return args.Get(0).(domain.HealthRes)
}

// newTestApp 建立掛上 handler 的 fiber app
func newTestApp(usecase *MockUseCase, downloadDir string) *fiber.App {
	h := NewTranscriptHandler(usecase, downloadDir)

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Post("/transcribe", h.Transcribe)
	api.Get("/job/:job_id", h.GetJob)
	api.Post("/regenerate-chapters", h.Regenerate)
	api.Post("/export", h.Export)
	api.Get("/thumbnail/:filename", h.GetThumbnail)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp.StatusCode, content
}

// 測試建立轉錄工作 endpoint
func TestTranscribeHandler(t *testing.T) {
	// **情境 1: 成功建立工作**
	t.Run("成功建立工作", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("Submit", "https://example.com/watch?v=1").Return("abcd1234", nil)
		app := newTestApp(usecase, "")

		status, body := doJSON(t, app, "POST", "/api/transcribe", `{"url":"https://example.com/watch?v=1"}`)
		assert.Equal(t, fiber.StatusOK, status)

		var res domain.TranscribeRes
		assert.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "abcd1234", res.JobID)
	})

	// **情境 2: URL 不合法回 400**
	t.Run("URL不合法回400", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("Submit", "not a url").Return("", domain.ErrInvalidInput)
		app := newTestApp(usecase, "")

		status, _ := doJSON(t, app, "POST", "/api/transcribe", `{"url":"not a url"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	// **情境 3: request body 不是 JSON 回 400**
	t.Run("body不是JSON回400", func(t *testing.T) {
		usecase := new(MockUseCase)
		app := newTestApp(usecase, "")

		status, _ := doJSON(t, app, "POST", "/api/transcribe", `not-json`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		usecase.AssertNotCalled(t, "Submit", mock.Anything)
	})
}

// 測試查詢工作狀態 endpoint
func TestGetJobHandler(t *testing.T) {
	// **情境 1: 回傳進行中工作**
	t.Run("回傳進行中工作", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("GetJob", "abcd1234").Return(domain.Job{
			ID:       "abcd1234",
			Status:   domain.JobTranscribing,
			Progress: 30,
			Message:  "轉錄音訊中（可能需要幾分鐘）...",
		}, nil)
		app := newTestApp(usecase, "")

		status, body := doJSON(t, app, "GET", "/api/job/abcd1234", "")
		assert.Equal(t, fiber.StatusOK, status)

		var job domain.Job
		assert.NoError(t, json.Unmarshal(body, &job))
		assert.Equal(t, domain.JobTranscribing, job.Status)
		assert.Equal(t, 30, job.Progress)
		assert.Nil(t, job.Result)
	})

	// **情境 2: 找不到工作回 404**
	t.Run("找不到工作回404", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("GetJob", "missing1").Return(domain.Job{}, domain.ErrJobNotFound)
		app := newTestApp(usecase, "")

		status, _ := doJSON(t, app, "GET", "/api/job/missing1", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	// **情境 3: 完成工作的標題在回傳前清理標記符號**
	t.Run("完成工作標題清理標記符號", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("GetJob", "abcd1234").Return(domain.Job{
			ID:       "abcd1234",
			Status:   domain.JobComplete,
			Progress: 100,
			Result:   &domain.TranscriptResult{Title: `**"Amazing Video"**`},
		}, nil)
		app := newTestApp(usecase, "")

		status, body := doJSON(t, app, "GET", "/api/job/abcd1234", "")
		assert.Equal(t, fiber.StatusOK, status)

		var job domain.Job
		assert.NoError(t, json.Unmarshal(body, &job))
		assert.Equal(t, "Amazing Video", job.Result.Title)
	})
}

// 測試重新產生章節 endpoint
func TestRegenerateHandler(t *testing.T) {
	// **情境 1: 成功回傳章節與重點**
	t.Run("成功回傳章節與重點", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("Regenerate", mock.Anything, mock.Anything).Return(&domain.Narrative{
			Chapters:  []domain.Chapter{{Timestamp: "00:00", Title: "Intro"}},
			Takeaways: []string{"Key point"},
		}, nil)
		app := newTestApp(usecase, "")

		status, body := doJSON(t, app, "POST", "/api/regenerate-chapters", `{"transcript":"text","title":"Video"}`)
		assert.Equal(t, fiber.StatusOK, status)

		var narrative domain.Narrative
		assert.NoError(t, json.Unmarshal(body, &narrative))
		assert.Len(t, narrative.Chapters, 1)
	})

	// **情境 2: 後處理失敗回 500**
	t.Run("後處理失敗回500", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("Regenerate", mock.Anything, mock.Anything).Return(nil, domain.ErrProcessing)
		app := newTestApp(usecase, "")

		status, _ := doJSON(t, app, "POST", "/api/regenerate-chapters", `{"transcript":"text"}`)
		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}

// 測試匯出 endpoint
func TestExportHandler(t *testing.T) {
	// **情境 1: 成功匯出，帶正確的下載 header**
	t.Run("成功匯出", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("Export", mock.Anything).Return(&domain.ExportRes{
			Content:   []byte("%PDF-1.4 fake"),
			MediaType: "application/pdf",
			FileName:  "video.pdf",
		}, nil)
		app := newTestApp(usecase, "")

		req := httptest.NewRequest("POST", "/api/export", strings.NewReader(`{"title":"video","transcript":"text"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, `attachment; filename="video.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))

		content, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF-1.4 fake", string(content))
	})

	// **情境 2: 匯出失敗回 500**
	t.Run("匯出失敗回500", func(t *testing.T) {
		usecase := new(MockUseCase)
		usecase.On("Export", mock.Anything).Return(nil, domain.ErrExport)
		app := newTestApp(usecase, "")

		status, _ := doJSON(t, app, "POST", "/api/export", `{"title":"video"}`)
		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}

// 測試縮圖 endpoint
func TestGetThumbnailHandler(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "abc123_thumb.jpg"), []byte("jpeg-bytes"), 0644))

	usecase := new(MockUseCase)
	app := newTestApp(usecase, dir)

	// **情境 1: 成功取得縮圖**
	t.Run("成功取得縮圖", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/api/thumbnail/abc123_thumb.jpg", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "jpeg-bytes", string(body))
	})

	// **情境 2: 不存在的縮圖回 404**
	t.Run("不存在的縮圖回404", func(t *testing.T) {
		status, _ := doJSON(t, app, "GET", "/api/thumbnail/missing_thumb.jpg", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	// **情境 3: 非縮圖檔名一律 404，防路徑跳脫**
	t.Run("非縮圖檔名一律404", func(t *testing.T) {
		for _, name := range []string{"..%2F..%2Fetc%2Fpasswd", "secret.txt", "abc123.mp3"} {
			status, _ := doJSON(t, app, "GET", "/api/thumbnail/"+name, "")
			assert.Equal(t, fiber.StatusNotFound, status, name)
		}
	})
}

// 測試健康檢查 endpoint
func TestHealthHandler(t *testing.T) {
	usecase := new(MockUseCase)
	usecase.On("Health", mock.Anything).Return(domain.HealthRes{
		Status:  "degraded",
		Ollama:  false,
		Message: "Ollama not running - start with 'ollama serve'",
	})
	app := newTestApp(usecase, "")

	status, body := doJSON(t, app, "GET", "/api/health", "")
	assert.Equal(t, fiber.StatusOK, status)

	var res domain.HealthRes
	assert.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "degraded", res.Status)
	assert.False(t, res.Ollama)
}
