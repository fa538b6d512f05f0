package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRequest() Request {
	return Request{
		Title:   "Interview Highlights",
		Channel: "Example Channel",
		Chapters: []Chapter{
			{Timestamp: "00:00", Title: "Intro"},
			{Timestamp: "02:30", Title: "Main Topic"},
		},
		Takeaways:  []string{"Key point one", "Key point two"},
		Transcript: "Hello and welcome.\n\nToday we talk about testing.",
	}
}

// 測試 PDF 匯出
func TestToPDF(t *testing.T) {
	// **情境 1: 完整內容匯出**
	t.Run("完整內容匯出", func(t *testing.T) {
		content, err := ToPDF(sampleRequest())
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "%PDF"))
		assert.Greater(t, len(content), 500)
	})

	// **情境 2: 只有逐字稿也能匯出**
	t.Run("只有逐字稿也能匯出", func(t *testing.T) {
		content, err := ToPDF(Request{Title: "Bare", Transcript: "Just text."})
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "%PDF"))
	})

	// **情境 3: 帶 highlight 匯出**
	t.Run("帶highlight匯出", func(t *testing.T) {
		req := sampleRequest()
		req.Highlights = []Highlight{{Text: "welcome", Color: "#ff0000"}}
		content, err := ToPDF(req)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "%PDF"))
	})

	// **情境 4: 縮圖路徑不存在時略過不報錯**
	t.Run("縮圖路徑不存在時略過", func(t *testing.T) {
		req := sampleRequest()
		req.ThumbnailPath = "/no/such/thumb.jpg"
		content, err := ToPDF(req)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "%PDF"))
	})
}

// 測試 DOCX 匯出
func TestToDOCX(t *testing.T) {
	// **情境 1: 完整內容匯出，輸出為 zip 容器**
	t.Run("完整內容匯出", func(t *testing.T) {
		content, err := ToDOCX(sampleRequest())
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "PK"))
		assert.Greater(t, len(content), 500)
	})

	// **情境 2: 縮圖路徑不存在時略過不報錯**
	t.Run("縮圖路徑不存在時略過", func(t *testing.T) {
		req := sampleRequest()
		req.ThumbnailPath = "/no/such/thumb.jpg"
		content, err := ToDOCX(req)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "PK"))
	})
}

// 測試字體對應
func TestCoreFont(t *testing.T) {
	assert.Equal(t, "Times", coreFont("Times New Roman"))
	assert.Equal(t, "Times", coreFont("times"))
	assert.Equal(t, "Courier", coreFont("Courier New"))
	assert.Equal(t, "Helvetica", coreFont("helvetica"))
	assert.Equal(t, "Arial", coreFont("Comic Sans"))
	assert.Equal(t, "Arial", coreFont(""))
}

// 測試 hex 色碼解析
func TestParseHexColor(t *testing.T) {
	// **情境 1: 合法色碼**
	t.Run("合法色碼", func(t *testing.T) {
		r, g, b := parseHexColor("#ff8000")
		assert.Equal(t, 255, r)
		assert.Equal(t, 128, g)
		assert.Equal(t, 0, b)
	})

	// **情境 2: 不合法時回傳黑色**
	t.Run("不合法時回傳黑色", func(t *testing.T) {
		for _, bad := range []string{"", "#fff", "#zzzzzz", "red"} {
			r, g, b := parseHexColor(bad)
			assert.Equal(t, 0, r)
			assert.Equal(t, 0, g)
			assert.Equal(t, 0, b)
		}
	})
}

// 測試字體大小預設值
func TestFontSizeOrDefault(t *testing.T) {
	assert.Equal(t, 11.0, Request{}.fontSizeOrDefault())
	assert.Equal(t, 11.0, Request{FontSize: -3}.fontSizeOrDefault())
	assert.Equal(t, 14.0, Request{FontSize: 14}.fontSizeOrDefault())
}
