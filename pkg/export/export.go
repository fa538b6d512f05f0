package export

// Chapter 章節列表中的一項
type Chapter struct {
	Timestamp string
	Title     string
}

// Highlight 要上色的文字片段
type Highlight struct {
	Text  string
	Color string // "#rrggbb"
}

// Request 匯出文件所需的全部內容，一次性使用
type Request struct {
	Title         string
	Channel       string
	Chapters      []Chapter
	Takeaways     []string
	Transcript    string
	FontName      string
	FontSize      int
	Highlights    []Highlight
	ThumbnailPath string
}

// fontSizeOrDefault 回傳請求的字體大小，未指定時使用 11pt
func (r Request) fontSizeOrDefault() float64 {
	if r.FontSize <= 0 {
		return 11
	}
	return float64(r.FontSize)
}
