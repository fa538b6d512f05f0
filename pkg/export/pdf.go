package export

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// coreFont 將請求的字體對應到 PDF 內建字體
func coreFont(name string) string {
	switch strings.ToLower(name) {
	case "times", "times new roman":
		return "Times"
	case "courier", "courier new":
		return "Courier"
	case "helvetica":
		return "Helvetica"
	default:
		return "Arial"
	}
}

// parseHexColor 解析 "#rrggbb"，失敗時回傳黑色
func parseHexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	r, err1 := strconv.ParseInt(hex[0:2], 16, 0)
	g, err2 := strconv.ParseInt(hex[2:4], 16, 0)
	b, err3 := strconv.ParseInt(hex[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}

// ToPDF 將逐字稿匯出成 PDF
func ToPDF(req Request) ([]byte, error) {
	font := coreFont(req.FontName)
	size := req.fontSizeOrDefault()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	// 縮圖置中放在最上方
	if req.ThumbnailPath != "" {
		if _, err := os.Stat(req.ThumbnailPath); err == nil {
			pageW, _ := pdf.GetPageSize()
			imgW := 100.0
			pdf.ImageOptions(req.ThumbnailPath, (pageW-imgW)/2, 0, imgW, 0, true,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.Ln(6)
		}
	}

	// 標題
	pdf.SetFont(font, "B", size+9)
	pdf.MultiCell(0, 10, req.Title, "", "C", false)

	// 頻道 / 作者
	if req.Channel != "" {
		pdf.SetFont(font, "I", size+1)
		pdf.SetTextColor(102, 102, 102)
		pdf.MultiCell(0, 7, "By: "+req.Channel, "", "C", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	// 章節
	if len(req.Chapters) > 0 {
		pdf.SetFont(font, "B", size+4)
		pdf.SetTextColor(0, 102, 204)
		pdf.MultiCell(0, 8, "Chapters", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(font, "", size)
		for _, ch := range req.Chapters {
			pdf.MultiCell(0, 6, fmt.Sprintf("%s - %s", ch.Timestamp, ch.Title), "", "L", false)
		}
		pdf.Ln(3)
	}

	// 重點整理
	if len(req.Takeaways) > 0 {
		pdf.SetFont(font, "B", size+4)
		pdf.SetTextColor(0, 102, 204)
		pdf.MultiCell(0, 8, "Key Takeaways", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(font, "", size)
		for i, takeaway := range req.Takeaways {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, takeaway), "", "L", false)
		}
		pdf.Ln(3)
	}

	// 逐字稿本文
	pdf.SetFont(font, "B", size+4)
	pdf.SetTextColor(0, 102, 204)
	pdf.MultiCell(0, 8, "Transcript", "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(font, "", size)

	for _, para := range strings.Split(req.Transcript, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		writeWithHighlights(pdf, para, req.Highlights)
		pdf.Ln(9)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeWithHighlights 以行內流動方式寫出段落，highlight 片段以其顏色呈現
func writeWithHighlights(pdf *fpdf.Fpdf, text string, highlights []Highlight) {
	const lineH = 6.0

	remaining := text
	for remaining != "" {
		// 找出最先出現的 highlight
		earliest := -1
		var hit Highlight
		for _, h := range highlights {
			if h.Text == "" {
				continue
			}
			if idx := strings.Index(remaining, h.Text); idx != -1 && (earliest == -1 || idx < earliest) {
				earliest = idx
				hit = h
			}
		}
		if earliest == -1 {
			pdf.Write(lineH, remaining)
			break
		}

		pdf.Write(lineH, remaining[:earliest])
		r, g, b := parseHexColor(hit.Color)
		pdf.SetTextColor(r, g, b)
		pdf.Write(lineH, hit.Text)
		pdf.SetTextColor(0, 0, 0)
		remaining = remaining[earliest+len(hit.Text):]
	}
}
