package export

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// ToDOCX 將逐字稿匯出成 DOCX
// go-docx 的字體大小單位是 half-point，所以 pt 要乘二
func ToDOCX(req Request) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	size := req.fontSizeOrDefault()
	bodySize := strconv.Itoa(int(size) * 2)
	headingSize := strconv.Itoa(int(size+4) * 2)
	titleSize := strconv.Itoa(int(size+9) * 2)

	// 縮圖置中放在最上方，加不進去就略過
	if req.ThumbnailPath != "" {
		if _, err := os.Stat(req.ThumbnailPath); err == nil {
			para := w.AddParagraph().Justification("center")
			if _, err := para.AddInlineDrawingFrom(req.ThumbnailPath); err != nil {
				return nil, fmt.Errorf("docx 加入縮圖失敗: %w", err)
			}
		}
	}

	// 標題
	w.AddParagraph().Justification("center").AddText(req.Title).Size(titleSize).Bold()

	// 頻道 / 作者
	if req.Channel != "" {
		w.AddParagraph().Justification("center").AddText("By: " + req.Channel).Size(bodySize).Italic()
	}

	// 章節
	if len(req.Chapters) > 0 {
		w.AddParagraph().AddText("Chapters").Size(headingSize).Bold()
		for _, ch := range req.Chapters {
			w.AddParagraph().AddText(fmt.Sprintf("%s - %s", ch.Timestamp, ch.Title)).Size(bodySize)
		}
	}

	// 重點整理
	if len(req.Takeaways) > 0 {
		w.AddParagraph().AddText("Key Takeaways").Size(headingSize).Bold()
		for i, takeaway := range req.Takeaways {
			w.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, takeaway)).Size(bodySize)
		}
	}

	// 逐字稿本文
	w.AddParagraph().AddText("Transcript").Size(headingSize).Bold()
	for _, para := range strings.Split(req.Transcript, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		w.AddParagraph().AddText(para).Size(bodySize)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
