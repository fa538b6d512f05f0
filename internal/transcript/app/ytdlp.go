package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"transcript_service/internal/transcript/domain"
	errprocess "transcript_service/pkg/err"
	"transcript_service/pkg/logger"
)

// ytdlpInfo yt-dlp --dump-json 回傳中會用到的欄位
type ytdlpInfo struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
	Channel   string  `json:"channel"`
	Uploader  string  `json:"uploader"`
}

// YtdlpDownloader 以 yt-dlp 取得音訊、縮圖與影片資訊
type YtdlpDownloader struct {
	binPath     string
	downloadDir string
	runner      commandRunner
	httpClient  *http.Client
}

// NewYtdlpDownloader 建立 yt-dlp 下載器，downloadDir 不存在時會建立
func NewYtdlpDownloader(binPath, downloadDir string) *YtdlpDownloader {
	return &YtdlpDownloader{
		binPath:     binPath,
		downloadDir: downloadDir,
		runner:      &execRunner{},
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// sanitizeFilename 去除檔名中不合法的字元並截斷長度
func sanitizeFilename(title string) string {
	s := invalidFilenameChars.ReplaceAllString(title, "")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// Extract 取得媒體：先探測資訊（不下載），下載縮圖，再抽出 mp3 音訊
func (d *YtdlpDownloader) Extract(ctx context.Context, url string) (*domain.MediaInfo, error) {
	if err := os.MkdirAll(d.downloadDir, 0755); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("url[%s] 建立下載目錄失敗 : %v", url, err))
	}

	// 1. 先取得影片資訊（快速，不下載）
	info := ytdlpInfo{ID: "video", Title: "Unknown"}
	probe, err := d.runner.Run(ctx, d.binPath,
		"--dump-json",
		"--no-download",
		"--no-playlist",
		url,
	)
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(probe.Stdout), &info); jsonErr != nil {
			logger.Log.Warn(fmt.Sprintf("url[%s] 解析 yt-dlp 資訊失敗 : %v", url, jsonErr))
		}
	} else {
		logger.Log.Warn(fmt.Sprintf("url[%s] yt-dlp 資訊探測失敗 : %v", url, err))
	}
	if info.Channel == "" {
		info.Channel = info.Uploader
	}
	// 檔名都由探測到的 id 組成，先清掉不能進檔名的字元
	info.ID = sanitizeFilename(info.ID)
	if info.ID == "" {
		info.ID = "video"
	}

	// 2. 下載縮圖，失敗不影響主流程
	thumbnailPath := d.downloadThumbnail(ctx, info.Thumbnail, info.ID)

	// 3. 下載並抽出音訊
	outputTemplate := filepath.Join(d.downloadDir, info.ID+".%(ext)s")
	result, err := d.runner.Run(ctx, d.binPath,
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"--output", outputTemplate,
		"--no-playlist",
		"--quiet",
		url,
	)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("url[%s] yt-dlp 下載失敗 : %v, stderr: %s", url, err, result.Stderr))
	}

	audioPath := filepath.Join(d.downloadDir, info.ID+".mp3")
	if _, err := os.Stat(audioPath); err != nil {
		// 副檔名不一定是 mp3，找同 id 的其他檔案
		matches, _ := filepath.Glob(filepath.Join(d.downloadDir, info.ID+"*"))
		for _, m := range matches {
			if m != thumbnailPath {
				audioPath = m
				break
			}
		}
		if _, err := os.Stat(audioPath); err != nil {
			return nil, errprocess.Set(fmt.Sprintf("url[%s] 找不到下載完成的音訊檔 : %s", url, audioPath))
		}
	}

	return &domain.MediaInfo{
		AudioPath:     audioPath,
		Title:         info.Title,
		Duration:      info.Duration,
		ThumbnailPath: thumbnailPath,
		Channel:       info.Channel,
	}, nil
}

// downloadThumbnail 下載縮圖並回傳本地路徑，任何錯誤都回傳空字串
func (d *YtdlpDownloader) downloadThumbnail(ctx context.Context, thumbnailURL, videoID string) string {
	if thumbnailURL == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return ""
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("videoID[%s] 下載縮圖失敗 : %v", videoID, err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	thumbnailPath := filepath.Join(d.downloadDir, videoID+"_thumb.jpg")
	file, err := os.Create(thumbnailPath)
	if err != nil {
		return ""
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return ""
	}
	return thumbnailPath
}

// Cleanup 移除下載的音訊檔，縮圖保留給 thumbnail endpoint 使用
func (d *YtdlpDownloader) Cleanup(audioPath string) {
	if audioPath == "" {
		return
	}
	if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn(fmt.Sprintf("清理音訊檔失敗 audioPath[%s] : %v", audioPath, err))
	}
}
