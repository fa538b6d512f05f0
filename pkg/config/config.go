package config

import "time"

// Transcript definition transcript_service YAML structure
type Transcript struct {
	IP   string `mapstructure:"ip"`
	Port string `mapstructure:"port"`

	// DownloadDir 音訊與縮圖的工作目錄
	DownloadDir string `mapstructure:"download_dir"`
	// StaticDir 前端靜態檔目錄
	StaticDir string `mapstructure:"static_dir"`

	// StageTimeout 單一 pipeline 階段的逾時，0 表示不限制
	StageTimeout time.Duration `mapstructure:"stage_timeout"`

	Ytdlp   YtdlpConfig   `mapstructure:"ytdlp"`
	Whisper WhisperConfig `mapstructure:"whisper"`
	Ollama  OllamaConfig  `mapstructure:"ollama"`
}

// YtdlpConfig definition yt-dlp setting
type YtdlpConfig struct {
	BinPath string `mapstructure:"bin_path"`
}

// WhisperConfig definition whisper.cpp setting
type WhisperConfig struct {
	BinPath   string `mapstructure:"bin_path"`
	ModelPath string `mapstructure:"model_path"`
	Language  string `mapstructure:"language"`
}

// OllamaConfig definition ollama setting
type OllamaConfig struct {
	URL     string        `mapstructure:"url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}
