package domain

import "errors"

// 各層共用的錯誤，handler 依 errors.Is 對應 HTTP 狀態碼
var (
	// ErrInvalidInput 送交的 URL 格式不合法，不會建立任何 Job
	ErrInvalidInput = errors.New("invalid input")
	// ErrJobNotFound 查詢不存在的 job id
	ErrJobNotFound = errors.New("job not found")
	// ErrProcessing LLM 後處理失敗或回傳格式不正確
	ErrProcessing = errors.New("narrative processing failed")
	// ErrExport 文件匯出失敗
	ErrExport = errors.New("export failed")
)
