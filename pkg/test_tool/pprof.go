package testtool

import (
	"net/http"
	_ "net/http/pprof" // 匯入後會自動註冊 pprof endpoint

	"transcript_service/pkg/config"
	"transcript_service/pkg/logger"
)

// StartPprof 非正式環境時在 :6060 啟動 pprof 監控伺服器
// 轉錄與 LLM 階段耗時都以分鐘計，goroutine / heap profile 是主要的排查工具
func StartPprof() {
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return
	}

	go func() {
		logger.Log.Info("Starting pprof server on :6060")
		if err := http.ListenAndServe("127.0.0.1:6060", nil); err != nil {
			logger.Log.Infof("pprof server failed: ", err)
		}
	}()
}

// pprof 端點：
// 	•	/debug/pprof/goroutine → 檢查是否有 pipeline goroutine 卡住
// 	•	/debug/pprof/heap → 長逐字稿的記憶體分配
// 	•	/debug/pprof/profile → 執行 30 秒 CPU 分析
