package repository

import (
	"fmt"
	"sync"
	"testing"

	"transcript_service/internal/transcript/domain"

	"github.com/stretchr/testify/assert"
)

// 測試 JobRepository 基本生命週期
func TestJobRepositoryLifecycle(t *testing.T) {
	repo := NewJobRepository()

	// **情境 1: 建立後立即可查詢，狀態為 queued**
	t.Run("建立後立即可查詢", func(t *testing.T) {
		err := repo.Create("job-1")
		assert.NoError(t, err)

		job, err := repo.Get("job-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobQueued, job.Status)
		assert.Equal(t, 0, job.Progress)
		assert.Nil(t, job.Result)
		assert.Empty(t, job.Error)
	})

	// **情境 2: 查詢不存在的工作**
	t.Run("查詢不存在的工作", func(t *testing.T) {
		_, err := repo.Get("no-such-job")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	// **情境 3: 重複建立同一 id**
	t.Run("重複建立同一id", func(t *testing.T) {
		err := repo.Create("job-1")
		assert.Error(t, err)
	})
}

// 測試進度更新規則
func TestJobRepositorySetProgress(t *testing.T) {
	repo := NewJobRepository()
	assert.NoError(t, repo.Create("job-1"))

	// **情境 1: 正常推進狀態與進度**
	t.Run("正常推進狀態與進度", func(t *testing.T) {
		err := repo.SetProgress("job-1", domain.JobDownloading, 10, "下載音訊中...")
		assert.NoError(t, err)

		job, _ := repo.Get("job-1")
		assert.Equal(t, domain.JobDownloading, job.Status)
		assert.Equal(t, 10, job.Progress)
		assert.Equal(t, "下載音訊中...", job.Message)
	})

	// **情境 2: progress 不會倒退**
	t.Run("progress不會倒退", func(t *testing.T) {
		assert.NoError(t, repo.SetProgress("job-1", domain.JobTranscribing, 30, "轉錄中"))
		assert.NoError(t, repo.SetProgress("job-1", domain.JobTranscribing, 20, "轉錄中"))

		job, _ := repo.Get("job-1")
		assert.Equal(t, 30, job.Progress)
	})

	// **情境 3: 更新不存在的工作**
	t.Run("更新不存在的工作", func(t *testing.T) {
		err := repo.SetProgress("no-such-job", domain.JobDownloading, 10, "")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}

// 測試終態的不變量：result / error 恰好只有一個
func TestJobRepositoryTerminalStates(t *testing.T) {
	// **情境 1: 完成後 result 有值且 error 為空**
	t.Run("完成後result有值", func(t *testing.T) {
		repo := NewJobRepository()
		assert.NoError(t, repo.Create("job-1"))

		result := &domain.TranscriptResult{Title: "Test", Transcript: "內容"}
		assert.NoError(t, repo.Complete("job-1", result, "完成！"))

		job, _ := repo.Get("job-1")
		assert.Equal(t, domain.JobComplete, job.Status)
		assert.Equal(t, 100, job.Progress)
		assert.NotNil(t, job.Result)
		assert.Empty(t, job.Error)
	})

	// **情境 2: 失敗後 error 有值且 result 為空**
	t.Run("失敗後error有值", func(t *testing.T) {
		repo := NewJobRepository()
		assert.NoError(t, repo.Create("job-1"))

		assert.NoError(t, repo.Fail("job-1", "下載階段失敗"))

		job, _ := repo.Get("job-1")
		assert.Equal(t, domain.JobError, job.Status)
		assert.Nil(t, job.Result)
		assert.Equal(t, "下載階段失敗", job.Error)
	})

	// **情境 3: 終態後不再接受任何更新**
	t.Run("終態後不再接受更新", func(t *testing.T) {
		repo := NewJobRepository()
		assert.NoError(t, repo.Create("job-1"))
		assert.NoError(t, repo.Complete("job-1", &domain.TranscriptResult{Title: "Test"}, "完成！"))

		assert.NoError(t, repo.SetProgress("job-1", domain.JobDownloading, 10, "不應生效"))
		assert.NoError(t, repo.Fail("job-1", "不應生效"))

		job, _ := repo.Get("job-1")
		assert.Equal(t, domain.JobComplete, job.Status)
		assert.NotNil(t, job.Result)
		assert.Empty(t, job.Error)
	})
}

// 測試多工作之間互不干擾
func TestJobRepositoryIsolation(t *testing.T) {
	repo := NewJobRepository()
	assert.NoError(t, repo.Create("job-a"))
	assert.NoError(t, repo.Create("job-b"))

	assert.NoError(t, repo.Complete("job-a", &domain.TranscriptResult{Title: "A"}, "完成！"))
	assert.NoError(t, repo.Fail("job-b", "轉錄階段失敗"))

	jobA, _ := repo.Get("job-a")
	jobB, _ := repo.Get("job-b")

	assert.Equal(t, domain.JobComplete, jobA.Status)
	assert.Equal(t, "A", jobA.Result.Title)
	assert.Equal(t, domain.JobError, jobB.Status)
	assert.Nil(t, jobB.Result)
}

// 測試併發讀寫不會互相污染
func TestJobRepositoryConcurrency(t *testing.T) {
	repo := NewJobRepository()

	const jobCount = 20
	var wg sync.WaitGroup

	for i := 0; i < jobCount; i++ {
		jobID := fmt.Sprintf("job-%d", i)
		assert.NoError(t, repo.Create(jobID))

		wg.Add(2)
		// 寫入端：逐步推進到完成
		go func(id string, n int) {
			defer wg.Done()
			repo.SetProgress(id, domain.JobDownloading, 10, "下載音訊中...")
			repo.SetProgress(id, domain.JobTranscribing, 30, "轉錄中")
			repo.Complete(id, &domain.TranscriptResult{Title: id}, "完成！")
		}(jobID, i)

		// 讀取端：任何時刻都不能看到不一致的組合
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				job, err := repo.Get(id)
				assert.NoError(t, err)
				if job.Status == domain.JobComplete {
					assert.NotNil(t, job.Result)
					assert.Equal(t, id, job.Result.Title)
				} else {
					assert.Nil(t, job.Result)
				}
			}
		}(jobID)
	}

	wg.Wait()

	for i := 0; i < jobCount; i++ {
		job, err := repo.Get(fmt.Sprintf("job-%d", i))
		assert.NoError(t, err)
		assert.Equal(t, domain.JobComplete, job.Status)
		assert.Equal(t, job.ID, job.Result.Title)
	}
}
