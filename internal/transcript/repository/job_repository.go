package repository

import (
	"sync"

	"transcript_service/internal/transcript/domain"
)

// JobRepository 管理所有轉錄工作的記憶體 registry
// 行程存活期間不淘汰任何工作（單機單人部署，視為可接受）
type JobRepository interface {
	Create(jobID string) error
	Get(jobID string) (domain.Job, error)
	SetProgress(jobID string, status domain.JobStatus, progress int, message string) error
	Complete(jobID string, result *domain.TranscriptResult, message string) error
	Fail(jobID string, message string) error
}

type jobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewJobRepository 建立一個空的 in-memory registry
func NewJobRepository() JobRepository {
	return &jobRepository{
		jobs: make(map[string]*domain.Job),
	}
}

// Create 建立新工作，初始狀態 queued / progress 0
func (r *jobRepository) Create(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[jobID]; ok {
		return domain.ErrInvalidInput
	}

	r.jobs[jobID] = &domain.Job{
		ID:       jobID,
		Status:   domain.JobQueued,
		Progress: 0,
		Message:  "排程中...",
	}
	return nil
}

// Get 回傳工作目前狀態的 snapshot
// 在鎖內複製整個結構，讀取端不會看到寫到一半的組合
func (r *jobRepository) Get(jobID string) (domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return *job, nil
}

// SetProgress 更新進行中工作的狀態、進度與訊息
// 終態工作不再接受更新；progress 只會往前不會倒退
func (r *jobRepository) SetProgress(jobID string, status domain.JobStatus, progress int, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return nil
	}

	job.Status = status
	if progress > job.Progress {
		job.Progress = progress
	}
	job.Message = message
	return nil
}

// Complete 將工作轉為 complete 終態並同時發佈結果
// 狀態與 Result 在同一次上鎖內寫入，不會出現 complete 但結果為空的觀察
func (r *jobRepository) Complete(jobID string, result *domain.TranscriptResult, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return nil
	}

	job.Status = domain.JobComplete
	job.Progress = 100
	job.Message = message
	job.Result = result
	job.Error = ""
	return nil
}

// Fail 將工作轉為 error 終態並記錄失敗原因
func (r *jobRepository) Fail(jobID string, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return nil
	}

	job.Status = domain.JobError
	job.Message = message
	job.Error = message
	job.Result = nil
	return nil
}
