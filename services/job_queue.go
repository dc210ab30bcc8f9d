package services

import (
	"context"
	"sync"
	"time"

	"hyurimbot/constants"
	"hyurimbot/errors"
	"hyurimbot/services/logger"

	"github.com/google/uuid"
)

const (
	jobTimeout   = 5 * time.Minute
	jobRetention = time.Hour
)

// CrawlJob 큐에 적재된 크롤링 작업과 진행 상태
type CrawlJob struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	ForestID        uint       `json:"forest_id"`
	AccommodationID uint       `json:"accommodation_id,omitempty"`
	Status          string     `json:"status"`
	Message         string     `json:"message,omitempty"`
	Saved           int        `json:"saved"`
	Failed          int        `json:"failed"`
	CreatedAt       time.Time  `json:"created_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

// JobQueue 크롤링 작업 큐
// 워커 한 개가 순차 처리한다. 브라우저 세션을 동시에 여러 개 띄우지 않기 위한 제약.
type JobQueue struct {
	crawl  *CrawlService
	logger logger.Logger

	mu    sync.RWMutex
	jobs  map[string]*CrawlJob
	queue chan string

	stopOnce sync.Once
	done     chan struct{}
}

func NewJobQueue(crawl *CrawlService, log logger.Logger, buffer int) *JobQueue {
	if buffer <= 0 {
		buffer = 32
	}
	q := &JobQueue{
		crawl:  crawl,
		logger: log,
		jobs:   make(map[string]*CrawlJob),
		queue:  make(chan string, buffer),
		done:   make(chan struct{}),
	}
	go q.worker()
	return q
}

// Enqueue 작업 등록 후 작업 ID 반환, 큐가 가득 차면 에러
func (q *JobQueue) Enqueue(jobType string, forestID, accommodationID uint) (*CrawlJob, error) {
	job := &CrawlJob{
		ID:              uuid.NewString(),
		Type:            jobType,
		ForestID:        forestID,
		AccommodationID: accommodationID,
		Status:          constants.JobStatusPending,
		CreatedAt:       time.Now(),
	}

	q.mu.Lock()
	q.pruneLocked(time.Now())
	q.jobs[job.ID] = job
	q.mu.Unlock()

	select {
	case q.queue <- job.ID:
		q.logger.Info("크롤링 작업 등록: %s (%s, 휴양림 %d)", job.ID, job.Type, job.ForestID)
		return q.snapshot(job.ID), nil
	default:
		q.mu.Lock()
		delete(q.jobs, job.ID)
		q.mu.Unlock()
		return nil, errors.NewAppError(errors.ErrCodeJobQueue, "크롤링 작업 큐가 가득 찼습니다", nil)
	}
}

// Get 작업 상태 조회, 복사본 반환
func (q *JobQueue) Get(id string) (*CrawlJob, error) {
	job := q.snapshot(id)
	if job == nil {
		return nil, errors.NewAppError(errors.ErrCodeJobNotFound, "작업을 찾을 수 없습니다: "+id, errors.ErrJobNotFound)
	}
	return job, nil
}

func (q *JobQueue) snapshot(id string) *CrawlJob {
	q.mu.RLock()
	defer q.mu.RUnlock()
	job, ok := q.jobs[id]
	if !ok {
		return nil
	}
	cp := *job
	return &cp
}

// Stop 워커 종료
func (q *JobQueue) Stop() {
	q.stopOnce.Do(func() {
		close(q.done)
	})
}

func (q *JobQueue) worker() {
	for {
		select {
		case <-q.done:
			return
		case id := <-q.queue:
			q.run(id)
		}
	}
}

func (q *JobQueue) run(id string) {
	q.update(id, func(j *CrawlJob) {
		j.Status = constants.JobStatusRunning
	})

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	job := q.snapshot(id)
	if job == nil {
		return
	}

	var result *CrawlResult
	var err error
	switch job.Type {
	case constants.JobTypeBasic:
		result, err = q.crawl.CrawlBasic(ctx, job.ForestID)
	case constants.JobTypeDetailed:
		result, err = q.crawl.CrawlDetailed(ctx, job.ForestID, job.AccommodationID)
	case constants.JobTypeDiscount:
		result, err = q.crawl.CrawlDiscounts(ctx, job.ForestID)
	default:
		err = errors.NewAppError(errors.ErrCodeValidation, "알 수 없는 작업 종류입니다: "+job.Type, nil)
	}

	now := time.Now()
	q.update(id, func(j *CrawlJob) {
		j.FinishedAt = &now
		if err != nil {
			j.Status = constants.JobStatusFailed
			j.Message = err.Error()
			return
		}
		j.Status = constants.JobStatusDone
		j.Message = result.Message
		j.Saved = result.Saved
		j.Failed = result.Failed
	})

	if err != nil {
		q.logger.Error("크롤링 작업 실패 %s: %v", id, err)
	} else {
		q.logger.Info("크롤링 작업 완료 %s: %s", id, result.Message)
	}
}

// pruneLocked 보존 기간이 지난 완료 작업 제거, mu를 잡은 상태에서 호출
func (q *JobQueue) pruneLocked(now time.Time) {
	for id, job := range q.jobs {
		if job.FinishedAt != nil && now.Sub(*job.FinishedAt) > jobRetention {
			delete(q.jobs, id)
		}
	}
}

func (q *JobQueue) update(id string, fn func(*CrawlJob)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if job, ok := q.jobs[id]; ok {
		fn(job)
	}
}
