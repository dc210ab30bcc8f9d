package services

import (
	"testing"
	"time"

	"hyurimbot/constants"
	"hyurimbot/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobQueueRunsBasicCrawl(t *testing.T) {
	db := newTestDB(t)
	forest := seedForest(t, db, "0101")
	svc := newTestCrawlService(db, staticFetcher(t, listPageHTML))

	queue := NewJobQueue(svc, logger.NewDefaultLogger(logger.ErrorLevel), 4)
	defer queue.Stop()

	job, err := queue.Enqueue(constants.JobTypeBasic, forest.ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)

	require.Eventually(t, func() bool {
		j, err := queue.Get(job.ID)
		return err == nil && j.Status == constants.JobStatusDone
	}, 5*time.Second, 50*time.Millisecond)

	done, err := queue.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, done.Saved)
	assert.Equal(t, 0, done.Failed)
	assert.NotNil(t, done.FinishedAt)
}

func TestJobQueueRecordsFailure(t *testing.T) {
	db := newTestDB(t)
	// 홈페이지 없는 휴양림은 작업이 실패 상태로 끝난다
	forest := seedForest(t, db, "")
	svc := newTestCrawlService(db, staticFetcher(t, listPageHTML))

	queue := NewJobQueue(svc, logger.NewDefaultLogger(logger.ErrorLevel), 4)
	defer queue.Stop()

	job, err := queue.Enqueue(constants.JobTypeBasic, forest.ID, 0)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		j, err := queue.Get(job.ID)
		return err == nil && j.Status == constants.JobStatusFailed
	}, 5*time.Second, 50*time.Millisecond)

	failed, _ := queue.Get(job.ID)
	assert.NotEmpty(t, failed.Message)
}

func TestJobQueueUnknownJob(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCrawlService(db, staticFetcher(t, listPageHTML))

	queue := NewJobQueue(svc, logger.NewDefaultLogger(logger.ErrorLevel), 4)
	defer queue.Stop()

	_, err := queue.Get("no-such-job")
	assert.Error(t, err)
}

func TestJobQueueEvictsFinishedJobs(t *testing.T) {
	db := newTestDB(t)
	forest := seedForest(t, db, "0101")
	svc := newTestCrawlService(db, staticFetcher(t, listPageHTML))

	queue := NewJobQueue(svc, logger.NewDefaultLogger(logger.ErrorLevel), 4)
	defer queue.Stop()

	// 보존 기간이 지난 완료 작업은 다음 등록 때 정리된다
	old := time.Now().Add(-2 * jobRetention)
	fresh := time.Now()
	queue.mu.Lock()
	queue.jobs["오래된작업"] = &CrawlJob{ID: "오래된작업", Status: constants.JobStatusDone, FinishedAt: &old}
	queue.jobs["최근작업"] = &CrawlJob{ID: "최근작업", Status: constants.JobStatusDone, FinishedAt: &fresh}
	queue.mu.Unlock()

	_, err := queue.Enqueue(constants.JobTypeBasic, forest.ID, 0)
	require.NoError(t, err)

	_, err = queue.Get("오래된작업")
	assert.Error(t, err)
	_, err = queue.Get("최근작업")
	assert.NoError(t, err)
}

func TestJobQueueStatusSnapshotIsCopy(t *testing.T) {
	db := newTestDB(t)
	forest := seedForest(t, db, "0101")
	svc := newTestCrawlService(db, staticFetcher(t, listPageHTML))

	queue := NewJobQueue(svc, logger.NewDefaultLogger(logger.ErrorLevel), 4)
	defer queue.Stop()

	job, err := queue.Enqueue(constants.JobTypeBasic, forest.ID, 0)
	require.NoError(t, err)

	// 호출자가 받은 복사본을 바꿔도 큐 내부 상태는 변하지 않는다
	job.Status = "조작된상태"
	fresh, err := queue.Get(job.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "조작된상태", fresh.Status)
}
