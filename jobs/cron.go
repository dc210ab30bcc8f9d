package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// IndexReloader 추천 인덱스 재구축 인터페이스
type IndexReloader interface {
	Reload(ctx context.Context) error
}

var indexReloader IndexReloader

// SetIndexReloader 재구축 구현체 주입
func SetIndexReloader(reloader IndexReloader) {
	indexReloader = reloader
}

// InitCronJobs 매일 0시에 추천 인덱스 재구축
func InitCronJobs(c *cron.Cron) error {
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Printf("추천 인덱스 야간 재구축 시작: %v", time.Now())
		if indexReloader == nil {
			log.Printf("IndexReloader가 설정되지 않았습니다")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := indexReloader.Reload(ctx); err != nil {
			log.Printf("추천 인덱스 재구축 실패: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("크론 작업 등록 완료")
	return nil
}
