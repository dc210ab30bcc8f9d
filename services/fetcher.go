package services

import (
	"context"
	"strings"
	"time"

	"hyurimbot/errors"
	"hyurimbot/services/logger"
	"hyurimbot/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	navigationTimeout = 30 * time.Second
	renderWait        = 5 * time.Second
)

// PageFetcher headless 브라우저로 페이지를 렌더링해 HTML을 가져온다
// 숲나들e는 자바스크립트 렌더링과 공지 팝업이 있어 정적 요청으로는 수집이 안 된다
type PageFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	logger   logger.Logger
}

// NewPageFetcher 프로세스 전체에서 공유하는 브라우저 allocator 생성
func NewPageFetcher(log logger.Logger, headless bool) *PageFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &PageFetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		logger:   log,
	}
}

// Fetch URL을 렌더링해 goquery 문서로 반환
// 호출 측 ctx가 취소되면(작업 타임아웃 등) 브라우저 탭도 함께 내린다
func (f *PageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeNavigation, "페이지 수집이 취소되었습니다: "+url, err)
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, navigationTimeout)
	defer cancelTimeout()

	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	// 페이지 진입 시 뜨는 공지 alert/confirm 자동 닫기
	chromedp.ListenTarget(timeoutCtx, func(ev interface{}) {
		if _, ok := ev.(*page.EventJavascriptDialogOpening); ok {
			go func() {
				_ = chromedp.Run(timeoutCtx, page.HandleJavaScriptDialog(true))
			}()
		}
	})

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Sleep(renderWait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		f.logger.Error("페이지 로딩 실패 %s: %v", url, err)
		utils.LogCrawl("페이지 로딩 실패 %s: %v", url, err)
		return nil, errors.NewAppError(errors.ErrCodeNavigation, "페이지를 불러오지 못했습니다: "+url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeNavigation, "HTML 파싱에 실패했습니다", err)
	}

	utils.LogCrawl("페이지 수집 완료: %s", url)
	return doc, nil
}

// Close 브라우저 allocator 종료
func (f *PageFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}
