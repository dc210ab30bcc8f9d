package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hyurimbot/errors"
	"hyurimbot/models"
	"hyurimbot/services/logger"
	"hyurimbot/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	facilityListURL     = "https://www.foresttrip.go.kr/pot/rm/fa/selectFcltsArmpListView.do?hmpgId=%s&menuId=002002001"
	discountGuidanceURL = "https://www.foresttrip.go.kr/pot/uf/ug/selectFcltUseGdncView.do?hmpgId=%s&menuId=002004001&ruleId=201"
	foresttripHost      = "https://www.foresttrip.go.kr"
)

// Fetcher 페이지 수집 인터페이스
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// CrawlResult 크롤링 작업 결과 요약
type CrawlResult struct {
	Saved   int    `json:"saved"`
	Failed  int    `json:"failed"`
	Message string `json:"message"`
}

// CrawlServiceOptions CrawlService 의존성
type CrawlServiceOptions struct {
	DB             *gorm.DB
	Fetcher        Fetcher
	Matcher        *FacilityMatcher
	Extractor      *DetailExtractor
	DiscountParser *DiscountParser
	Logger         logger.Logger
	Melody         *melody.Melody
	Redis          *redis.Client
}

// CrawlService 숲나들e 크롤링 오케스트레이터
type CrawlService struct {
	db             *gorm.DB
	fetcher        Fetcher
	matcher        *FacilityMatcher
	extractor      *DetailExtractor
	discountParser *DiscountParser
	logger         logger.Logger
	melody         *melody.Melody
	rdb            *redis.Client
}

func NewCrawlService(opts CrawlServiceOptions) *CrawlService {
	return &CrawlService{
		db:             opts.DB,
		fetcher:        opts.Fetcher,
		matcher:        opts.Matcher,
		extractor:      opts.Extractor,
		discountParser: opts.DiscountParser,
		logger:         opts.Logger,
		melody:         opts.Melody,
		rdb:            opts.Redis,
	}
}

// loadForest 홈페이지가 있는 휴양림 조회
func (s *CrawlService) loadForest(forestID uint) (*models.Forest, error) {
	var forest models.Forest
	if err := s.db.First(&forest, forestID).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBNotFound, "휴양림을 찾을 수 없습니다", errors.ErrForestNotFound)
	}
	if !forest.HasHomepage() {
		return nil, errors.NewAppError(errors.ErrCodeNoHomepage,
			"숲나들e 페이지가 없는 휴양림입니다: "+forest.Name, errors.ErrForestWithoutHomepage)
	}
	return &forest, nil
}

// CrawlBasic 시설 목록 페이지를 수집해 Facility와 기본 Accommodation 행 upsert
func (s *CrawlService) CrawlBasic(ctx context.Context, forestID uint) (*CrawlResult, error) {
	forest, err := s.loadForest(forestID)
	if err != nil {
		return nil, err
	}

	utils.LogCrawl("기본 크롤링 시작: %s", forest.Name)
	doc, err := s.fetcher.Fetch(ctx, fmt.Sprintf(facilityListURL, forest.HmpgID))
	if err != nil {
		return nil, err
	}

	rows := s.extractor.ParseListingRows(doc)
	result := &CrawlResult{}

	for _, row := range rows {
		if err := s.upsertListingRow(forest.ID, row); err != nil {
			s.logger.Error("시설 저장 실패 %s: %v", row.Name, err)
			result.Failed++
			continue
		}
		result.Saved++
	}

	result.Message = fmt.Sprintf("%s 기본 크롤링 완료: 저장 %d건, 실패 %d건", forest.Name, result.Saved, result.Failed)
	s.logger.Info(result.Message)
	s.broadcast("crawl.basic", forest.ID, result)
	return result, nil
}

// upsertListingRow 목록 행을 Facility와 골격 Accommodation으로 저장
func (s *CrawlService) upsertListingRow(forestID uint, row ListingRow) error {
	facility := models.Facility{
		ForestID:        forestID,
		Name:            row.Name,
		FacilityType:    row.FacilityType,
		Capacity:        row.Capacity,
		Area:            row.Area,
		CheckinTime:     row.CheckinTime,
		PriceOffWeekday: row.PriceOffWeekday,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "forest_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"facility_type", "capacity", "area", "checkin_time", "price_off_weekday", "updated_at"}),
	}).Create(&facility).Error; err != nil {
		return err
	}

	offWeekend, peakWeekday, peakWeekend := DerivePrices(row.PriceOffWeekday)
	accommodation := models.Accommodation{
		ForestID:         forestID,
		Name:             row.Name,
		FacilityType:     row.FacilityType,
		Capacity:         row.Capacity,
		Area:             row.Area,
		CheckinTime:      row.CheckinTime,
		CheckoutTime:     "11:00",
		PriceOffWeekday:  row.PriceOffWeekday,
		PriceOffWeekend:  offWeekend,
		PricePeakWeekday: peakWeekday,
		PricePeakWeekend: peakWeekend,
	}
	// 기본 크롤링은 상세 크롤링이 채운 편의시설을 덮어쓰지 않는다
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "forest_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"facility_type", "capacity", "area", "checkin_time", "price_off_weekday", "price_off_weekend", "price_peak_weekday", "price_peak_weekend", "updated_at"}),
	}).Create(&accommodation).Error
}

// CrawlDetailed 단일 숙박시설의 상세 페이지 수집
func (s *CrawlService) CrawlDetailed(ctx context.Context, forestID, accommodationID uint) (*CrawlResult, error) {
	forest, err := s.loadForest(forestID)
	if err != nil {
		return nil, err
	}

	var accommodation models.Accommodation
	if err := s.db.Where("id = ? AND forest_id = ?", accommodationID, forestID).
		First(&accommodation).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBNotFound, "숙박시설을 찾을 수 없습니다", err)
	}

	utils.LogCrawl("상세 크롤링 시작: %s / %s", forest.Name, accommodation.Name)
	listDoc, err := s.fetcher.Fetch(ctx, fmt.Sprintf(facilityListURL, forest.HmpgID))
	if err != nil {
		return nil, err
	}

	candidate, err := s.matcher.Match(accommodation.Name, s.extractor.CollectFacilityLinks(listDoc))
	if err != nil {
		return nil, err
	}

	detailDoc, err := s.fetcher.Fetch(ctx, resolveDetailURL(candidate.Href))
	if err != nil {
		return nil, err
	}

	detail, err := s.extractor.Extract(detailDoc)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeExtractionEmpty {
			// 상세 테이블이 없는 페이지는 목록 행 수준으로 강등해 저장한다
			return s.applyListingFallback(forest, &accommodation, listDoc)
		}
		return nil, err
	}

	if err := s.applyDetail(&accommodation, detail); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "상세 정보 저장에 실패했습니다", err)
	}

	result := &CrawlResult{
		Saved:   1,
		Message: fmt.Sprintf("%s 상세 크롤링 완료: %s", forest.Name, accommodation.Name),
	}
	s.logger.Info(result.Message)
	s.broadcast("crawl.detailed", forest.ID, result)
	return result, nil
}

// applyListingFallback 상세 추출이 비었을 때 이미 받아 둔 목록 행으로 대체 저장
func (s *CrawlService) applyListingFallback(forest *models.Forest, accommodation *models.Accommodation, listDoc *goquery.Document) (*CrawlResult, error) {
	row, ok := findListingRow(accommodation.Name, s.extractor.ParseListingRows(listDoc))
	if !ok {
		return nil, errors.NewAppError(errors.ErrCodeExtractionEmpty,
			"상세 페이지와 목록 행 모두에서 정보를 얻지 못했습니다: "+accommodation.Name, errors.ErrEmptyExtraction)
	}

	utils.LogCrawl("상세 테이블 없음, 목록 행으로 대체: %s / %s", forest.Name, accommodation.Name)
	offWeekend, peakWeekday, peakWeekend := DerivePrices(row.PriceOffWeekday)
	detail := &AccommodationDetail{
		Capacity:         row.Capacity,
		Area:             row.Area,
		CheckinTime:      row.CheckinTime,
		PriceOffWeekday:  row.PriceOffWeekday,
		PriceOffWeekend:  offWeekend,
		PricePeakWeekday: peakWeekday,
		PricePeakWeekend: peakWeekend,
	}
	if err := s.applyDetail(accommodation, detail); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "상세 정보 저장에 실패했습니다", err)
	}

	result := &CrawlResult{
		Saved:   1,
		Message: fmt.Sprintf("%s 상세 크롤링 완료(목록 행 기준): %s", forest.Name, accommodation.Name),
	}
	s.logger.Info(result.Message)
	s.broadcast("crawl.detailed", forest.ID, result)
	return result, nil
}

// findListingRow 정규화한 이름으로 목록 행 검색
func findListingRow(name string, rows []ListingRow) (ListingRow, bool) {
	target := normalizeFacilityName(name)
	for _, row := range rows {
		if namesContain(target, normalizeFacilityName(row.Name)) {
			return row, true
		}
	}
	return ListingRow{}, false
}

// applyDetail 추출 결과를 기존 행에 반영, 0값은 기존 값 유지
func (s *CrawlService) applyDetail(accommodation *models.Accommodation, detail *AccommodationDetail) error {
	if detail.Capacity > 0 {
		accommodation.Capacity = detail.Capacity
	}
	if detail.Area > 0 {
		accommodation.Area = detail.Area
	}
	if detail.CheckinTime != "" {
		accommodation.CheckinTime = detail.CheckinTime
	}
	if detail.CheckoutTime != "" {
		accommodation.CheckoutTime = detail.CheckoutTime
	}
	if detail.PriceOffWeekday > 0 {
		accommodation.PriceOffWeekday = detail.PriceOffWeekday
	}
	if detail.PriceOffWeekend > 0 {
		accommodation.PriceOffWeekend = detail.PriceOffWeekend
	}
	if detail.PricePeakWeekday > 0 {
		accommodation.PricePeakWeekday = detail.PricePeakWeekday
	}
	if detail.PricePeakWeekend > 0 {
		accommodation.PricePeakWeekend = detail.PricePeakWeekend
	}
	if len(detail.Amenities) > 0 {
		accommodation.Amenities = strings.Join(detail.Amenities, ";")
	}
	if detail.UsageInfo != "" {
		accommodation.UsageInfo = detail.UsageInfo
	}
	return s.db.Save(accommodation).Error
}

// CrawlDiscounts 이용요금 감면 안내 페이지 수집
func (s *CrawlService) CrawlDiscounts(ctx context.Context, forestID uint) (*CrawlResult, error) {
	forest, err := s.loadForest(forestID)
	if err != nil {
		return nil, err
	}

	utils.LogCrawl("할인정책 크롤링 시작: %s", forest.Name)
	doc, err := s.fetcher.Fetch(ctx, fmt.Sprintf(discountGuidanceURL, forest.HmpgID))
	if err != nil {
		return nil, err
	}

	policies := s.discountParser.ParsePolicies(doc, forest.ID)
	result := &CrawlResult{}

	for _, policy := range policies {
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "forest_id"}, {Name: "policy_category"}, {Name: "target_group"}},
			DoUpdates: clause.AssignmentColumns([]string{"discount_rate", "original_text", "conditions", "required_documents", "crawled_at"}),
		}).Create(&policy).Error; err != nil {
			s.logger.Error("할인 정책 저장 실패 %s/%s: %v", policy.PolicyCategory, policy.TargetGroup, err)
			result.Failed++
			continue
		}
		result.Saved++
	}

	result.Message = fmt.Sprintf("%s 할인정책 크롤링 완료: 저장 %d건, 실패 %d건", forest.Name, result.Saved, result.Failed)
	s.logger.Info(result.Message)
	s.broadcast("crawl.discount", forest.ID, result)
	return result, nil
}

// resolveDetailURL 목록 페이지의 상대 경로를 절대 URL로 변환
func resolveDetailURL(href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return foresttripHost + href
	default:
		return foresttripHost + "/pot/rm/fa/" + href
	}
}

// broadcast 대시보드 websocket으로 크롤링 이벤트 전송
// 수집 상태가 바뀌므로 휴양림 목록 캐시도 함께 비운다
func (s *CrawlService) broadcast(event string, forestID uint, result *CrawlResult) {
	if s.rdb != nil {
		DeleteFromRedis(context.Background(), s.rdb, CacheKeyForestList)
	}
	if s.melody == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":      event,
		"forest_id": forestID,
		"result":    result,
	})
	if err != nil {
		return
	}
	s.melody.Broadcast(payload)
}
