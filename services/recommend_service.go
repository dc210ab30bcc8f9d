package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"hyurimbot/errors"
	"hyurimbot/models"
	"hyurimbot/services/logger"
	"hyurimbot/utils"

	"github.com/redis/go-redis/v9"
	"github.com/schollz/closestmatch"
	"gorm.io/gorm"
)

const (
	scoreThreshold   = 0.1
	defaultTopK      = 5
	featureCacheTTL  = 24 * time.Hour
	trendingCacheTTL = 10 * time.Minute

	weightSimilarity = 0.4
	weightCapacity   = 0.3
	weightPrice      = 0.2
	weightLocation   = 0.1
)

var reQueryCapacity = regexp.MustCompile(`(\d+)(?:인|명|인용)`)

var familyKeywords = []string{"가족", "아이", "어린이", "부모", "할머니", "할아버지", "자녀"}
var amenityKeywords = []string{"넓은", "깨끗한", "조용한", "편리한", "전망", "뷰"}
var regionKeywords = []string{"제주", "강원", "경기", "충북", "충남", "전북", "전남", "경북", "경남"}

// themeExpansions 테마 단어를 검색 친화 문구로 확장
var themeExpansions = map[string]string{
	"힐링":   "조용한 휴식 산림욕",
	"액티비티": "체험프로그램 레포츠",
	"자연":   "산림욕 자연휴양",
	"전통":   "초가집 한옥 전통",
	"프리미엄": "고급 럭셔리 특급",
}

// RecommendPrefs 추천 요청의 선호 조건
type RecommendPrefs struct {
	Capacity int
	Price    int
	Location string
	TopK     int
}

// FeatureDoc 추천 인덱스의 시설 한 건
type FeatureDoc struct {
	Accommodation models.Accommodation `json:"accommodation"`
	ForestName    string               `json:"forest_name"`
	Sido          string               `json:"sido"`
	Text          string               `json:"text"`
	Tokens        []string             `json:"tokens"`
}

// ScoredAccommodation 점수가 매겨진 추천 결과
type ScoredAccommodation struct {
	models.Accommodation
	ForestName string  `json:"forest_name"`
	Sido       string  `json:"sido"`
	Score      float64 `json:"score"`
}

// RecommendServiceOptions RecommendService 의존성
type RecommendServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

// RecommendService 질의 기반 숙박시설 추천 엔진
// 인덱스는 메모리에 올려 두고 Redis에 캐시한다
type RecommendService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger

	mu     sync.RWMutex
	docs   []FeatureDoc
	cmSido *closestmatch.ClosestMatch
}

func NewRecommendService(opts RecommendServiceOptions) *RecommendService {
	return &RecommendService{
		db:     opts.DB,
		rdb:    opts.Redis,
		logger: opts.Logger,
	}
}

// Reload DB에서 추천 인덱스 재구축 후 캐시 갱신
func (s *RecommendService) Reload(ctx context.Context) error {
	var accommodations []models.Accommodation
	if err := s.db.Find(&accommodations).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "숙박시설 조회에 실패했습니다", err)
	}

	var forests []models.Forest
	if err := s.db.Find(&forests).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "휴양림 조회에 실패했습니다", err)
	}
	forestByID := make(map[uint]models.Forest, len(forests))
	for _, f := range forests {
		forestByID[f.ID] = f
	}

	docs := make([]FeatureDoc, 0, len(accommodations))
	for _, a := range accommodations {
		forest := forestByID[a.ForestID]
		text := buildFeatureText(a, forest)
		docs = append(docs, FeatureDoc{
			Accommodation: a,
			ForestName:    forest.Name,
			Sido:          forest.Sido,
			Text:          text,
			Tokens:        utils.Tokenize(text),
		})
	}

	s.mu.Lock()
	s.docs = docs
	s.cmSido = buildSidoMatcher(forests)
	s.mu.Unlock()

	if s.rdb != nil {
		if err := SetToRedis(ctx, s.rdb, CacheKeyFeatureIndex, docs, featureCacheTTL); err != nil {
			s.logger.Error("추천 인덱스 캐시 갱신 실패: %v", err)
		}
		// 인덱스가 바뀌면 인기 시설 목록도 다시 계산해야 한다
		DeleteFromRedis(ctx, s.rdb, CacheKeyTrending)
	}

	s.logger.Info("추천 인덱스 재구축 완료: %d건", len(docs))
	return nil
}

func buildSidoMatcher(forests []models.Forest) *closestmatch.ClosestMatch {
	seen := make(map[string]bool)
	var sidos []string
	for _, f := range forests {
		if f.Sido != "" && !seen[f.Sido] {
			seen[f.Sido] = true
			sidos = append(sidos, f.Sido)
		}
	}
	if len(sidos) == 0 {
		return nil
	}
	return closestmatch.New(sidos, []int{2, 3})
}

// ensureIndex 인덱스가 비어 있으면 캐시에서 복원, 없으면 재구축
func (s *RecommendService) ensureIndex(ctx context.Context) error {
	s.mu.RLock()
	ready := len(s.docs) > 0
	s.mu.RUnlock()
	if ready {
		return nil
	}

	if s.rdb != nil {
		var cached []FeatureDoc
		if err := GetFromRedis(ctx, s.rdb, CacheKeyFeatureIndex, &cached); err == nil && len(cached) > 0 {
			var forests []models.Forest
			s.db.Find(&forests)
			s.mu.Lock()
			s.docs = cached
			s.cmSido = buildSidoMatcher(forests)
			s.mu.Unlock()
			s.logger.Debug("추천 인덱스 캐시 복원: %d건", len(cached))
			return nil
		}
	}

	return s.Reload(ctx)
}

// buildFeatureText 시설 한 건의 특징 문자열 생성
func buildFeatureText(a models.Accommodation, forest models.Forest) string {
	parts := []string{a.Name, a.FacilityType, forest.Name, forest.Sido}
	parts = append(parts, a.AmenityList()...)

	switch {
	case a.Capacity <= 4:
		parts = append(parts, "소규모가족", "커플여행")
	case a.Capacity <= 8:
		parts = append(parts, "중간가족", "가족여행")
	default:
		parts = append(parts, "대가족", "단체여행")
	}

	switch {
	case a.PriceOffWeekday < 100000:
		parts = append(parts, "저가격대", "경제적")
	case a.PriceOffWeekday < 200000:
		parts = append(parts, "중가격대", "합리적")
	default:
		parts = append(parts, "고가격대", "프리미엄")
	}

	if a.UsageInfo != "" {
		parts = append(parts, utils.TruncateRunes(a.UsageInfo, 100))
	}

	return strings.Join(parts, " ")
}

// enhanceQuery 질의 확장: 인원 추출, 키워드/테마 확장, 지역 인식
func (s *RecommendService) enhanceQuery(query string, prefs RecommendPrefs) (string, RecommendPrefs) {
	enhanced := query

	if prefs.Capacity == 0 {
		if m := reQueryCapacity.FindStringSubmatch(query); len(m) == 2 {
			fmt.Sscanf(m[1], "%d", &prefs.Capacity)
		}
	}

	for _, kw := range familyKeywords {
		if strings.Contains(query, kw) {
			enhanced += " 가족친화적 편의시설"
			break
		}
	}
	for _, kw := range amenityKeywords {
		if strings.Contains(query, kw) {
			enhanced += " 고급편의시설 쾌적한"
			break
		}
	}
	for theme, expansion := range themeExpansions {
		if strings.Contains(query, theme) {
			enhanced += " " + expansion
		}
	}

	if prefs.Location == "" {
		for _, region := range regionKeywords {
			if strings.Contains(query, region) {
				prefs.Location = region
				break
			}
		}
	}
	// 자유 표기 지역명을 인덱스의 시도 표기로 정규화
	if prefs.Location != "" && s.cmSido != nil {
		if closest := s.cmSido.Closest(prefs.Location); closest != "" {
			prefs.Location = closest
		}
	}

	return enhanced, prefs
}

// jaccard 토큰 집합 간 자카드 유사도
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	inter := 0
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		if setB[t] {
			continue
		}
		setB[t] = true
		if setA[t] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// closeness 1 - |want-have|/max(want,have)
func closeness(want, have int) float64 {
	if want <= 0 || have <= 0 {
		return 0
	}
	maxV := want
	if have > maxV {
		maxV = have
	}
	diff := want - have
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(maxV)
}

// scoreDoc 가중 합산 점수 계산
// 선호 조건이 없는 축은 빼고 나머지 가중치로 정규화한다
// 조건 없는 엉뚱한 질의가 임계값을 넘겨 대체 추천을 막는 일을 방지
func scoreDoc(doc FeatureDoc, queryTokens []string, prefs RecommendPrefs) float64 {
	score := weightSimilarity * jaccard(queryTokens, doc.Tokens)
	weightSum := weightSimilarity

	if prefs.Capacity > 0 {
		score += weightCapacity * closeness(prefs.Capacity, doc.Accommodation.Capacity)
		weightSum += weightCapacity
	}
	if prefs.Price > 0 {
		score += weightPrice * closeness(prefs.Price, doc.Accommodation.PriceOffWeekday)
		weightSum += weightPrice
	}
	score /= weightSum

	if prefs.Location != "" && strings.Contains(doc.Sido, prefs.Location) {
		score += weightLocation
	}
	return score
}

// Recommend 질의와 선호 조건으로 상위 시설 추천
// 임계값을 넘는 결과가 없으면 인기 시설로 대체한다
func (s *RecommendService) Recommend(ctx context.Context, query string, prefs RecommendPrefs) ([]ScoredAccommodation, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs := s.docs
	s.mu.RUnlock()
	if len(docs) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeDBNotFound, "추천할 숙박시설 데이터가 없습니다", errors.ErrNoCandidates)
	}

	enhanced, prefs := s.enhanceQuery(query, prefs)
	queryTokens := utils.Tokenize(enhanced)
	if prefs.TopK <= 0 {
		prefs.TopK = defaultTopK
	}

	// 시설별 병렬 채점
	resultCh := make(chan ScoredAccommodation, len(docs))
	var wg sync.WaitGroup
	for _, doc := range docs {
		wg.Add(1)
		go func(d FeatureDoc) {
			defer wg.Done()
			score := scoreDoc(d, queryTokens, prefs)
			if score < scoreThreshold {
				return
			}
			resultCh <- ScoredAccommodation{
				Accommodation: d.Accommodation,
				ForestName:    d.ForestName,
				Sido:          d.Sido,
				Score:         score,
			}
		}(doc)
	}
	wg.Wait()
	close(resultCh)

	var scored []ScoredAccommodation
	for r := range resultCh {
		scored = append(scored, r)
	}

	if len(scored) == 0 {
		s.logger.Info("임계값을 넘는 추천 결과 없음, 인기 시설로 대체: %q", query)
		return s.Trending(ctx, prefs.TopK)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > prefs.TopK {
		scored = scored[:prefs.TopK]
	}
	return scored, nil
}

// trendingTypeWeight 시설 유형별 기본 가중치
func trendingTypeWeight(facilityType string) float64 {
	switch {
	case strings.Contains(facilityType, "초가") || strings.Contains(facilityType, "통나무"):
		return 0.4
	case strings.Contains(facilityType, "펜션") || strings.Contains(facilityType, "콘도"):
		return 0.3
	case strings.Contains(facilityType, "휴양관"):
		return 0.2
	}
	return 0.1
}

// Trending 질의 없이 인기 시설 산출
func (s *RecommendService) Trending(ctx context.Context, topK int) ([]ScoredAccommodation, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	if s.rdb != nil {
		var cached []ScoredAccommodation
		if err := GetFromRedis(ctx, s.rdb, CacheKeyTrending, &cached); err == nil && len(cached) > 0 {
			if len(cached) > topK {
				cached = cached[:topK]
			}
			return cached, nil
		}
	}

	s.mu.RLock()
	docs := s.docs
	s.mu.RUnlock()

	var scored []ScoredAccommodation
	for _, doc := range docs {
		a := doc.Accommodation
		score := trendingTypeWeight(a.FacilityType)

		amenityScore := float64(len(a.AmenityList())) * 0.05
		if amenityScore > 0.3 {
			amenityScore = 0.3
		}
		score += amenityScore

		if a.Capacity >= 4 && a.Capacity <= 8 {
			score += 0.2
		}

		if score < scoreThreshold {
			continue
		}
		scored = append(scored, ScoredAccommodation{
			Accommodation: a,
			ForestName:    doc.ForestName,
			Sido:          doc.Sido,
			Score:         score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if s.rdb != nil && len(scored) > 0 {
		if err := SetToRedis(ctx, s.rdb, CacheKeyTrending, scored, trendingCacheTTL); err != nil {
			s.logger.Error("인기 시설 캐시 저장 실패: %v", err)
		}
	}

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}
