package services

import (
	"context"
	"testing"

	"hyurimbot/models"
	"hyurimbot/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecommendData(t *testing.T, db *gorm.DB) {
	t.Helper()

	forests := []models.Forest{
		{Name: "유명산자연휴양림", Sido: "경기", HmpgID: "0101"},
		{Name: "대관령자연휴양림", Sido: "강원", HmpgID: "0201"},
	}
	require.NoError(t, db.Create(&forests).Error)

	accommodations := []models.Accommodation{
		{
			ForestID: forests[0].ID, Name: "숲속의집 4인실", FacilityType: "통나무집",
			Capacity: 4, PriceOffWeekday: 80000,
			Amenities: "침실;주방;화장실;TV",
		},
		{
			ForestID: forests[0].ID, Name: "휴양관 8인실", FacilityType: "휴양관",
			Capacity: 8, PriceOffWeekday: 250000,
			Amenities: "침실;거실;주방;화장실;냉장고;TV",
		},
		{
			ForestID: forests[1].ID, Name: "초가집 6인실", FacilityType: "초가집",
			Capacity: 6, PriceOffWeekday: 120000,
			Amenities: "침실;주방",
		},
	}
	require.NoError(t, db.Create(&accommodations).Error)
}

func newTestRecommendService(t *testing.T) (*RecommendService, *gorm.DB) {
	db := newTestDB(t)
	seedRecommendData(t, db)
	svc := NewRecommendService(RecommendServiceOptions{
		DB:     db,
		Logger: logger.NewDefaultLogger(logger.ErrorLevel),
	})
	return svc, db
}

func TestRecommendPrefersMatchingCapacityAndPrice(t *testing.T) {
	svc, _ := newTestRecommendService(t)

	results, err := svc.Recommend(context.Background(), "4인 가족 넓은 객실", RecommendPrefs{
		Capacity: 4,
		Price:    100000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "숲속의집 4인실", results[0].Name)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestRecommendFallsBackToTrending(t *testing.T) {
	svc, _ := newTestRecommendService(t)

	// 아무 조건 없는 무의미한 질의는 인기 시설로 대체된다
	results, err := svc.Recommend(context.Background(), "존재하지않는검색어999", RecommendPrefs{})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestRecommendTopK(t *testing.T) {
	svc, _ := newTestRecommendService(t)

	results, err := svc.Recommend(context.Background(), "가족 여행", RecommendPrefs{
		Capacity: 6,
		TopK:     1,
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestScoreDocCapacityMonotonic(t *testing.T) {
	near := FeatureDoc{Accommodation: models.Accommodation{Capacity: 4, PriceOffWeekday: 80000}}
	far := FeatureDoc{Accommodation: models.Accommodation{Capacity: 10, PriceOffWeekday: 80000}}

	prefs := RecommendPrefs{Capacity: 4, Price: 80000}
	tokens := []string{"가족"}

	assert.Greater(t, scoreDoc(near, tokens, prefs), scoreDoc(far, tokens, prefs))
}

func TestCloseness(t *testing.T) {
	assert.Equal(t, 1.0, closeness(4, 4))
	assert.Equal(t, 0.5, closeness(4, 8))
	assert.Equal(t, 0.0, closeness(0, 4))
	assert.Equal(t, 0.0, closeness(4, 0))
}

func TestJaccard(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.Equal(t, 0.0, jaccard(nil, []string{"a"}))
	assert.Equal(t, 1.0, jaccard([]string{"a"}, []string{"a"}))
}

func TestEnhanceQuery(t *testing.T) {
	svc, _ := newTestRecommendService(t)
	require.NoError(t, svc.Reload(context.Background()))

	enhanced, prefs := svc.enhanceQuery("6인용 객실 힐링", RecommendPrefs{})
	assert.Equal(t, 6, prefs.Capacity)
	assert.Contains(t, enhanced, "조용한 휴식 산림욕")

	_, prefs = svc.enhanceQuery("강원 가족 여행", RecommendPrefs{})
	assert.Equal(t, "강원", prefs.Location)

	enhanced, _ = svc.enhanceQuery("가족 여행", RecommendPrefs{})
	assert.Contains(t, enhanced, "가족친화적 편의시설")

	enhanced, _ = svc.enhanceQuery("넓은 객실", RecommendPrefs{})
	assert.Contains(t, enhanced, "고급편의시설 쾌적한")
}

func TestTrendingOrder(t *testing.T) {
	svc, _ := newTestRecommendService(t)

	results, err := svc.Trending(context.Background(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// 전통 시설(초가/통나무)이 가중치가 가장 높다
	first := results[0].FacilityType
	assert.Contains(t, []string{"초가집", "통나무집"}, first)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestTrendingRepeatedCallsConsistent(t *testing.T) {
	svc, _ := newTestRecommendService(t)

	// 캐시 유무와 관계없이 같은 데이터에서 같은 순서를 돌려준다
	first, err := svc.Trending(context.Background(), 2)
	require.NoError(t, err)
	second, err := svc.Trending(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestReloadBuildsIndex(t *testing.T) {
	svc, _ := newTestRecommendService(t)

	require.NoError(t, svc.Reload(context.Background()))
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	assert.Len(t, svc.docs, 3)
	assert.NotNil(t, svc.cmSido)
}
