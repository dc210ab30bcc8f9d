package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"hyurimbot/errors"
	"hyurimbot/services/logger"
	"hyurimbot/utils"

	"github.com/PuerkitoBio/goquery"
)

// AccommodationDetail 상세 페이지에서 추출한 시설 정보
type AccommodationDetail struct {
	Capacity         int
	Area             float64
	Amenities        []string
	CheckinTime      string
	CheckoutTime     string
	PriceOffWeekday  int
	PriceOffWeekend  int
	PricePeakWeekday int
	PricePeakWeekend int
	UsageInfo        string
}

// ListingRow 시설 목록 페이지의 테이블 행
type ListingRow struct {
	Name            string
	FacilityType    string
	Capacity        int
	Area            float64
	CheckinTime     string
	PriceOffWeekday int
}

// ExtractorSchema 라벨 키워드와 필드의 매핑 설정
// 휴양림마다 표 라벨 표기가 조금씩 달라 키워드 집합으로 분류한다
type ExtractorSchema struct {
	BasicTableKeywords []string // 이 키워드가 있으면 기본정보 테이블
	PriceTableKeywords []string // 이 키워드가 있으면 가격 테이블

	CapacityLabels  []string // 정원/면적 행 라벨
	AmenityLabels   []string // 편의시설 행 라벨
	CheckTimeLabels []string // 입/퇴실 시간 행 라벨

	CapacityPattern string // 셀 텍스트에서 최대인원을 뽑는 정규식

	OffSeasonKeyword  string // 비수기 구분 키워드
	PeakSeasonKeyword string
	WeekdayKeyword    string
	WeekendKeyword    string

	DefaultAmenities []string // 편의시설 미수집 시 대체 목록
	DefaultCheckout  string
}

// DefaultExtractorSchema 숲나들e 표준 페이지 구조 기준 설정
func DefaultExtractorSchema() ExtractorSchema {
	return ExtractorSchema{
		BasicTableKeywords: []string{"기본정보", "편의시설"},
		PriceTableKeywords: []string{"가격정보", "비수기", "성수기"},
		CapacityLabels:     []string{"인실", "면적"},
		AmenityLabels:      []string{"편의시설"},
		CheckTimeLabels:    []string{"입/퇴실", "입퇴실"},
		CapacityPattern:    `최대인원\s*:\s*(\d+)`,
		OffSeasonKeyword:   "비수기",
		PeakSeasonKeyword:  "성수기",
		WeekdayKeyword:     "평일",
		WeekendKeyword:     "주말",
		DefaultAmenities:   []string{"침실", "거실", "주방", "화장실", "냉장고", "TV"},
		DefaultCheckout:    "11:00",
	}
}

var (
	reUsageRoom    = regexp.MustCompile(`【객실구성】([^【]*)`)
	reUsageItems   = regexp.MustCompile(`【제공품목】([^【]*)`)
	reUsageRules   = regexp.MustCompile(`【예약규칙】([^【]*)`)
	reCapacityUnit = regexp.MustCompile(`(\d+)\s*명`)
)

// DetailExtractor 시설 상세 페이지 파서
type DetailExtractor struct {
	schema     ExtractorSchema
	reCapacity *regexp.Regexp
	logger     logger.Logger
}

func NewDetailExtractor(schema ExtractorSchema, log logger.Logger) *DetailExtractor {
	return &DetailExtractor{
		schema:     schema,
		reCapacity: regexp.MustCompile(schema.CapacityPattern),
		logger:     log,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Extract 상세 페이지 문서에서 시설 정보 추출
// 어떤 필드도 채우지 못하면 ErrCodeExtractionEmpty
func (e *DetailExtractor) Extract(doc *goquery.Document) (*AccommodationDetail, error) {
	detail := &AccommodationDetail{
		CheckoutTime: e.schema.DefaultCheckout,
	}
	filled := false

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		tableText := table.Text()
		switch {
		case containsAny(tableText, e.schema.BasicTableKeywords):
			if e.parseBasicTable(table, detail) {
				filled = true
			}
		case containsAny(tableText, e.schema.PriceTableKeywords):
			if e.parsePriceTable(table, detail) {
				filled = true
			}
		}
	})

	if usage := e.extractUsageInfo(doc); usage != "" {
		detail.UsageInfo = usage
		filled = true
	}

	if !filled {
		return nil, errors.NewAppError(errors.ErrCodeExtractionEmpty,
			"상세 페이지에서 추출된 항목이 없습니다", errors.ErrEmptyExtraction)
	}

	// 편의시설이 비면 표준 구성으로 대체
	if len(detail.Amenities) == 0 {
		detail.Amenities = append([]string(nil), e.schema.DefaultAmenities...)
	}

	return detail, nil
}

// parseBasicTable 기본정보 테이블의 라벨 행 처리
func (e *DetailExtractor) parseBasicTable(table *goquery.Selection, detail *AccommodationDetail) bool {
	filled := false

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		label := utils.CleanString(row.Find("th").First().Text())
		value := utils.CleanString(row.Find("td").First().Text())
		if label == "" || value == "" {
			return
		}

		switch {
		case containsAny(label, e.schema.CapacityLabels):
			if m := e.reCapacity.FindStringSubmatch(value); len(m) == 2 {
				if n, err := strconv.Atoi(m[1]); err == nil {
					detail.Capacity = n
					filled = true
				}
			}
			if area := utils.ParseArea(value); area > 0 {
				detail.Area = area
				filled = true
			}

		case containsAny(label, e.schema.AmenityLabels):
			joined := strings.ReplaceAll(value, ", ", ";")
			for _, a := range strings.Split(joined, ";") {
				if a = strings.TrimSpace(a); a != "" {
					detail.Amenities = append(detail.Amenities, a)
				}
			}
			filled = len(detail.Amenities) > 0

		case containsAny(label, e.schema.CheckTimeLabels):
			parts := strings.SplitN(value, "~", 2)
			if len(parts) == 2 {
				detail.CheckinTime = strings.TrimSpace(parts[0])
				detail.CheckoutTime = strings.TrimSpace(parts[1])
				filled = true
			}
		}
	})

	return filled
}

// parsePriceTable 가격 테이블 처리
// 시즌 구분 th는 rowspan으로 이어지므로 마지막 시즌을 다음 행까지 유지한다
func (e *DetailExtractor) parsePriceTable(table *goquery.Selection, detail *AccommodationDetail) bool {
	filled := false
	season := "" // "off" | "peak"

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		headerWeekend := false
		row.Find("th").Each(func(_ int, th *goquery.Selection) {
			thText := th.Text()
			if strings.Contains(thText, e.schema.OffSeasonKeyword) {
				season = "off"
			} else if strings.Contains(thText, e.schema.PeakSeasonKeyword) {
				season = "peak"
			}
			if strings.Contains(thText, e.schema.WeekendKeyword) {
				headerWeekend = true
			}
		})
		if season == "" {
			return
		}

		// 요일 구분은 가격 셀 자체 라벨을 우선하고, 라벨이 없는 셀은
		// 행 th 라벨로 구분한다. 라벨 없는 셀은 첫 가격만 쓴다.
		assigned := false
		row.Find("td").Each(func(_ int, td *goquery.Selection) {
			cellText := td.Text()
			price := utils.ParsePrice(cellText)
			if price == 0 {
				return
			}
			switch {
			case strings.Contains(cellText, e.schema.WeekendKeyword):
				e.setSeasonPrice(detail, season, true, price)
				filled = true
			case strings.Contains(cellText, e.schema.WeekdayKeyword):
				e.setSeasonPrice(detail, season, false, price)
				filled = true
			case !assigned:
				e.setSeasonPrice(detail, season, headerWeekend, price)
				assigned = true
				filled = true
			}
		})
	})

	return filled
}

func (e *DetailExtractor) setSeasonPrice(detail *AccommodationDetail, season string, weekend bool, price int) {
	switch {
	case season == "off" && !weekend:
		detail.PriceOffWeekday = price
	case season == "off" && weekend:
		detail.PriceOffWeekend = price
	case season == "peak" && !weekend:
		detail.PricePeakWeekday = price
	case season == "peak" && weekend:
		detail.PricePeakWeekend = price
	}
}

// extractUsageInfo 이용안내 탭의 객실구성/제공품목/예약규칙 조립
func (e *DetailExtractor) extractUsageInfo(doc *goquery.Document) string {
	text := doc.Text()
	var sections []string

	if m := reUsageRoom.FindStringSubmatch(text); len(m) == 2 {
		if s := utils.CleanString(m[1]); s != "" {
			sections = append(sections, "【객실구성】 "+s)
		}
	}
	if m := reUsageItems.FindStringSubmatch(text); len(m) == 2 {
		if s := utils.CleanString(m[1]); s != "" {
			sections = append(sections, "【제공품목】 "+s)
		}
	}
	if m := reUsageRules.FindStringSubmatch(text); len(m) == 2 {
		if s := utils.CleanString(m[1]); s != "" {
			sections = append(sections, "【예약규칙】 "+s)
		}
	}

	return strings.Join(sections, "\n")
}

// ParseListingRows 시설 목록 페이지의 테이블 행 파싱
// 셀 순서: 시설명, 유형, 정원(명), 면적(㎡), 입실시간, 가격(원)
func (e *DetailExtractor) ParseListingRows(doc *goquery.Document) []ListingRow {
	var rows []ListingRow

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}

		name := utils.CleanString(cells.Eq(0).Text())
		if name == "" {
			return
		}

		capacity := 0
		if m := reCapacityUnit.FindStringSubmatch(cells.Eq(2).Text()); len(m) == 2 {
			capacity, _ = strconv.Atoi(m[1])
		}

		rows = append(rows, ListingRow{
			Name:            name,
			FacilityType:    utils.CleanString(cells.Eq(1).Text()),
			Capacity:        capacity,
			Area:            utils.ParseArea(cells.Eq(3).Text()),
			CheckinTime:     utils.CleanString(cells.Eq(4).Text()),
			PriceOffWeekday: utils.ParsePrice(cells.Eq(5).Text()),
		})
	})

	if len(rows) == 0 {
		e.logger.Debug("목록 페이지에서 시설 행을 찾지 못했습니다")
	}
	return rows
}

// CollectFacilityLinks 목록 페이지에서 시설 상세 링크 후보 수집
func (e *DetailExtractor) CollectFacilityLinks(doc *goquery.Document) []MatchCandidate {
	var candidates []MatchCandidate

	doc.Find("table a").Each(func(_ int, a *goquery.Selection) {
		text := utils.CleanString(a.Text())
		href, _ := a.Attr("href")
		if text == "" || href == "" || href == "#" {
			return
		}
		candidates = append(candidates, MatchCandidate{Text: text, Href: href})
	})

	return candidates
}

// DerivePrices 목록 행의 비수기 평일가에서 나머지 가격대 산출
// 주말 1.3배, 성수기 평일 1.5배, 성수기 주말 1.8배
func DerivePrices(offWeekday int) (offWeekend, peakWeekday, peakWeekend int) {
	offWeekend = int(math.Round(float64(offWeekday) * 1.3))
	peakWeekday = int(math.Round(float64(offWeekday) * 1.5))
	peakWeekend = int(math.Round(float64(offWeekday) * 1.8))
	return
}
