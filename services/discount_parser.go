package services

import (
	"regexp"
	"strconv"
	"strings"

	"hyurimbot/models"
	"hyurimbot/services/logger"
	"hyurimbot/utils"

	"github.com/PuerkitoBio/goquery"
)

// 정책 분류
const (
	PolicyCategoryRoom    = "객실이용요금감면"
	PolicyCategoryEntry   = "입장료면제"
	PolicyCategoryParking = "주차료면제"
)

var reDiscountRate = regexp.MustCompile(`(\d+)\s*%`)

// targetGroupAliases 안내문 표기를 표준 대상 그룹으로 통일
var targetGroupAliases = map[string][]string{
	"장애인":     {"장애인", "장애우", "심한 장애", "장애의 정도가 심한"},
	"국가유공자":   {"국가유공자", "유공자", "국가 유공자"},
	"다자녀가정":   {"다자녀", "세자녀", "두자녀", "자녀가 3인"},
	"기초생활수급자": {"기초생활수급자", "국민기초생활", "수급자", "차상위"},
	"한부모가족":   {"한부모가족", "한부모"},
	"의사상자":    {"의사상자", "의상자", "의사자"},
}

// requiredDocuments 대상 그룹별 증빙 서류
var requiredDocuments = map[string]string{
	"장애인":     "복지카드",
	"국가유공자":   "국가유공자증",
	"다자녀가정":   "가족관계증명서",
	"기초생활수급자": "수급자증명서",
	"한부모가족":   "한부모가족증명서",
	"의사상자":    "의사상자증",
}

// DiscountParser 이용요금 감면 안내 페이지에서 할인 정책 추출
type DiscountParser struct {
	logger logger.Logger
}

func NewDiscountParser(log logger.Logger) *DiscountParser {
	return &DiscountParser{logger: log}
}

// ParsePolicies 안내 페이지 문서를 정책 레코드 목록으로 변환
// 같은 (분류, 대상그룹)은 먼저 나온 문장을 유지한다
func (p *DiscountParser) ParsePolicies(doc *goquery.Document, forestID uint) []models.CrawledDiscountPolicy {
	var policies []models.CrawledDiscountPolicy
	seen := make(map[string]bool)

	for _, line := range strings.Split(doc.Text(), "\n") {
		line = utils.CleanString(line)
		if line == "" {
			continue
		}

		for group, aliases := range targetGroupAliases {
			if !containsAny(line, aliases) {
				continue
			}

			category := classifyPolicy(line)
			if category == "" {
				continue
			}

			rate := extractRate(line, category)
			if rate == 0 {
				continue
			}

			key := category + "|" + group
			if seen[key] {
				continue
			}
			seen[key] = true

			policies = append(policies, models.CrawledDiscountPolicy{
				ForestID:          forestID,
				PolicyCategory:    category,
				TargetGroup:       group,
				DiscountRate:      rate,
				OriginalText:      utils.TruncateRunes(line, 500),
				Conditions:        extractConditions(line),
				RequiredDocuments: requiredDocuments[group],
			})
		}
	}

	p.logger.Info("할인 정책 %d건 추출 (휴양림 ID %d)", len(policies), forestID)
	return policies
}

// classifyPolicy 문장을 정책 분류로 배정
func classifyPolicy(line string) string {
	switch {
	case strings.Contains(line, "입장료"):
		return PolicyCategoryEntry
	case strings.Contains(line, "주차"):
		return PolicyCategoryParking
	case strings.Contains(line, "감면") || strings.Contains(line, "할인") || reDiscountRate.MatchString(line):
		return PolicyCategoryRoom
	}
	return ""
}

// extractRate 할인율 추출
// 면제형 분류는 %가 명시되지 않아도 100으로 본다
func extractRate(line, category string) int {
	if m := reDiscountRate.FindStringSubmatch(line); len(m) == 2 {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	if category == PolicyCategoryEntry || category == PolicyCategoryParking {
		if strings.Contains(line, "면제") || strings.Contains(line, "무료") {
			return 100
		}
	}
	return 0
}

// extractConditions 적용 조건 문구 추출
func extractConditions(line string) string {
	var conds []string
	if strings.Contains(line, "비수기") {
		conds = append(conds, "비수기")
	}
	if strings.Contains(line, "주중") || strings.Contains(line, "평일") {
		conds = append(conds, "주중")
	}
	if strings.Contains(line, "주말 제외") || strings.Contains(line, "주말제외") {
		conds = append(conds, "주말제외")
	}
	return strings.Join(conds, ",")
}
