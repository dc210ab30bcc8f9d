package services

import (
	"strings"

	"hyurimbot/errors"
	"hyurimbot/services/logger"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// MatchCandidate 시설 목록 페이지의 시설 링크 하나
type MatchCandidate struct {
	Text string // 링크 텍스트 (시설명)
	Href string // 상세 페이지 경로
}

// FacilityMatcher DB의 시설명과 목록 페이지 링크를 대조
type FacilityMatcher struct {
	logger logger.Logger
}

func NewFacilityMatcher(log logger.Logger) *FacilityMatcher {
	return &FacilityMatcher{logger: log}
}

// normalizeFacilityName 공백과 "." 제거 후 소문자화
// "101호. 연산홍" -> "101호.연산홍"과 같은 표기 차이를 흡수한다
func normalizeFacilityName(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// relaxFacilityName 호수 표기까지 제거한 완화 형태
func relaxFacilityName(s string) string {
	return strings.ReplaceAll(normalizeFacilityName(s), "호", "")
}

// namesContain 양방향 포함 판정
func namesContain(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// calculateSimilarity 정규화된 이름 간 levenshtein 유사도 (0~1)
func calculateSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return 1.0 - float64(dist)/float64(maxLen)
}

// Match 대상 시설명과 일치하는 후보를 찾는다
// 엄격 정규화 형태의 양방향 포함을 먼저 시도하고, 실패하면 "호" 제거 형태로 재시도.
// 복수 후보가 남으면 levenshtein 유사도가 가장 높은 쪽, 동률이면 문서 순서 유지.
func (fm *FacilityMatcher) Match(target string, candidates []MatchCandidate) (*MatchCandidate, error) {
	if len(candidates) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeFacilityNotFound, "시설 목록이 비어 있습니다", errors.ErrFacilityNotMatched)
	}

	normTarget := normalizeFacilityName(target)
	if best := fm.pickBest(normTarget, candidates, normalizeFacilityName); best != nil {
		return best, nil
	}

	relaxedTarget := relaxFacilityName(target)
	if best := fm.pickBest(relaxedTarget, candidates, relaxFacilityName); best != nil {
		fm.logger.Debug("완화 매칭으로 시설 발견: %s", target)
		return best, nil
	}

	fm.logger.Error("시설 매칭 실패: %s (후보 %d건)", target, len(candidates))
	return nil, errors.NewAppError(errors.ErrCodeFacilityNotFound,
		"목록 페이지에서 시설을 찾지 못했습니다: "+target, errors.ErrFacilityNotMatched)
}

func (fm *FacilityMatcher) pickBest(normTarget string, candidates []MatchCandidate, normalize func(string) string) *MatchCandidate {
	var best *MatchCandidate
	bestScore := -1.0

	for i := range candidates {
		normCand := normalize(candidates[i].Text)
		if !namesContain(normTarget, normCand) {
			continue
		}
		score := calculateSimilarity(normTarget, normCand)
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}
	return best
}
