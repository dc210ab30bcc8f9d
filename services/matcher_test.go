package services

import (
	"testing"

	"hyurimbot/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *FacilityMatcher {
	return NewFacilityMatcher(logger.NewDefaultLogger(logger.ErrorLevel))
}

func TestMatchSpacingAndDotVariants(t *testing.T) {
	matcher := newTestMatcher()

	candidates := []MatchCandidate{
		{Text: "101호.연산홍", Href: "/detail/101"},
		{Text: "102호. 백일홍", Href: "/detail/102"},
	}

	got, err := matcher.Match("101호. 연산홍", candidates)
	require.NoError(t, err)
	assert.Equal(t, "/detail/101", got.Href)
}

func TestMatchPartialName(t *testing.T) {
	matcher := newTestMatcher()

	candidates := []MatchCandidate{
		{Text: "101호. 연산홍", Href: "/detail/101"},
		{Text: "102호. 백일홍", Href: "/detail/102"},
	}

	// 호수 없이 이름만으로도 포함 매칭
	got, err := matcher.Match("연산홍", candidates)
	require.NoError(t, err)
	assert.Equal(t, "/detail/101", got.Href)
}

func TestMatchRejectsDifferentRoom(t *testing.T) {
	matcher := newTestMatcher()

	candidates := []MatchCandidate{
		{Text: "102호. 백일홍", Href: "/detail/102"},
	}

	_, err := matcher.Match("101호. 연산홍", candidates)
	assert.Error(t, err)
}

func TestMatchPrefersCloserCandidate(t *testing.T) {
	matcher := newTestMatcher()

	// 둘 다 포함 관계를 만족하지만 전체 표기가 더 가까운 쪽을 고른다
	candidates := []MatchCandidate{
		{Text: "연산홍", Href: "/detail/short"},
		{Text: "101호. 연산홍", Href: "/detail/full"},
	}

	got, err := matcher.Match("101호.연산홍", candidates)
	require.NoError(t, err)
	assert.Equal(t, "/detail/full", got.Href)
}

func TestMatchRelaxedHoForm(t *testing.T) {
	matcher := newTestMatcher()

	// "호" 표기가 아예 빠진 목록도 완화 형태로 잡는다
	candidates := []MatchCandidate{
		{Text: "101. 연산홍", Href: "/detail/101"},
	}

	got, err := matcher.Match("101호. 연산홍", candidates)
	require.NoError(t, err)
	assert.Equal(t, "/detail/101", got.Href)
}

func TestMatchEmptyCandidates(t *testing.T) {
	matcher := newTestMatcher()

	_, err := matcher.Match("연산홍", nil)
	assert.Error(t, err)
}

func TestNormalizeFacilityName(t *testing.T) {
	assert.Equal(t, "101호연산홍", normalizeFacilityName("101호. 연산홍"))
	assert.Equal(t, "101연산홍", relaxFacilityName("101호. 연산홍"))
}
