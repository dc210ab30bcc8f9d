package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	reDigits = regexp.MustCompile(`\d+`)
	reArea   = regexp.MustCompile(`([\d.]+)\s*㎡`)
)

// CleanString 연속 공백을 하나로 줄이고 양끝 공백 제거
func CleanString(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// ParsePrice 가격 문자열을 정수로 변환
// "75,000원" -> 75000, 파싱 불가 시 0
func ParsePrice(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "원", "")
	m := reDigits.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// ParseArea 면적 문자열에서 ㎡ 수치 추출, 없으면 0
func ParseArea(s string) float64 {
	m := reArea.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}

// TruncateRunes 문자열을 rune 기준 최대 n자로 자름
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Tokenize 공백 기준 토큰 분리 (소문자화, 빈 토큰 제거)
func Tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
