package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"75,000원", 75000},
		{"75000", 75000},
		{"1,250,000원", 1250000},
		{"", 0},
		{"무료", 0},
		{"가격 문의", 0},
		{"약 95,000원 (주말)", 95000},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePrice(tc.input), "input=%q", tc.input)
	}
}

func TestParseArea(t *testing.T) {
	assert.Equal(t, 26.4, ParseArea("26.4㎡"))
	assert.Equal(t, 33.0, ParseArea("면적 33 ㎡"))
	assert.Equal(t, 0.0, ParseArea("면적 미상"))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "숲속의집 101호", CleanString("  숲속의집 \t 101호\n"))
	assert.Equal(t, "", CleanString("   \n\t "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "가나다", TruncateRunes("가나다라마", 3))
	assert.Equal(t, "가나", TruncateRunes("가나", 10))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"4인", "가족", "넓은", "객실"}, Tokenize("4인  가족 넓은 객실 "))
	assert.Empty(t, Tokenize("   "))
}
