package services

import (
	"testing"

	"hyurimbot/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const discountPageHTML = `
<html><body>
<div class="guide">
장애인(중증) 객실이용요금 50% 감면 (비수기 주중에 한함)
국가유공자 객실이용요금 30% 감면
다자녀 가정 객실이용요금 10% 할인
기초생활수급자 입장료 면제
국가유공자 주차료 면제
장애인 객실이용요금 50% 감면 중복 안내 문장
</div>
</body></html>`

func TestParsePolicies(t *testing.T) {
	parser := NewDiscountParser(logger.NewDefaultLogger(logger.ErrorLevel))

	policies := parser.ParsePolicies(mustDoc(t, discountPageHTML), 7)
	require.NotEmpty(t, policies)

	byKey := make(map[string]int)
	for _, p := range policies {
		assert.Equal(t, uint(7), p.ForestID)
		byKey[p.PolicyCategory+"|"+p.TargetGroup] = p.DiscountRate
	}

	assert.Equal(t, 50, byKey[PolicyCategoryRoom+"|장애인"])
	assert.Equal(t, 30, byKey[PolicyCategoryRoom+"|국가유공자"])
	assert.Equal(t, 10, byKey[PolicyCategoryRoom+"|다자녀가정"])
	assert.Equal(t, 100, byKey[PolicyCategoryEntry+"|기초생활수급자"])
	assert.Equal(t, 100, byKey[PolicyCategoryParking+"|국가유공자"])

	// 같은 (분류, 대상)은 한 건만 유지
	count := 0
	for _, p := range policies {
		if p.PolicyCategory == PolicyCategoryRoom && p.TargetGroup == "장애인" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestParsePoliciesConditionsAndDocuments(t *testing.T) {
	parser := NewDiscountParser(logger.NewDefaultLogger(logger.ErrorLevel))

	policies := parser.ParsePolicies(mustDoc(t, discountPageHTML), 7)

	for _, p := range policies {
		if p.PolicyCategory == PolicyCategoryRoom && p.TargetGroup == "장애인" {
			assert.Contains(t, p.Conditions, "비수기")
			assert.Contains(t, p.Conditions, "주중")
			assert.Equal(t, "복지카드", p.RequiredDocuments)
			assert.Contains(t, p.OriginalText, "50%")
		}
	}
}

func TestClassifyPolicy(t *testing.T) {
	assert.Equal(t, PolicyCategoryEntry, classifyPolicy("기초생활수급자 입장료 면제"))
	assert.Equal(t, PolicyCategoryParking, classifyPolicy("장애인 주차료 면제"))
	assert.Equal(t, PolicyCategoryRoom, classifyPolicy("장애인 객실이용요금 50% 감면"))
	assert.Equal(t, "", classifyPolicy("휴양림 이용 안내"))
}

func TestExtractRate(t *testing.T) {
	assert.Equal(t, 50, extractRate("객실이용요금 50% 감면", PolicyCategoryRoom))
	assert.Equal(t, 100, extractRate("입장료 면제", PolicyCategoryEntry))
	assert.Equal(t, 0, extractRate("자세한 내용은 문의 바랍니다", PolicyCategoryRoom))
}
