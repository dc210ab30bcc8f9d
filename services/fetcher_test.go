package services

import (
	"context"
	"testing"

	"hyurimbot/services/logger"

	"github.com/stretchr/testify/assert"
)

func TestFetchCanceledContext(t *testing.T) {
	f := NewPageFetcher(logger.NewDefaultLogger(logger.ErrorLevel), true)
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 취소된 작업 컨텍스트는 브라우저를 띄우기 전에 끊는다
	_, err := f.Fetch(ctx, "https://www.foresttrip.go.kr")
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
