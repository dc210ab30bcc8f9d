package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv .env 파일에서 환경변수 로드
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env 파일을 불러오지 못했습니다, 시스템 환경변수를 사용합니다: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault 환경변수 조회, 없으면 기본값 반환
func GetEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
