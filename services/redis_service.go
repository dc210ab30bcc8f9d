package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// 캐시 키
const (
	CacheKeyFeatureIndex = "hyurimbot:features:v1"
	CacheKeyTrending     = "hyurimbot:trending:v1"
	CacheKeyForestList   = "hyurimbot:forests:v1"
	tokenBlacklistPrefix = "hyurimbot:token:blacklist:"
)

// GetFromRedis Redis에서 JSON 캐시 조회, 키가 없으면 target을 건드리지 않음
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// SetToRedis JSON 직렬화 후 Redis에 저장
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// DeleteFromRedis 캐시 삭제
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}

// BlacklistToken 로그아웃된 토큰을 만료 시점까지 차단 목록에 등록
func BlacklistToken(ctx context.Context, rdb *redis.Client, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, tokenBlacklistPrefix+token, "1", ttl).Err()
}

// IsTokenBlacklisted 토큰 차단 여부 확인
func IsTokenBlacklisted(ctx context.Context, rdb *redis.Client, token string) bool {
	n, err := rdb.Exists(ctx, tokenBlacklistPrefix+token).Result()
	return err == nil && n > 0
}
