package config

import (
	"fmt"
	"log"
	"os"

	"hyurimbot/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDB SQLite 파일 DB 연결 및 마이그레이션
func ConnectDB() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "hyurimbot.db"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path+"?cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		log.Fatalf("DB 연결 실패: %v", err)
	}

	DB.Exec("PRAGMA foreign_keys = ON")

	if err := MigrateDB(DB); err != nil {
		log.Fatalf("DB 마이그레이션 실패: %v", err)
	}

	seedForests(DB)

	fmt.Println("DB 연결 완료:", path)
}

// MigrateDB 모델 마이그레이션과 조회용 인덱스 생성
func MigrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Forest{},
		&models.Facility{},
		&models.Accommodation{},
		&models.CrawledDiscountPolicy{},
	); err != nil {
		return err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_accommodations_forest ON accommodations(forest_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_facilities_forest ON facilities(forest_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_policies_forest ON crawled_discount_policies(forest_id)")
	return nil
}

// seedForests forests 테이블이 비어 있으면 초기 휴양림 목록 삽입
func seedForests(db *gorm.DB) {
	var count int64
	db.Model(&models.Forest{}).Count(&count)
	if count > 0 {
		return
	}

	forests := []models.Forest{
		{Name: "유명산자연휴양림", Sido: "경기", HmpgID: "0101"},
		{Name: "중미산자연휴양림", Sido: "경기", HmpgID: "0102"},
		{Name: "산음자연휴양림", Sido: "경기", HmpgID: "0103"},
		{Name: "아세안자연휴양림", Sido: "경기", HmpgID: "0104"},
		{Name: "대관령자연휴양림", Sido: "강원", HmpgID: "0201"},
		{Name: "청태산자연휴양림", Sido: "강원", HmpgID: "0202"},
		{Name: "가리왕산자연휴양림", Sido: "강원", HmpgID: "0203"},
		{Name: "방태산자연휴양림", Sido: "강원", HmpgID: "0204"},
		{Name: "용화산자연휴양림", Sido: "강원", HmpgID: "0205"},
		{Name: "속리산말티재자연휴양림", Sido: "충북", HmpgID: "0301"},
		{Name: "황정산자연휴양림", Sido: "충북", HmpgID: "0302"},
		{Name: "희리산해송자연휴양림", Sido: "충남", HmpgID: "0401"},
		{Name: "용현자연휴양림", Sido: "충남", HmpgID: "0402"},
		{Name: "덕유산자연휴양림", Sido: "전북", HmpgID: "0501"},
		{Name: "회문산자연휴양림", Sido: "전북", HmpgID: "0502"},
		{Name: "방장산자연휴양림", Sido: "전남", HmpgID: "0601"},
		{Name: "천관산자연휴양림", Sido: "전남", HmpgID: "0602"},
		{Name: "청옥산자연휴양림", Sido: "경북", HmpgID: "0701"},
		{Name: "칠보산자연휴양림", Sido: "경북", HmpgID: "0702"},
		{Name: "지리산자연휴양림", Sido: "경남", HmpgID: "0801"},
		{Name: "남해편백자연휴양림", Sido: "경남", HmpgID: "0802"},
		{Name: "서귀포자연휴양림", Sido: "제주", HmpgID: "0901"},
		{Name: "교래자연휴양림", Sido: "제주", HmpgID: "0902"},
		{Name: "절물자연휴양림", Sido: "제주", HmpgID: ""},
	}
	if err := db.Create(&forests).Error; err != nil {
		log.Printf("휴양림 초기 데이터 삽입 실패: %v", err)
		return
	}
	log.Printf("휴양림 초기 데이터 %d건 삽입 완료", len(forests))
}
