package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	CrawlLogger *log.Logger
)

func init() {
	// logs 디렉토리가 없으면 생성
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Fatal(err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logFile, err := os.OpenFile(fmt.Sprintf("logs/app-%s.log", timestamp), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}

	crawlFile, err := os.OpenFile(fmt.Sprintf("logs/crawl-%s.log", timestamp), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}

	InfoLogger = log.New(logFile, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(logFile, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	CrawlLogger = log.New(crawlFile, "CRAWL: ", log.Ldate|log.Ltime)
}

// LogInfo 정보 로그 기록
func LogInfo(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

// LogError 에러 로그 기록
func LogError(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}

// LogCrawl 크롤링 로그 기록
func LogCrawl(format string, v ...interface{}) {
	CrawlLogger.Printf(format, v...)
}
