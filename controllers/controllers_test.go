package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hyurimbot/config"
	"hyurimbot/models"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))
	return db
}

func seedDashboardData(t *testing.T, db *gorm.DB) {
	t.Helper()

	forests := []models.Forest{
		{Name: "유명산자연휴양림", Sido: "경기", HmpgID: "0101"},
		{Name: "절물자연휴양림", Sido: "제주", HmpgID: ""},
	}
	require.NoError(t, db.Create(&forests).Error)

	require.NoError(t, db.Create(&models.Accommodation{
		ForestID: forests[0].ID, Name: "숲속의집 101호", FacilityType: "숲속의집",
		Capacity: 4, PriceOffWeekday: 75000, Amenities: "침실;TV",
	}).Error)
	require.NoError(t, db.Create(&models.Accommodation{
		ForestID: forests[0].ID, Name: "휴양관 201호", FacilityType: "휴양관",
		Capacity: 8, PriceOffWeekday: 120000,
	}).Error)
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetForestsWithStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	seedDashboardData(t, db)

	fc := NewForestController(db, nil, logger.NewDefaultLogger(logger.ErrorLevel))
	router := gin.New()
	router.GET("/api/forests", fc.GetForests)

	w := performRequest(router, http.MethodGet, "/api/forests", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data []struct {
			Name           string `json:"name"`
			DataStatus     string `json:"data_status"`
			DiscountStatus string `json:"discount_status"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)

	byName := make(map[string]string)
	for _, f := range resp.Data {
		byName[f.Name] = f.DataStatus
		assert.Equal(t, "미수집", f.DiscountStatus)
	}
	// 편의시설까지 수집된 시설이 있으면 상세, 아무것도 없으면 미수집
	assert.Equal(t, "상세", byName["유명산자연휴양림"])
	assert.Equal(t, "미수집", byName["절물자연휴양림"])
}

func TestGetAccommodationsFilterAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	seedDashboardData(t, db)

	ac := NewAccommodationController(db, logger.NewDefaultLogger(logger.ErrorLevel))
	router := gin.New()
	router.GET("/api/accommodations", ac.GetAccommodations)

	w := performRequest(router, http.MethodGet, "/api/accommodations?forest_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Name       string `json:"name"`
			DataStatus string `json:"data_status"`
			ForestName string `json:"forest_name"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)

	byName := make(map[string]string)
	for _, a := range resp.Data {
		byName[a.Name] = a.DataStatus
		assert.Equal(t, "유명산자연휴양림", a.ForestName)
	}
	assert.Equal(t, "상세", byName["숲속의집 101호"])
	assert.Equal(t, "기본", byName["휴양관 201호"])

	w = performRequest(router, http.MethodGet, "/api/accommodations?forest_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	seedDashboardData(t, db)

	fc := NewForestController(db, nil, logger.NewDefaultLogger(logger.ErrorLevel))
	router := gin.New()
	router.GET("/api/stats", fc.GetStats)

	w := performRequest(router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Forests        int64 `json:"forests"`
			Accommodations int64 `json:"accommodations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Forests)
	assert.Equal(t, int64(2), resp.Data.Accommodations)
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ac := NewAuthController(nil)
	router := gin.New()
	router.POST("/api/auth/login", ac.Login)

	w := performRequest(router, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "hyurimbot2025",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)

	w = performRequest(router, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "틀린비밀번호",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
