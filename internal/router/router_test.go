package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/database"
	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/Philanthrify/donation-service/internal/nft"
	"github.com/Philanthrify/donation-service/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Nft: config.NftConfig{Collection: "PHILXY-abc123", NamePrefix: "PHILXY", Royalties: 500},
	}
	donationLogic := logic.NewDonationLogic(db, nft.NewLocalIssuer(), cfg.Nft)
	return router.Setup(db, donationLogic, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDonationFlow(t *testing.T) {
	r := newTestRouter(t)

	// 登记实体
	w := doJSON(t, r, http.MethodPost, "/api/v1/entities", gin.H{
		"name":        "Red Cross",
		"entity_type": "charity",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 单笔捐赠
	w = doJSON(t, r, http.MethodPost, "/api/v1/donations", gin.H{
		"donor_address": "erd1donor",
		"amount":        "2000000000000000000",
		"entity_name":   "Red Cross",
		"tags":          []string{"education"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			BadgeNonce int64 `json:"badge_nonce"`
			MintedNew  bool  `json:"minted_new"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.BadgeNonce)
	assert.True(t, resp.Data.MintedNew)

	// 查询档案
	w = doJSON(t, r, http.MethodGet, "/api/v1/donors/erd1donor/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2000000000000000000")

	// 查询徽章
	w = doJSON(t, r, http.MethodGet, "/api/v1/donors/erd1donor/badge", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 查询统计
	w = doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_donations_count":1`)
}

func TestDonationToUnknownEntity(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/donations", gin.H{
		"donor_address": "erd1donor",
		"amount":        "1000",
		"entity_name":   "Nope",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDonationRejectsBadAmount(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/entities", gin.H{
		"name":        "Red Cross",
		"entity_type": "charity",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/donations", gin.H{
		"donor_address": "erd1donor",
		"amount":        "not-a-number",
		"entity_name":   "Red Cross",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/donations", gin.H{
		"donor_address": "erd1donor",
		"amount":        "0",
		"entity_name":   "Red Cross",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchDonation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/entities", gin.H{
		"name":        "Clean Water",
		"entity_type": "project",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/donations/batch", gin.H{
		"donor_address": "erd1donor",
		"amount":        "10000000000000000000",
		"entity_name":   "Clean Water",
		"num_donations": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/donors/erd1donor/donations?page=1&page_size=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":4`)

	// 批量份数越界
	w = doJSON(t, r, http.MethodPost, "/api/v1/donations/batch", gin.H{
		"donor_address": "erd1donor",
		"amount":        "1000",
		"entity_name":   "Clean Water",
		"num_donations": 101,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
