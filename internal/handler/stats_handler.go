package handler

import (
	"net/http"

	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/gin-gonic/gin"
)

// StatsHandler 全网统计处理器
type StatsHandler struct {
	donationLogic *logic.DonationLogic
}

// NewStatsHandler 创建全网统计处理器
func NewStatsHandler(donationLogic *logic.DonationLogic) *StatsHandler {
	return &StatsHandler{donationLogic: donationLogic}
}

// GetGlobalStats 查询全网捐赠统计
func (h *StatsHandler) GetGlobalStats(c *gin.Context) {
	stats, err := h.donationLogic.Stats().GetGlobalStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}
