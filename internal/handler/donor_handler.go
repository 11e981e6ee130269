package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/gin-gonic/gin"
)

// DonorHandler 捐赠者查询处理器
type DonorHandler struct {
	donationLogic *logic.DonationLogic
}

// NewDonorHandler 创建捐赠者查询处理器
func NewDonorHandler(donationLogic *logic.DonationLogic) *DonorHandler {
	return &DonorHandler{donationLogic: donationLogic}
}

// GetDonorProfile 查询捐赠者档案
func (h *DonorHandler) GetDonorProfile(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "捐赠者地址不能为空"})
		return
	}

	profile, err := h.donationLogic.Donors().GetDonorProfile(address)
	if err != nil {
		if errors.Is(err, logic.ErrDonorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": profile,
	})
}

// GetDonorDonations 查询捐赠者的捐赠记录
func (h *DonorHandler) GetDonorDonations(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "捐赠者地址不能为空"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.donationLogic.Donors().GetDonorDonations(address, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetDonorBadge 查询捐赠者的徽章
func (h *DonorHandler) GetDonorBadge(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "捐赠者地址不能为空"})
		return
	}

	badge, err := h.donationLogic.Badges().GetDonorBadge(address)
	if err != nil {
		if errors.Is(err, logic.ErrBadgeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": badge,
	})
}
