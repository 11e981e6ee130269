package handler

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/Philanthrify/donation-service/internal/egld"
	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DonationHandler 捐赠处理器
type DonationHandler struct {
	donationLogic *logic.DonationLogic
	entityLogic   *logic.EntityLogic
}

// NewDonationHandler 创建捐赠处理器
func NewDonationHandler(donationLogic *logic.DonationLogic, db *gorm.DB) *DonationHandler {
	return &DonationHandler{
		donationLogic: donationLogic,
		entityLogic:   logic.NewEntityLogic(db),
	}
}

// DonationRequest 单笔捐赠请求
type DonationRequest struct {
	DonorAddress string   `json:"donor_address" binding:"required"`
	Amount       string   `json:"amount" binding:"required"`
	EntityName   string   `json:"entity_name" binding:"required"`
	Tags         []string `json:"tags"`
}

// BatchDonationRequest 批量捐赠请求
type BatchDonationRequest struct {
	DonorAddress string   `json:"donor_address" binding:"required"`
	Amount       string   `json:"amount" binding:"required"`
	EntityName   string   `json:"entity_name" binding:"required"`
	NumDonations uint64   `json:"num_donations" binding:"required"`
	Tags         []string `json:"tags"`
}

// Donate 处理单笔捐赠
func (h *DonationHandler) Donate(c *gin.Context) {
	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的捐赠金额"})
		return
	}

	entity, err := h.entityLogic.GetEntityByName(req.EntityName)
	if err != nil {
		c.JSON(entityErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.donationLogic.Process(c.Request.Context(),
		req.DonorAddress, amount, entity.Name, entity.EntityType, req.Tags)
	if err != nil {
		c.JSON(donationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": outcome,
	})
}

// DonateBatch 处理批量捐赠（总额整除为等份）
func (h *DonationHandler) DonateBatch(c *gin.Context) {
	var req BatchDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, ok := parseAmount(req.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的捐赠金额"})
		return
	}

	entity, err := h.entityLogic.GetEntityByName(req.EntityName)
	if err != nil {
		c.JSON(entityErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	outcomes, err := h.donationLogic.ProcessBatch(c.Request.Context(),
		req.DonorAddress, total, req.NumDonations, entity.Name, entity.EntityType, req.Tags)
	if err != nil {
		c.JSON(donationErrorStatus(err), gin.H{
			"error":     err.Error(),
			"processed": len(outcomes),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": outcomes,
	})
}

// parseAmount 解析十进制金额字符串（最小单位，18位定点）
func parseAmount(s string) (*big.Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}

// donationErrorStatus 捐赠错误到HTTP状态码
func donationErrorStatus(err error) int {
	switch {
	case errors.Is(err, logic.ErrZeroAmount),
		errors.Is(err, logic.ErrInvalidEntityType),
		errors.Is(err, egld.ErrInvalidBatchSize),
		errors.Is(err, egld.ErrPaymentTooSmall):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrCollectionNotConfigured):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// entityErrorStatus 实体查询错误到HTTP状态码
func entityErrorStatus(err error) int {
	switch {
	case errors.Is(err, logic.ErrEntityNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrEntityDisabled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
