package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/Philanthrify/donation-service/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EntityHandler 实体登记处理器
type EntityHandler struct {
	entityLogic *logic.EntityLogic
}

// NewEntityHandler 创建实体登记处理器
func NewEntityHandler(db *gorm.DB) *EntityHandler {
	return &EntityHandler{
		entityLogic: logic.NewEntityLogic(db),
	}
}

// CreateEntityRequest 实体登记请求
type CreateEntityRequest struct {
	Name       string `json:"name" binding:"required"`
	EntityType string `json:"entity_type" binding:"required"`
	Address    string `json:"address"`
}

// CreateEntity 登记慈善机构或项目
func (h *EntityHandler) CreateEntity(c *gin.Context) {
	var req CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity := model.EntityModel{
		Name:       req.Name,
		EntityType: req.EntityType,
		Address:    req.Address,
	}

	if err := h.entityLogic.CreateEntity(&entity); err != nil {
		switch {
		case errors.Is(err, logic.ErrEntityExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, logic.ErrInvalidEntityType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": entity,
	})
}

// GetEntities 分页查询实体
func (h *EntityHandler) GetEntities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	entityType := c.Query("entity_type")

	if entityType != "" && !model.IsValidEntityType(entityType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的实体类型"})
		return
	}

	entities, total, err := h.entityLogic.ListEntities(entityType, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": entities,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}
