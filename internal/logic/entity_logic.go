package logic

import (
	"errors"

	"github.com/Philanthrify/donation-service/internal/model"
	"gorm.io/gorm"
)

// EntityLogic 实体登记业务逻辑（慈善机构与项目）
type EntityLogic struct {
	db *gorm.DB
}

// NewEntityLogic 创建实体登记业务逻辑
func NewEntityLogic(db *gorm.DB) *EntityLogic {
	return &EntityLogic{db: db}
}

// CreateEntity 登记一个新实体
func (e *EntityLogic) CreateEntity(entity *model.EntityModel) error {
	if entity.Name == "" {
		return errors.New("实体名称不能为空")
	}
	if !model.IsValidEntityType(entity.EntityType) {
		return ErrInvalidEntityType
	}

	var existing model.EntityModel
	err := e.db.Where("name = ?", entity.Name).First(&existing).Error
	if err == nil {
		return ErrEntityExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entity.Enabled = true
	return e.db.Create(entity).Error
}

// GetEntityByName 按名称查询实体（停用的实体不可接受捐赠）
func (e *EntityLogic) GetEntityByName(name string) (*model.EntityModel, error) {
	var entity model.EntityModel
	if err := e.db.Where("name = ?", name).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	if !entity.Enabled {
		return nil, ErrEntityDisabled
	}
	return &entity, nil
}

// ListEntities 分页查询实体，可按类型过滤
func (e *EntityLogic) ListEntities(entityType string, page, pageSize int) ([]model.EntityModel, int64, error) {
	var entities []model.EntityModel
	var total int64

	query := e.db.Model(&model.EntityModel{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// SetEnabled 启用或停用实体
func (e *EntityLogic) SetEnabled(name string, enabled bool) error {
	result := e.db.Model(&model.EntityModel{}).Where("name = ?", name).Update("enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}
	return nil
}
