package model

import (
	"time"
)

// 实体类型
const (
	EntityTypeCharity = "charity"
	EntityTypeProject = "project"
)

// EntityModel 接受捐赠的实体（慈善机构或项目）
type EntityModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `json:"name" gorm:"uniqueIndex;not null"`
	EntityType string `json:"entity_type" gorm:"not null"`
	Address    string `json:"address"`
	Enabled    bool   `json:"enabled" gorm:"default:true"`
}

// TableName 自定义表名
func (EntityModel) TableName() string {
	return "entity"
}

// IsValidEntityType 校验实体类型
func IsValidEntityType(entityType string) bool {
	return entityType == EntityTypeCharity || entityType == EntityTypeProject
}
