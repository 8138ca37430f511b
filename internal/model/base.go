package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 所有实体的主键都是 CHAR(36) 的 UUID 代理键，搞了个base结构体统一生成
type BaseModel struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate 插入前如果没有ID，就生成一个新的UUID
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
