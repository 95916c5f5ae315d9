package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Customer struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fields         datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	AdditionalData datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
