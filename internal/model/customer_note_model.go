package model

import (
	"time"

	"github.com/google/uuid"
)

type CustomerNote struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content          string     `gorm:"type:text;not null"`
	CreatedBy        string     `gorm:"type:varchar(255);not null"`
	SourceArtifactId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (CustomerNote) TableName() string {
	return "customer_notes"
}
