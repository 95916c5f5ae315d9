package model

import (
	"time"

	"github.com/google/uuid"
)

type CustomerInterest struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId       uuid.UUID  `gorm:"type:uuid;not null;index:idx_interests_customer_created,priority:1"`
	Category         string     `gorm:"type:varchar(16);not null"`
	Label            string     `gorm:"type:varchar(255);not null"`
	Description      *string    `gorm:"type:text"`
	Status           string     `gorm:"type:varchar(16);not null;default:'confirmed';index"`
	SourceArtifactId *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CreatedBy        string     `gorm:"type:varchar(255);not null"`
	ArchivedBy       *string    `gorm:"type:varchar(255)"`
	ArchivedAt       *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime;index:idx_interests_customer_created,priority:2"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (CustomerInterest) TableName() string {
	return "customer_interests"
}
