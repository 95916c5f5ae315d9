package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ExtractionArtifact struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId   uuid.UUID      `gorm:"type:uuid;not null;index:idx_artifacts_customer_created,priority:1"`
	ProposalId   *uuid.UUID     `gorm:"type:uuid;index"`
	ArtifactType string         `gorm:"type:varchar(32);not null;index"`
	Payload      datatypes.JSON `gorm:"type:jsonb;not null"`
	Status       string         `gorm:"type:varchar(16);not null;default:'pending';index"`
	EditedValue  datatypes.JSON `gorm:"type:jsonb"`
	Override     datatypes.JSON `gorm:"type:jsonb"`
	DecidedBy    *string        `gorm:"type:varchar(255)"`
	DecidedAt    *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_artifacts_customer_created,priority:2"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (ExtractionArtifact) TableName() string {
	return "extraction_artifacts"
}
