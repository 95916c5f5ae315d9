package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomerNote struct {
	Id               uuid.UUID
	CustomerId       uuid.UUID
	Content          string
	CreatedBy        string
	SourceArtifactId *uuid.UUID
	CreatedAt        time.Time
}
