package entity

import (
	"time"

	"github.com/google/uuid"
)

type InterestCategory string

const (
	InterestCategoryPersonal  InterestCategory = "personal"
	InterestCategoryFinancial InterestCategory = "financial"
)

func (c InterestCategory) IsValid() bool {
	return c == InterestCategoryPersonal || c == InterestCategoryFinancial
}

type InterestStatus string

const (
	InterestStatusProposed  InterestStatus = "proposed"
	InterestStatusConfirmed InterestStatus = "confirmed"
	InterestStatusArchived  InterestStatus = "archived"
)

func (s InterestStatus) IsValid() bool {
	switch s {
	case InterestStatusProposed, InterestStatusConfirmed, InterestStatusArchived:
		return true
	}
	return false
}

type Interest struct {
	Id               uuid.UUID
	CustomerId       uuid.UUID
	Category         InterestCategory
	Label            string
	Description      *string
	Status           InterestStatus
	SourceArtifactId *uuid.UUID
	CreatedBy        string
	ArchivedBy       *string
	ArchivedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (i *Interest) IsArchived() bool {
	return i.Status == InterestStatusArchived
}
