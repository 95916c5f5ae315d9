package dto

import (
	"time"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

type InterestResponse struct {
	Id               uuid.UUID               `json:"id"`
	CustomerId       uuid.UUID               `json:"customerId"`
	Category         entity.InterestCategory `json:"category"`
	Label            string                  `json:"label"`
	Description      *string                 `json:"description,omitempty"`
	Status           entity.InterestStatus   `json:"status"`
	SourceArtifactId *uuid.UUID              `json:"sourceArtifactId,omitempty"`
	CreatedBy        string                  `json:"createdBy"`
	ArchivedBy       *string                 `json:"archivedBy,omitempty"`
	ArchivedAt       *time.Time              `json:"archivedAt,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

func NewInterestResponse(i *entity.Interest) InterestResponse {
	return InterestResponse{
		Id:               i.Id,
		CustomerId:       i.CustomerId,
		Category:         i.Category,
		Label:            i.Label,
		Description:      i.Description,
		Status:           i.Status,
		SourceArtifactId: i.SourceArtifactId,
		CreatedBy:        i.CreatedBy,
		ArchivedBy:       i.ArchivedBy,
		ArchivedAt:       i.ArchivedAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func NewInterestResponses(interests []*entity.Interest) []InterestResponse {
	res := make([]InterestResponse, 0, len(interests))
	for _, i := range interests {
		res = append(res, NewInterestResponse(i))
	}
	return res
}

type CreateInterestRequest struct {
	Category    string  `json:"category" validate:"required"`
	Label       string  `json:"label" validate:"required"`
	Description *string `json:"description"`
	RmId        *string `json:"rmId"`
}

type UpdateInterestRequest struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
	RmId        *string `json:"rmId"`
}

type ArchiveInterestRequest struct {
	RmId *string `json:"rmId"`
}

type ConfirmInterestRequest struct {
	ArtifactId  string  `json:"artifactId" validate:"required"`
	RmId        *string `json:"rmId"`
	Label       *string `json:"label"`
	Description *string `json:"description"`
}

type ListInterestsQuery struct {
	Status          string `query:"status"`
	Category        string `query:"category"`
	IncludeArchived bool   `query:"includeArchived"`
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
}
