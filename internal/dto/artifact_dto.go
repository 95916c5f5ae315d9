package dto

import (
	"time"

	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

type ArtifactResponse struct {
	Id           uuid.UUID                `json:"id"`
	CustomerId   uuid.UUID                `json:"customerId"`
	ProposalId   *uuid.UUID               `json:"proposalId,omitempty"`
	ArtifactType entity.ArtifactType      `json:"artifactType"`
	Payload      entity.ArtifactPayload   `json:"payload"`
	Status       entity.ArtifactStatus    `json:"status"`
	EditedValue  interface{}              `json:"editedValue,omitempty"`
	Override     *entity.InterestOverride `json:"override,omitempty"`
	DecidedBy    *string                  `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time               `json:"decidedAt,omitempty"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

func NewArtifactResponse(a *entity.Artifact) ArtifactResponse {
	return ArtifactResponse{
		Id:           a.Id,
		CustomerId:   a.CustomerId,
		ProposalId:   a.ProposalId,
		ArtifactType: a.Type,
		Payload:      a.Payload,
		Status:       a.Status,
		EditedValue:  a.EditedValue,
		Override:     a.Override,
		DecidedBy:    a.DecidedBy,
		DecidedAt:    a.DecidedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func NewArtifactResponses(artifacts []*entity.Artifact) []ArtifactResponse {
	res := make([]ArtifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		res = append(res, NewArtifactResponse(a))
	}
	return res
}

// DecideArtifactRequest is the body of PATCH /artifacts/:id. Label and
// Description override an interest proposal on accept.
type DecideArtifactRequest struct {
	Status      string      `json:"status" validate:"required"`
	EditedValue interface{} `json:"editedValue"`
	RmId        *string     `json:"rmId"`
	Label       *string     `json:"label"`
	Description *string     `json:"description"`
}

// ListArtifactsQuery carries the raw query string filters.
type ListArtifactsQuery struct {
	Status       string `query:"status"`
	ArtifactType string `query:"artifactType"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}
