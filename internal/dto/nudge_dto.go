package dto

import (
	"customer-insight-be/internal/entity"
	"customer-insight-be/pkg/nudge"

	"github.com/google/uuid"
)

type NudgeSessionResponse struct {
	Id         uuid.UUID            `json:"id"`
	CustomerId uuid.UUID            `json:"customerId"`
	ProposalId *uuid.UUID           `json:"proposalId,omitempty"`
	Tree       *nudge.RenderTree    `json:"tree"`
	Answers    []entity.NudgeAnswer `json:"answers"`
}

type SubmitNudgeAnswersRequest struct {
	Answers []entity.NudgeAnswer `json:"answers" validate:"required"`
}

type FinalizeNudgeRequest struct {
	// ApplyAnswers writes reconciled answers to the customer profile.
	ApplyAnswers bool    `json:"applyAnswers"`
	RmId         *string `json:"rmId"`
}

type FinalizeNudgeResponse struct {
	Answers []entity.NudgeAnswer   `json:"answers"`
	Applied map[string]interface{} `json:"applied,omitempty"`
	Errors  []ApplyItemError       `json:"errors"`
}
