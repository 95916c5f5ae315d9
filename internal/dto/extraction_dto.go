package dto

import (
	"customer-insight-be/internal/entity"
)

// ExtractionRequest is what the extraction model hands over for one customer:
// a proposal, optionally its own follow-up questions.
type ExtractionRequest struct {
	Proposal       entity.ProfileUpdateProposal `json:"proposal"`
	Nudges         *entity.NudgeSet             `json:"nudges"`
	RequiredFields []string                     `json:"requiredFields"`
}

type ExtractionResponse struct {
	Proposal  *entity.ProfileUpdateProposal `json:"proposal"`
	Artifacts []ArtifactResponse            `json:"artifacts"`
	Nudge     *NudgeSessionResponse         `json:"nudge,omitempty"`
}
