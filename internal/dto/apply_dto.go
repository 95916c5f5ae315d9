package dto

import (
	"customer-insight-be/internal/entity"

	"github.com/google/uuid"
)

// ApplyUpdatesRequest selects which items of a reviewed proposal to commit.
// The proposal is either inlined or looked up by ProposalId.
type ApplyUpdatesRequest struct {
	ProposalId                *uuid.UUID                         `json:"proposalId"`
	Proposal                  *entity.ProfileUpdateProposal      `json:"proposal"`
	ApprovedFieldIds          []string                           `json:"approvedFieldIds"`
	ApprovedAdditionalDataIds []string                           `json:"approvedAdditionalDataIds"`
	ApprovedInterestIds       []string                           `json:"approvedInterestIds"`
	ApprovedNote              bool                               `json:"approvedNote"`
	EditedValues              map[string]interface{}             `json:"editedValues"`
	EditedAdditionalData      map[string]interface{}             `json:"editedAdditionalData"`
	EditedInterests           map[string]entity.InterestOverride `json:"editedInterests"`
	EditedNoteContent         *string                            `json:"editedNoteContent"`
	RmId                      *string                            `json:"rmId"`
}

// IsEmpty reports whether nothing at all was approved.
func (r *ApplyUpdatesRequest) IsEmpty() bool {
	return len(r.ApprovedFieldIds) == 0 &&
		len(r.ApprovedAdditionalDataIds) == 0 &&
		len(r.ApprovedInterestIds) == 0 &&
		!r.ApprovedNote
}

type ApplyItemKind string

const (
	ApplyItemField          ApplyItemKind = "field"
	ApplyItemAdditionalData ApplyItemKind = "additionalData"
	ApplyItemInterest       ApplyItemKind = "interest"
	ApplyItemNote           ApplyItemKind = "note"
)

type ApplyItemError struct {
	Kind    ApplyItemKind `json:"kind"`
	ItemId  string        `json:"itemId"`
	Message string        `json:"error"`
}

type ApplyUpdatesResult struct {
	Customer  *entity.Customer
	Interests []*entity.Interest
	Note      *entity.CustomerNote
	Errors    []ApplyItemError
}

type ApplyUpdatesResponse struct {
	Customer  CustomerResponse   `json:"customer"`
	Interests []InterestResponse `json:"interests,omitempty"`
	Errors    []ApplyItemError   `json:"errors"`
}

func NewApplyUpdatesResponse(r *ApplyUpdatesResult) ApplyUpdatesResponse {
	res := ApplyUpdatesResponse{
		Customer: NewCustomerResponse(r.Customer),
		Errors:   r.Errors,
	}
	if res.Errors == nil {
		res.Errors = []ApplyItemError{}
	}
	if len(r.Interests) > 0 {
		res.Interests = NewInterestResponses(r.Interests)
	}
	return res
}
