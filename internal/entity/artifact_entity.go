package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ArtifactType string

const (
	ArtifactTypeProfileEdit      ArtifactType = "profile_edit"
	ArtifactTypeInterestProposal ArtifactType = "interest_proposal"
	ArtifactTypeNote             ArtifactType = "note"
)

func (t ArtifactType) IsValid() bool {
	switch t {
	case ArtifactTypeProfileEdit, ArtifactTypeInterestProposal, ArtifactTypeNote:
		return true
	}
	return false
}

type ArtifactStatus string

const (
	ArtifactStatusPending  ArtifactStatus = "pending"
	ArtifactStatusAccepted ArtifactStatus = "accepted"
	ArtifactStatusRejected ArtifactStatus = "rejected"
	ArtifactStatusEdited   ArtifactStatus = "edited"
)

func (s ArtifactStatus) IsValid() bool {
	return s == ArtifactStatusPending || s.IsTerminal()
}

func (s ArtifactStatus) IsTerminal() bool {
	switch s {
	case ArtifactStatusAccepted, ArtifactStatusRejected, ArtifactStatusEdited:
		return true
	}
	return false
}

// CanTransition encodes the artifact state machine: every edge starts at
// pending and ends at a terminal status.
func CanTransition(from, to ArtifactStatus) bool {
	return from == ArtifactStatusPending && to.IsTerminal()
}

// ArtifactPayload is the type-specific body of an artifact. The set of
// implementations is closed: one per ArtifactType.
type ArtifactPayload interface {
	ArtifactType() ArtifactType
	isArtifactPayload()
}

type ProfileEditPayload struct {
	FieldKey      string      `json:"fieldKey"`
	ProposedValue interface{} `json:"proposedValue"`
	Confidence    Confidence  `json:"confidence"`
	SourceText    string      `json:"sourceText"`
}

type InterestProposalPayload struct {
	Category    InterestCategory `json:"category"`
	Label       string           `json:"label"`
	Description *string          `json:"description,omitempty"`
	Confidence  Confidence       `json:"confidence"`
	SourceText  string           `json:"sourceText"`
}

type NotePayload struct {
	Content string `json:"content"`
}

func (ProfileEditPayload) ArtifactType() ArtifactType      { return ArtifactTypeProfileEdit }
func (InterestProposalPayload) ArtifactType() ArtifactType { return ArtifactTypeInterestProposal }
func (NotePayload) ArtifactType() ArtifactType             { return ArtifactTypeNote }

func (ProfileEditPayload) isArtifactPayload()      {}
func (InterestProposalPayload) isArtifactPayload() {}
func (NotePayload) isArtifactPayload()             {}

// InterestOverride replaces the proposed label/description when an interest
// proposal is accepted. The stored payload is never mutated.
type InterestOverride struct {
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (o *InterestOverride) IsEmpty() bool {
	return o == nil || (o.Label == nil && o.Description == nil)
}

type Artifact struct {
	Id          uuid.UUID
	CustomerId  uuid.UUID
	ProposalId  *uuid.UUID
	Type        ArtifactType
	Payload     ArtifactPayload
	Status      ArtifactStatus
	EditedValue interface{}
	Override    *InterestOverride
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewArtifact(customerId uuid.UUID, proposalId *uuid.UUID, payload ArtifactPayload) *Artifact {
	now := time.Now()
	return &Artifact{
		Id:         uuid.New(),
		CustomerId: customerId,
		ProposalId: proposalId,
		Type:       payload.ArtifactType(),
		Payload:    payload,
		Status:     ArtifactStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (a *Artifact) ProfileEdit() (ProfileEditPayload, error) {
	p, ok := a.Payload.(ProfileEditPayload)
	if !ok {
		return ProfileEditPayload{}, fmt.Errorf("artifact %s is %s, not %s", a.Id, a.Type, ArtifactTypeProfileEdit)
	}
	return p, nil
}

func (a *Artifact) InterestProposal() (InterestProposalPayload, error) {
	p, ok := a.Payload.(InterestProposalPayload)
	if !ok {
		return InterestProposalPayload{}, fmt.Errorf("artifact %s is %s, not %s", a.Id, a.Type, ArtifactTypeInterestProposal)
	}
	return p, nil
}

func (a *Artifact) Note() (NotePayload, error) {
	p, ok := a.Payload.(NotePayload)
	if !ok {
		return NotePayload{}, fmt.Errorf("artifact %s is %s, not %s", a.Id, a.Type, ArtifactTypeNote)
	}
	return p, nil
}

// AppliedValue is the value a decided profile_edit contributes to the profile:
// the edited value for edited artifacts, the proposal otherwise.
func (a *Artifact) AppliedValue() interface{} {
	if a.Status == ArtifactStatusEdited {
		return a.EditedValue
	}
	if p, ok := a.Payload.(ProfileEditPayload); ok {
		return p.ProposedValue
	}
	return nil
}

// ArtifactTransition is a compare-and-set request from pending to To.
type ArtifactTransition struct {
	Id          uuid.UUID
	To          ArtifactStatus
	DecidedBy   string
	DecidedAt   time.Time
	EditedValue interface{}
	Override    *InterestOverride
}
