package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileUpdateProposal bundles everything one extraction suggested for a
// customer. It is transient: items are reviewed selectively by id and the
// bundle itself is never stored as a row.
type ProfileUpdateProposal struct {
	Id                uuid.UUID              `json:"id"`
	CustomerId        uuid.UUID              `json:"customerId"`
	FieldEdits        []FieldEdit            `json:"fieldEdits"`
	AdditionalData    []AdditionalDataItem   `json:"additionalData"`
	Interests         []InterestProposalItem `json:"interests"`
	Note              *NoteDraft             `json:"note,omitempty"`
	ExtractionContext string                 `json:"extractionContext,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
}

type FieldEdit struct {
	Id            string      `json:"id"`
	FieldKey      string      `json:"fieldKey"`
	CurrentValue  interface{} `json:"currentValue,omitempty"`
	ProposedValue interface{} `json:"proposedValue"`
	Confidence    Confidence  `json:"confidence"`
	SourceText    string      `json:"sourceText,omitempty"`
	ArtifactId    *uuid.UUID  `json:"artifactId,omitempty"`
}

// AdditionalDataItem is a value without a catalog field; it lands in the
// customer's structured extension area under Key.
type AdditionalDataItem struct {
	Id         string      `json:"id"`
	Key        string      `json:"key"`
	Label      string      `json:"label,omitempty"`
	Value      interface{} `json:"value"`
	Confidence Confidence  `json:"confidence"`
	SourceText string      `json:"sourceText,omitempty"`
}

type InterestProposalItem struct {
	Id          string           `json:"id"`
	Category    InterestCategory `json:"category"`
	Label       string           `json:"label"`
	Description *string          `json:"description,omitempty"`
	Confidence  Confidence       `json:"confidence"`
	SourceText  string           `json:"sourceText,omitempty"`
	ArtifactId  *uuid.UUID       `json:"artifactId,omitempty"`
}

type NoteDraft struct {
	Id         string     `json:"id"`
	Content    string     `json:"content"`
	ArtifactId *uuid.UUID `json:"artifactId,omitempty"`
}

func (p *ProfileUpdateProposal) FieldEdit(id string) (FieldEdit, bool) {
	for _, f := range p.FieldEdits {
		if f.Id == id {
			return f, true
		}
	}
	return FieldEdit{}, false
}

func (p *ProfileUpdateProposal) AdditionalDataItem(id string) (AdditionalDataItem, bool) {
	for _, d := range p.AdditionalData {
		if d.Id == id {
			return d, true
		}
	}
	return AdditionalDataItem{}, false
}

func (p *ProfileUpdateProposal) Interest(id string) (InterestProposalItem, bool) {
	for _, i := range p.Interests {
		if i.Id == id {
			return i, true
		}
	}
	return InterestProposalItem{}, false
}

// EnsureItemIds fills in missing item ids so every item can be approved individually.
func (p *ProfileUpdateProposal) EnsureItemIds() {
	for i := range p.FieldEdits {
		if p.FieldEdits[i].Id == "" {
			p.FieldEdits[i].Id = uuid.NewString()
		}
	}
	for i := range p.AdditionalData {
		if p.AdditionalData[i].Id == "" {
			p.AdditionalData[i].Id = uuid.NewString()
		}
	}
	for i := range p.Interests {
		if p.Interests[i].Id == "" {
			p.Interests[i].Id = uuid.NewString()
		}
	}
	if p.Note != nil && p.Note.Id == "" {
		p.Note.Id = uuid.NewString()
	}
}
