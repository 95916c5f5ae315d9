package mapper

import (
	"encoding/json"
	"fmt"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/model"

	"gorm.io/datatypes"
)

type ArtifactMapper struct{}

func NewArtifactMapper() *ArtifactMapper {
	return &ArtifactMapper{}
}

// DecodePayload reads a payload according to its artifact type.
func DecodePayload(artifactType entity.ArtifactType, raw []byte) (entity.ArtifactPayload, error) {
	switch artifactType {
	case entity.ArtifactTypeProfileEdit:
		var p entity.ProfileEditPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode profile_edit payload: %w", err)
		}
		return p, nil
	case entity.ArtifactTypeInterestProposal:
		var p entity.InterestProposalPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode interest_proposal payload: %w", err)
		}
		return p, nil
	case entity.ArtifactTypeNote:
		var p entity.NotePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode note payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown artifact type %q", artifactType)
	}
}

func (m *ArtifactMapper) ToEntity(a *model.ExtractionArtifact) (*entity.Artifact, error) {
	if a == nil {
		return nil, nil
	}

	artifactType := entity.ArtifactType(a.ArtifactType)
	payload, err := DecodePayload(artifactType, a.Payload)
	if err != nil {
		return nil, err
	}

	var editedValue interface{}
	if len(a.EditedValue) > 0 {
		if err := json.Unmarshal(a.EditedValue, &editedValue); err != nil {
			return nil, fmt.Errorf("decode edited value: %w", err)
		}
	}

	var override *entity.InterestOverride
	if len(a.Override) > 0 {
		override = &entity.InterestOverride{}
		if err := json.Unmarshal(a.Override, override); err != nil {
			return nil, fmt.Errorf("decode override: %w", err)
		}
	}

	return &entity.Artifact{
		Id:          a.Id,
		CustomerId:  a.CustomerId,
		ProposalId:  a.ProposalId,
		Type:        artifactType,
		Payload:     payload,
		Status:      entity.ArtifactStatus(a.Status),
		EditedValue: editedValue,
		Override:    override,
		DecidedBy:   a.DecidedBy,
		DecidedAt:   a.DecidedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}, nil
}

func (m *ArtifactMapper) ToModel(a *entity.Artifact) (*model.ExtractionArtifact, error) {
	if a == nil {
		return nil, nil
	}
	if a.Payload == nil || a.Payload.ArtifactType() != a.Type {
		return nil, fmt.Errorf("artifact %s payload does not match type %s", a.Id, a.Type)
	}

	payload, err := json.Marshal(a.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	editedValue, err := EncodeJSON(a.EditedValue)
	if err != nil {
		return nil, fmt.Errorf("encode edited value: %w", err)
	}
	var override datatypes.JSON
	if !a.Override.IsEmpty() {
		if override, err = EncodeJSON(a.Override); err != nil {
			return nil, fmt.Errorf("encode override: %w", err)
		}
	}

	return &model.ExtractionArtifact{
		Id:           a.Id,
		CustomerId:   a.CustomerId,
		ProposalId:   a.ProposalId,
		ArtifactType: string(a.Type),
		Payload:      datatypes.JSON(payload),
		Status:       string(a.Status),
		EditedValue:  editedValue,
		Override:     override,
		DecidedBy:    a.DecidedBy,
		DecidedAt:    a.DecidedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}, nil
}

func (m *ArtifactMapper) ToEntities(artifacts []*model.ExtractionArtifact) ([]*entity.Artifact, error) {
	entities := make([]*entity.Artifact, len(artifacts))
	for i, a := range artifacts {
		e, err := m.ToEntity(a)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
