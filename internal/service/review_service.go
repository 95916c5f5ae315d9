package service

import (
	"context"
	"strings"

	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/pkg/fieldvalidator"

	"github.com/google/uuid"
)

// IReviewService turns a reviewer's decision on one artifact into the
// matching store operation for the artifact's type.
type IReviewService interface {
	Decide(ctx context.Context, artifactId uuid.UUID, actorId string, req *dto.DecideArtifactRequest) (*entity.Artifact, error)
}

type reviewService struct {
	artifactService IArtifactService
	interestService IInterestService
	validators      *fieldvalidator.Registry
}

func NewReviewService(artifactService IArtifactService, interestService IInterestService, validators *fieldvalidator.Registry) IReviewService {
	return &reviewService{
		artifactService: artifactService,
		interestService: interestService,
		validators:      validators,
	}
}

func (s *reviewService) Decide(ctx context.Context, artifactId uuid.UUID, actorId string, req *dto.DecideArtifactRequest) (*entity.Artifact, error) {
	status := entity.ArtifactStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.IsTerminal() {
		return nil, apperror.Validation("invalid status: %s", req.Status)
	}
	if status == entity.ArtifactStatusEdited && req.EditedValue == nil {
		return nil, apperror.Validation("editedValue is required when status is edited")
	}

	artifact, err := s.artifactService.GetById(ctx, artifactId)
	if err != nil {
		return nil, err
	}

	switch artifact.Type {
	case entity.ArtifactTypeProfileEdit:
		return s.decideProfileEdit(ctx, artifact, actorId, status, req.EditedValue)
	case entity.ArtifactTypeInterestProposal:
		return s.decideInterestProposal(ctx, artifact, actorId, status, req)
	case entity.ArtifactTypeNote:
		return s.decideNote(ctx, artifact, actorId, status, req.EditedValue)
	default:
		return nil, apperror.Internal(nil, "unknown artifact type %s", artifact.Type)
	}
}

func (s *reviewService) decideProfileEdit(ctx context.Context, artifact *entity.Artifact, actorId string, status entity.ArtifactStatus, editedValue interface{}) (*entity.Artifact, error) {
	switch status {
	case entity.ArtifactStatusAccepted:
		return s.artifactService.AcceptProfileEdit(ctx, artifact.Id, actorId)
	case entity.ArtifactStatusRejected:
		return s.artifactService.RejectProfileEdit(ctx, artifact.Id, actorId)
	case entity.ArtifactStatusEdited:
		payload, err := artifact.ProfileEdit()
		if err != nil {
			return nil, apperror.Internal(err, "unexpected artifact payload")
		}
		res := s.validators.Validate(payload.FieldKey, editedValue)
		if !res.Valid {
			return nil, res.Err(payload.FieldKey)
		}
		return s.artifactService.AcceptProfileEditWithEdits(ctx, artifact.Id, actorId, derefString(res.Value))
	default:
		return nil, apperror.Validation("invalid status: %s", status)
	}
}

func (s *reviewService) decideInterestProposal(ctx context.Context, artifact *entity.Artifact, actorId string, status entity.ArtifactStatus, req *dto.DecideArtifactRequest) (*entity.Artifact, error) {
	switch status {
	case entity.ArtifactStatusAccepted:
		override := &entity.InterestOverride{Label: req.Label, Description: req.Description}
		if _, err := s.interestService.CreateFromArtifact(ctx, uuid.Nil, artifact.Id, actorId, override); err != nil {
			return nil, err
		}
		return s.artifactService.GetById(ctx, artifact.Id)
	case entity.ArtifactStatusRejected:
		return s.artifactService.RejectInterestProposal(ctx, artifact.Id, actorId)
	case entity.ArtifactStatusEdited:
		return nil, apperror.Validation("interest proposals take label/description overrides with status accepted, not edited")
	default:
		return nil, apperror.Validation("invalid status: %s", status)
	}
}

func (s *reviewService) decideNote(ctx context.Context, artifact *entity.Artifact, actorId string, status entity.ArtifactStatus, editedValue interface{}) (*entity.Artifact, error) {
	switch status {
	case entity.ArtifactStatusAccepted:
		return s.artifactService.AcceptNote(ctx, artifact.Id, actorId, nil)
	case entity.ArtifactStatusRejected:
		return s.artifactService.RejectNote(ctx, artifact.Id, actorId)
	case entity.ArtifactStatusEdited:
		content, ok := editedValue.(string)
		if !ok {
			return nil, apperror.Validation("editedValue for a note must be a string")
		}
		return s.artifactService.AcceptNote(ctx, artifact.Id, actorId, &content)
	default:
		return nil, apperror.Validation("invalid status: %s", status)
	}
}
