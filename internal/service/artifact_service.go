package service

import (
	"context"
	"strings"
	"time"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/pkg/events"

	"github.com/google/uuid"
)

type IArtifactService interface {
	GetById(ctx context.Context, id uuid.UUID) (*entity.Artifact, error)
	ListByCustomer(ctx context.Context, customerId uuid.UUID, query *dto.ListArtifactsQuery) ([]*entity.Artifact, error)
	Record(ctx context.Context, artifacts []*entity.Artifact) error

	AcceptProfileEdit(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error)
	RejectProfileEdit(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error)
	AcceptProfileEditWithEdits(ctx context.Context, id uuid.UUID, actorId string, editedValue interface{}) (*entity.Artifact, error)

	AcceptInterestProposal(ctx context.Context, id uuid.UUID, actorId string, override *entity.InterestOverride) (*entity.Artifact, error)
	RejectInterestProposal(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error)

	// AcceptNote stores the note on the customer. A non-nil editedContent
	// replaces the drafted text and marks the artifact edited.
	AcceptNote(ctx context.Context, id uuid.UUID, actorId string, editedContent *string) (*entity.Artifact, error)
	RejectNote(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error)
}

type artifactService struct {
	uowFactory unitofwork.RepositoryFactory
	reviewCfg  config.ReviewConfig
	events     IReviewEventService
}

func NewArtifactService(uowFactory unitofwork.RepositoryFactory, reviewCfg config.ReviewConfig, events IReviewEventService) IArtifactService {
	return &artifactService{
		uowFactory: uowFactory,
		reviewCfg:  reviewCfg,
		events:     events,
	}
}

func (s *artifactService) GetById(ctx context.Context, id uuid.UUID) (*entity.Artifact, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	artifact, err := uow.ArtifactRepository().FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load artifact")
	}
	if artifact == nil {
		return nil, apperror.NotFound("artifact not found")
	}
	return artifact, nil
}

func (s *artifactService) ListByCustomer(ctx context.Context, customerId uuid.UUID, query *dto.ListArtifactsQuery) ([]*entity.Artifact, error) {
	if query == nil {
		query = &dto.ListArtifactsQuery{}
	}
	artifactType := entity.ArtifactType(strings.TrimSpace(query.ArtifactType))
	if artifactType != "" && !artifactType.IsValid() {
		return nil, apperror.Validation("invalid artifactType: %s", artifactType)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := ensureCustomerExists(ctx, uow, customerId); err != nil {
		return nil, err
	}

	limit, offset := pageBounds(s.reviewCfg, query.Limit, query.Offset)
	artifacts, err := uow.ArtifactRepository().FindAll(ctx, contract.ArtifactQuery{
		CustomerId: customerId,
		Statuses:   ParseArtifactStatuses(query.Status),
		Type:       artifactType,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, apperror.Internal(err, "failed to list artifacts")
	}
	return artifacts, nil
}

func (s *artifactService) Record(ctx context.Context, artifacts []*entity.Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	for _, a := range artifacts {
		if !a.Type.IsValid() || a.Payload == nil || a.Payload.ArtifactType() != a.Type {
			return apperror.Validation("artifact payload does not match type %s", a.Type)
		}
		if err := uow.ArtifactRepository().Create(ctx, a); err != nil {
			return apperror.Internal(err, "failed to record artifact")
		}
	}

	if err := uow.Commit(); err != nil {
		return apperror.Internal(err, "failed to commit artifacts")
	}

	s.events.Emit(ctx, events.ArtifactRecorded, artifacts[0].CustomerId, map[string]interface{}{
		"count":       len(artifacts),
		"proposal_id": artifacts[0].ProposalId,
	})
	return nil
}

func (s *artifactService) AcceptProfileEdit(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error) {
	return s.decide(ctx, id, entity.ArtifactTypeProfileEdit, entity.ArtifactTransition{
		To: entity.ArtifactStatusAccepted, DecidedBy: actorId,
	})
}

func (s *artifactService) RejectProfileEdit(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error) {
	return s.decide(ctx, id, entity.ArtifactTypeProfileEdit, entity.ArtifactTransition{
		To: entity.ArtifactStatusRejected, DecidedBy: actorId,
	})
}

func (s *artifactService) AcceptProfileEditWithEdits(ctx context.Context, id uuid.UUID, actorId string, editedValue interface{}) (*entity.Artifact, error) {
	return s.decide(ctx, id, entity.ArtifactTypeProfileEdit, entity.ArtifactTransition{
		To: entity.ArtifactStatusEdited, DecidedBy: actorId, EditedValue: editedValue,
	})
}

func (s *artifactService) AcceptInterestProposal(ctx context.Context, id uuid.UUID, actorId string, override *entity.InterestOverride) (*entity.Artifact, error) {
	t := entity.ArtifactTransition{To: entity.ArtifactStatusAccepted, DecidedBy: actorId}
	if !override.IsEmpty() {
		t.Override = override
	}
	return s.decide(ctx, id, entity.ArtifactTypeInterestProposal, t)
}

func (s *artifactService) RejectInterestProposal(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error) {
	return s.decide(ctx, id, entity.ArtifactTypeInterestProposal, entity.ArtifactTransition{
		To: entity.ArtifactStatusRejected, DecidedBy: actorId,
	})
}

func (s *artifactService) RejectNote(ctx context.Context, id uuid.UUID, actorId string) (*entity.Artifact, error) {
	return s.decide(ctx, id, entity.ArtifactTypeNote, entity.ArtifactTransition{
		To: entity.ArtifactStatusRejected, DecidedBy: actorId,
	})
}

func (s *artifactService) AcceptNote(ctx context.Context, id uuid.UUID, actorId string, editedContent *string) (*entity.Artifact, error) {
	t := entity.ArtifactTransition{To: entity.ArtifactStatusAccepted, DecidedBy: actorId}
	if editedContent != nil {
		content := strings.TrimSpace(*editedContent)
		if content == "" {
			return nil, apperror.Validation("note content must not be empty")
		}
		t.To = entity.ArtifactStatusEdited
		t.EditedValue = content
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	artifact, err := transitionArtifact(ctx, uow.ArtifactRepository(), id, entity.ArtifactTypeNote, uuid.Nil, t)
	if err != nil {
		return nil, err
	}
	if _, err := createNoteFromArtifact(ctx, uow, artifact, actorId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err, "failed to commit note")
	}
	s.emitDecided(ctx, artifact)
	return artifact, nil
}

func (s *artifactService) decide(ctx context.Context, id uuid.UUID, want entity.ArtifactType, t entity.ArtifactTransition) (*entity.Artifact, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	artifact, err := transitionArtifact(ctx, uow.ArtifactRepository(), id, want, uuid.Nil, t)
	if err != nil {
		return nil, err
	}
	s.emitDecided(ctx, artifact)
	return artifact, nil
}

func (s *artifactService) emitDecided(ctx context.Context, a *entity.Artifact) {
	s.events.Emit(ctx, events.ArtifactDecided, a.CustomerId, map[string]interface{}{
		"artifact_id":   a.Id,
		"artifact_type": a.Type,
		"status":        a.Status,
		"decided_by":    a.DecidedBy,
	})
}

// transitionArtifact performs the pending -> t.To compare-and-set on an
// artifact of type want. A non-nil owner also requires the artifact to belong
// to that customer; a mismatch reads as not found.
func transitionArtifact(ctx context.Context, repo contract.ArtifactRepository, id uuid.UUID, want entity.ArtifactType, owner uuid.UUID, t entity.ArtifactTransition) (*entity.Artifact, error) {
	if !t.To.IsTerminal() {
		return nil, apperror.Validation("invalid status: %s", t.To)
	}
	if strings.TrimSpace(t.DecidedBy) == "" {
		return nil, apperror.Validation("rmId is required")
	}

	artifact, err := repo.FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load artifact")
	}
	if artifact == nil || (owner != uuid.Nil && artifact.CustomerId != owner) {
		return nil, apperror.NotFound("artifact not found")
	}
	if artifact.Type != want {
		return nil, apperror.InvalidState("artifact %s is a %s artifact, not %s", id, artifact.Type, want)
	}
	if !entity.CanTransition(artifact.Status, t.To) {
		return nil, apperror.InvalidState("artifact %s is already %s", id, artifact.Status)
	}

	t.Id = id
	if t.DecidedAt.IsZero() {
		t.DecidedAt = time.Now()
	}
	ok, err := repo.Transition(ctx, t)
	if err != nil {
		return nil, apperror.Internal(err, "failed to update artifact")
	}
	if !ok {
		return nil, apperror.InvalidState("artifact %s is no longer pending", id)
	}

	updated, err := repo.FindById(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err, "failed to reload artifact")
	}
	if updated == nil {
		return nil, apperror.NotFound("artifact not found")
	}
	return updated, nil
}

// createNoteFromArtifact stores the content of a decided note artifact.
func createNoteFromArtifact(ctx context.Context, uow unitofwork.UnitOfWork, artifact *entity.Artifact, actorId string) (*entity.CustomerNote, error) {
	payload, err := artifact.Note()
	if err != nil {
		return nil, apperror.Internal(err, "unexpected artifact payload")
	}
	content := payload.Content
	if artifact.Status == entity.ArtifactStatusEdited {
		if edited, ok := artifact.EditedValue.(string); ok {
			content = edited
		}
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation("note content must not be empty")
	}

	sourceId := artifact.Id
	note := &entity.CustomerNote{
		Id:               uuid.New(),
		CustomerId:       artifact.CustomerId,
		Content:          content,
		CreatedBy:        actorId,
		SourceArtifactId: &sourceId,
		CreatedAt:        time.Now(),
	}
	if err := uow.CustomerNoteRepository().Create(ctx, note); err != nil {
		return nil, apperror.Internal(err, "failed to save note")
	}
	return note, nil
}

// ParseArtifactStatuses reads a comma separated status filter. Unknown tokens
// are dropped; nil means no filter.
func ParseArtifactStatuses(raw string) []entity.ArtifactStatus {
	var statuses []entity.ArtifactStatus
	seen := make(map[entity.ArtifactStatus]bool)
	for _, token := range strings.Split(raw, ",") {
		status := entity.ArtifactStatus(strings.ToLower(strings.TrimSpace(token)))
		if !status.IsValid() || seen[status] {
			continue
		}
		seen[status] = true
		statuses = append(statuses, status)
	}
	return statuses
}

func ensureCustomerExists(ctx context.Context, uow unitofwork.UnitOfWork, customerId uuid.UUID) error {
	customer, err := uow.CustomerRepository().FindById(ctx, customerId)
	if err != nil {
		return apperror.Internal(err, "failed to load customer")
	}
	if customer == nil {
		return apperror.NotFound("customer not found")
	}
	return nil
}

func pageBounds(cfg config.ReviewConfig, limit, offset int) (int, int) {
	if limit <= 0 {
		limit = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 && limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
