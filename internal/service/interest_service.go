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

type IInterestService interface {
	CreateManual(ctx context.Context, customerId uuid.UUID, actorId string, req *dto.CreateInterestRequest) (*entity.Interest, error)
	// CreateFromArtifact confirms a pending interest proposal: the artifact is
	// accepted and the interest created in one unit of work. Pass uuid.Nil as
	// customerId to skip the ownership check.
	CreateFromArtifact(ctx context.Context, customerId, artifactId uuid.UUID, actorId string, override *entity.InterestOverride) (*entity.Interest, error)
	Update(ctx context.Context, customerId, interestId uuid.UUID, actorId string, req *dto.UpdateInterestRequest) (*entity.Interest, error)
	Archive(ctx context.Context, customerId, interestId uuid.UUID, actorId string) (*entity.Interest, error)
	GetById(ctx context.Context, customerId, interestId uuid.UUID) (*entity.Interest, error)
	ListByCustomer(ctx context.Context, customerId uuid.UUID, query *dto.ListInterestsQuery) ([]*entity.Interest, error)
}

type interestService struct {
	uowFactory unitofwork.RepositoryFactory
	reviewCfg  config.ReviewConfig
	events     IReviewEventService
}

func NewInterestService(uowFactory unitofwork.RepositoryFactory, reviewCfg config.ReviewConfig, events IReviewEventService) IInterestService {
	return &interestService{
		uowFactory: uowFactory,
		reviewCfg:  reviewCfg,
		events:     events,
	}
}

func (s *interestService) CreateManual(ctx context.Context, customerId uuid.UUID, actorId string, req *dto.CreateInterestRequest) (*entity.Interest, error) {
	category := entity.InterestCategory(strings.TrimSpace(req.Category))
	if category == "" {
		return nil, apperror.Validation("category is required")
	}
	if !category.IsValid() {
		return nil, apperror.Validation("invalid category: %s", category)
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, apperror.Validation("label is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := ensureCustomerExists(ctx, uow, customerId); err != nil {
		return nil, err
	}

	now := time.Now()
	interest := &entity.Interest{
		Id:          uuid.New(),
		CustomerId:  customerId,
		Category:    category,
		Label:       label,
		Description: trimmedOrNil(req.Description),
		Status:      entity.InterestStatusConfirmed,
		CreatedBy:   actorId,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.InterestRepository().Create(ctx, interest); err != nil {
		return nil, apperror.Internal(err, "failed to create interest")
	}

	s.events.Emit(ctx, events.InterestCreated, customerId, map[string]interface{}{
		"interest_id": interest.Id,
		"category":    interest.Category,
		"created_by":  actorId,
	})
	return interest, nil
}

func (s *interestService) CreateFromArtifact(ctx context.Context, customerId, artifactId uuid.UUID, actorId string, override *entity.InterestOverride) (*entity.Interest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	t := entity.ArtifactTransition{To: entity.ArtifactStatusAccepted, DecidedBy: actorId}
	if !override.IsEmpty() {
		t.Override = override
	}
	artifact, err := transitionArtifact(ctx, uow.ArtifactRepository(), artifactId, entity.ArtifactTypeInterestProposal, customerId, t)
	if err != nil {
		return nil, err
	}

	interest, err := newInterestFromArtifact(artifact, actorId)
	if err != nil {
		return nil, err
	}
	if err := uow.InterestRepository().Create(ctx, interest); err != nil {
		return nil, apperror.Internal(err, "failed to create interest")
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err, "failed to commit interest confirmation")
	}

	s.events.Emit(ctx, events.InterestConfirmed, interest.CustomerId, map[string]interface{}{
		"interest_id": interest.Id,
		"artifact_id": artifact.Id,
		"category":    interest.Category,
		"decided_by":  actorId,
	})
	return interest, nil
}

// newInterestFromArtifact builds the confirmed interest from an accepted
// proposal, preferring the recorded overrides over the proposed values.
func newInterestFromArtifact(artifact *entity.Artifact, actorId string) (*entity.Interest, error) {
	payload, err := artifact.InterestProposal()
	if err != nil {
		return nil, apperror.Internal(err, "unexpected artifact payload")
	}

	label := payload.Label
	description := payload.Description
	if o := artifact.Override; o != nil {
		if o.Label != nil {
			label = *o.Label
		}
		if o.Description != nil {
			description = o.Description
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, apperror.Validation("label must not be empty")
	}
	if !payload.Category.IsValid() {
		return nil, apperror.InvalidState("artifact %s has invalid category %s", artifact.Id, payload.Category)
	}

	now := time.Now()
	sourceId := artifact.Id
	return &entity.Interest{
		Id:               uuid.New(),
		CustomerId:       artifact.CustomerId,
		Category:         payload.Category,
		Label:            label,
		Description:      trimmedOrNil(description),
		Status:           entity.InterestStatusConfirmed,
		SourceArtifactId: &sourceId,
		CreatedBy:        actorId,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *interestService) Update(ctx context.Context, customerId, interestId uuid.UUID, actorId string, req *dto.UpdateInterestRequest) (*entity.Interest, error) {
	if req.Label == nil && req.Description == nil {
		return nil, apperror.Validation("label or description is required")
	}
	var label *string
	if req.Label != nil {
		trimmed := strings.TrimSpace(*req.Label)
		if trimmed == "" {
			return nil, apperror.Validation("label must not be empty")
		}
		label = &trimmed
	}
	var description *string
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		description = &trimmed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwnedInterest(ctx, uow, customerId, interestId); err != nil {
		return nil, err
	}
	if err := uow.InterestRepository().UpdateDetails(ctx, interestId, label, description); err != nil {
		return nil, apperror.Internal(err, "failed to update interest")
	}
	updated, err := findOwnedInterest(ctx, uow, customerId, interestId)
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, events.InterestUpdated, customerId, map[string]interface{}{
		"interest_id": interestId,
		"updated_by":  actorId,
	})
	return updated, nil
}

func (s *interestService) Archive(ctx context.Context, customerId, interestId uuid.UUID, actorId string) (*entity.Interest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwnedInterest(ctx, uow, customerId, interestId); err != nil {
		return nil, err
	}

	archived, err := uow.InterestRepository().Archive(ctx, interestId, actorId, time.Now())
	if err != nil {
		return nil, apperror.Internal(err, "failed to archive interest")
	}
	interest, err := findOwnedInterest(ctx, uow, customerId, interestId)
	if err != nil {
		return nil, err
	}

	if archived {
		s.events.Emit(ctx, events.InterestArchived, customerId, map[string]interface{}{
			"interest_id": interestId,
			"archived_by": actorId,
		})
	}
	return interest, nil
}

func (s *interestService) GetById(ctx context.Context, customerId, interestId uuid.UUID) (*entity.Interest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return findOwnedInterest(ctx, uow, customerId, interestId)
}

func (s *interestService) ListByCustomer(ctx context.Context, customerId uuid.UUID, query *dto.ListInterestsQuery) ([]*entity.Interest, error) {
	if query == nil {
		query = &dto.ListInterestsQuery{}
	}
	statuses, err := effectiveInterestStatuses(query.Status, query.IncludeArchived)
	if err != nil {
		return nil, err
	}
	category := entity.InterestCategory(strings.TrimSpace(query.Category))
	if category != "" && !category.IsValid() {
		return nil, apperror.Validation("invalid category: %s", category)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := ensureCustomerExists(ctx, uow, customerId); err != nil {
		return nil, err
	}

	limit, offset := pageBounds(s.reviewCfg, query.Limit, query.Offset)
	interests, err := uow.InterestRepository().FindAll(ctx, contract.InterestQuery{
		CustomerId: customerId,
		Statuses:   statuses,
		Category:   category,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, apperror.Internal(err, "failed to list interests")
	}
	return interests, nil
}

// effectiveInterestStatuses resolves the status filter. Archived rows are
// only returned when asked for by status or by includeArchived.
func effectiveInterestStatuses(raw string, includeArchived bool) ([]entity.InterestStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		status := entity.InterestStatus(strings.ToLower(raw))
		if !status.IsValid() {
			return nil, apperror.Validation("invalid status: %s", raw)
		}
		if includeArchived && status != entity.InterestStatusArchived {
			return []entity.InterestStatus{status, entity.InterestStatusArchived}, nil
		}
		return []entity.InterestStatus{status}, nil
	}
	if includeArchived {
		return nil, nil
	}
	return []entity.InterestStatus{entity.InterestStatusProposed, entity.InterestStatusConfirmed}, nil
}

func findOwnedInterest(ctx context.Context, uow unitofwork.UnitOfWork, customerId, interestId uuid.UUID) (*entity.Interest, error) {
	interest, err := uow.InterestRepository().FindById(ctx, interestId)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load interest")
	}
	if interest == nil || interest.CustomerId != customerId {
		return nil, apperror.NotFound("interest not found")
	}
	return interest, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
